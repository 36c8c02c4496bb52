package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/pkg/cart"
	"storefront/pkg/product"
)

type CartHandler struct {
	Service cart.ServiceCart
	Logger  *slog.Logger
}

type cartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  *int  `json:"quantity"`
}

func NewCartHandler(service cart.ServiceCart, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *CartHandler) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, product.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgProductNotFound)
		return
	}
	writeFailure(w, h.Logger, op, err)
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := currentUser(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.Get(r.Context(), c.UserID)
	if err != nil {
		h.fail(w, "get cart", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, summary)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	c, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req cartItemRequest
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := h.Service.Add(r.Context(), c.UserID, req.ProductID, quantity); err != nil {
		h.fail(w, "add to cart", err)
		return
	}

	if ok := writeMessage(w, h.Logger, "Item added to cart"); ok {
		h.Logger.Info("cart add", "user", c.UserID, "product", req.ProductID, "quantity", quantity)
	}
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req cartItemRequest
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	if err := h.Service.Update(r.Context(), c.UserID, req.ProductID, req.Quantity); err != nil {
		h.fail(w, "update cart", err)
		return
	}

	writeMessage(w, h.Logger, "Cart updated")
}

// Remove deletes one line when productId is given and empties the cart
// otherwise.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	c, ok := currentUser(w, r)
	if !ok {
		return
	}

	var err error
	if raw := r.URL.Query().Get("productId"); raw != "" {
		productID, perr := product.ParseID(raw)
		if perr != nil {
			writeError(w, http.StatusBadRequest, msgInvalidProductID)
			return
		}
		err = h.Service.Remove(r.Context(), c.UserID, productID)
	} else {
		err = h.Service.Clear(r.Context(), c.UserID)
	}
	if err != nil {
		h.fail(w, "remove from cart", err)
		return
	}

	writeMessage(w, h.Logger, "Item(s) removed from cart")
}
