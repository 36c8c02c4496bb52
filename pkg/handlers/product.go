package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"storefront/pkg/product"
)

const (
	msgInvalidProductID = "Invalid product ID"
	msgProductNotFound  = "Product not found"
)

type ProductHandler struct {
	Service product.ServiceProduct
	Logger  *slog.Logger
}

func NewProductHandler(service product.ServiceProduct, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := product.ParseID(mux.Vars(r)[muxVarID])
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidProductID)
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, product.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgProductNotFound)
		return
	}
	writeFailure(w, h.Logger, op, err)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.Service.List(r.Context(), product.ListOptions{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Limit:    queryInt64(r, "limit"),
	})
	if err != nil {
		h.fail(w, "list products", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, products)
}

func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.Featured(r.Context(), queryInt64(r, "limit"))
	if err != nil {
		h.fail(w, "featured products", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	p, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, "get product", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, p)
}

func (h *ProductHandler) Related(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	products, err := h.Service.Related(r.Context(), id, queryInt64(r, "limit"))
	if err != nil {
		h.fail(w, "related products", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in product.Input
	if ok := DecodeJSONBody(w, r, &in); !ok {
		return
	}

	p, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.fail(w, "create product", err)
		return
	}

	if ok := writeJSON(w, h.Logger, http.StatusCreated, p); ok {
		h.Logger.Info("product created", "product", p.ID)
	}
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var patch product.Patch
	if ok := DecodeJSONBody(w, r, &patch); !ok {
		return
	}

	p, err := h.Service.Update(r.Context(), id, patch)
	if err != nil {
		h.fail(w, "update product", err)
		return
	}

	if ok := writeJSON(w, h.Logger, http.StatusOK, p); ok {
		h.Logger.Info("product updated", "product", id)
	}
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete product", err)
		return
	}

	if ok := writeMessage(w, h.Logger, "Product deleted successfully"); ok {
		h.Logger.Info("product deleted", "product", id)
	}
}
