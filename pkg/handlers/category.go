package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"storefront/pkg/category"
)

type CategoryHandler struct {
	Service category.ServiceCategory
	Logger  *slog.Logger
}

func NewCategoryHandler(service category.ServiceCategory, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *CategoryHandler) categoryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := category.ParseID(mux.Vars(r)[muxVarID])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID")
		return 0, false
	}
	return id, true
}

func (h *CategoryHandler) fail(w http.ResponseWriter, op string, err error) {
	var inUse *category.InUseError
	switch {
	case errors.Is(err, category.ErrNotFound):
		writeError(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, category.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Category already exists")
	case errors.Is(err, category.ErrNameTaken):
		writeError(w, http.StatusConflict, "Category name already exists")
	case errors.As(err, &inUse):
		writeError(w, http.StatusConflict,
			fmt.Sprintf("Cannot delete category. %d products are using this category.", inUse.Products))
	default:
		writeFailure(w, h.Logger, op, err)
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	categories, err := h.Service.List(r.Context(), activeOnly)
	if err != nil {
		h.fail(w, "list categories", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.categoryID(w, r)
	if !ok {
		return
	}

	c, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, "get category", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, c)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in category.Input
	if ok := DecodeJSONBody(w, r, &in); !ok {
		return
	}

	c, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.fail(w, "create category", err)
		return
	}

	if ok := writeJSON(w, h.Logger, http.StatusCreated, c); ok {
		h.Logger.Info("category created", "category", c.ID, "name", c.Name)
	}
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.categoryID(w, r)
	if !ok {
		return
	}

	var in category.Input
	if ok := DecodeJSONBody(w, r, &in); !ok {
		return
	}

	c, err := h.Service.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, "update category", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, c)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.categoryID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete category", err)
		return
	}

	if ok := writeMessage(w, h.Logger, "Category deleted successfully"); ok {
		h.Logger.Info("category deleted", "category", id)
	}
}
