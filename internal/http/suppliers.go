package http

import (
	"net/http"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/pkg/httpx"
)

// SuppliersHandler exposes CRUD over the supplier register.
type SuppliersHandler struct {
	Suppliers *service.SupplierService
}

// HandleList godoc
//
//	@Summary	List suppliers
//	@Tags		Suppliers
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	domain.Supplier
//	@Router		/v1/suppliers [get].
func (h *SuppliersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Suppliers.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *SuppliersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.Suppliers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

// HandleCreate godoc
//
//	@Summary	Create a supplier
//	@Tags		Suppliers
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		domain.Supplier	true	"Supplier"
//	@Success	201		{object}	domain.Supplier
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/suppliers [post].
func (h *SuppliersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var s domain.Supplier
	if !decodeJSON(w, r, &s) {
		return
	}

	created, err := h.Suppliers.Create(r.Context(), s)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *SuppliersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var s domain.Supplier
	if !decodeJSON(w, r, &s) {
		return
	}
	s.ID = r.PathValue("id")

	updated, err := h.Suppliers.Update(r.Context(), s)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *SuppliersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Suppliers.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
