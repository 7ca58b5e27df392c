package http

import (
	"net/http"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/pkg/httpx"
)

// SalesHandler exposes CRUD over sale records. Creating a sale draws the
// sold quantity down from the material's on-hand count.
type SalesHandler struct {
	Sales *service.SaleService
}

// HandleList godoc
//
//	@Summary	List sales
//	@Tags		Sales
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	domain.Sale
//	@Router		/v1/sales [get].
func (h *SalesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Sales.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *SalesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.Sales.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

// HandleCreate godoc
//
//	@Summary	Record a sale
//	@Tags		Sales
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		domain.Sale	true	"Sale"
//	@Success	201		{object}	domain.Sale
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	409		{object}	httpx.ErrorResponse	"insufficient stock"
//	@Router		/v1/sales [post].
func (h *SalesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var s domain.Sale
	if !decodeJSON(w, r, &s) {
		return
	}

	created, err := h.Sales.Create(r.Context(), s)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *SalesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var s domain.Sale
	if !decodeJSON(w, r, &s) {
		return
	}
	s.ID = r.PathValue("id")

	updated, err := h.Sales.Update(r.Context(), s)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *SalesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Sales.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
