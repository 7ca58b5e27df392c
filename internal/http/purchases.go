package http

import (
	"net/http"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/pkg/httpx"
)

// PurchasesHandler exposes CRUD over purchase records. Creating a purchase
// also books the delivered quantity into stock.
type PurchasesHandler struct {
	Purchases *service.PurchaseService
}

// HandleList godoc
//
//	@Summary	List purchases
//	@Tags		Purchases
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	domain.Purchase
//	@Router		/v1/purchases [get].
func (h *PurchasesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Purchases.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *PurchasesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Purchases.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

// HandleCreate godoc
//
//	@Summary	Record a purchase
//	@Tags		Purchases
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		domain.Purchase	true	"Purchase"
//	@Success	201		{object}	domain.Purchase
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/purchases [post].
func (h *PurchasesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var p domain.Purchase
	if !decodeJSON(w, r, &p) {
		return
	}

	created, err := h.Purchases.Create(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *PurchasesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var p domain.Purchase
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = r.PathValue("id")

	updated, err := h.Purchases.Update(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *PurchasesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Purchases.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
