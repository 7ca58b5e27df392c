package http

import (
	"net/http"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/pkg/httpx"
)

// StocksHandler exposes CRUD over stock batches, for stocktake corrections
// outside the purchase flow.
type StocksHandler struct {
	Stocks *service.StockService
}

// HandleList godoc
//
//	@Summary	List stock batches
//	@Tags		Stocks
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	domain.Stock
//	@Router		/v1/stocks [get].
func (h *StocksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Stocks.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *StocksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.Stocks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

// HandleCreate godoc
//
//	@Summary	Create a stock batch
//	@Tags		Stocks
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		domain.Stock	true	"Stock batch"
//	@Success	201		{object}	domain.Stock
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/stocks [post].
func (h *StocksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var s domain.Stock
	if !decodeJSON(w, r, &s) {
		return
	}

	created, err := h.Stocks.Create(r.Context(), s)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *StocksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var s domain.Stock
	if !decodeJSON(w, r, &s) {
		return
	}
	s.ID = r.PathValue("id")

	updated, err := h.Stocks.Update(r.Context(), s)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *StocksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Stocks.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
