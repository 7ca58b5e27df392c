package http

import (
	"net/http"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/pkg/httpx"
)

// OrdersHandler exposes CRUD over customer orders.
type OrdersHandler struct {
	Orders *service.OrderService
}

// HandleList godoc
//
//	@Summary	List orders
//	@Tags		Orders
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	domain.Order
//	@Router		/v1/orders [get].
func (h *OrdersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Orders.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	o, err := h.Orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

// HandleCreate godoc
//
//	@Summary	Create an order
//	@Tags		Orders
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		domain.Order	true	"Order"
//	@Success	201		{object}	domain.Order
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/orders [post].
func (h *OrdersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var o domain.Order
	if !decodeJSON(w, r, &o) {
		return
	}

	created, err := h.Orders.Create(r.Context(), o)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *OrdersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var o domain.Order
	if !decodeJSON(w, r, &o) {
		return
	}
	o.ID = r.PathValue("id")

	updated, err := h.Orders.Update(r.Context(), o)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *OrdersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
