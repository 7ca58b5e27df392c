package http

import (
	"net/http"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/pkg/httpx"
)

// OrderDetailsHandler exposes CRUD over order line items.
type OrderDetailsHandler struct {
	OrderDetails *service.OrderDetailService
}

// HandleList godoc
//
//	@Summary	List order line items
//	@Tags		Orders
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	domain.OrderDetail
//	@Router		/v1/order-details [get].
func (h *OrderDetailsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.OrderDetails.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// HandleListByOrder godoc
//
//	@Summary	List the line items of one order
//	@Tags		Orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Order ID"
//	@Success	200	{array}	domain.OrderDetail
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/v1/orders/{id}/details [get].
func (h *OrderDetailsHandler) HandleListByOrder(w http.ResponseWriter, r *http.Request) {
	list, err := h.OrderDetails.ListByOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *OrderDetailsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.OrderDetails.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

// HandleCreate godoc
//
//	@Summary	Add a line item to an order
//	@Tags		Orders
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		domain.OrderDetail	true	"Line item"
//	@Success	201		{object}	domain.OrderDetail
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/order-details [post].
func (h *OrderDetailsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var d domain.OrderDetail
	if !decodeJSON(w, r, &d) {
		return
	}

	created, err := h.OrderDetails.Create(r.Context(), d)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *OrderDetailsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var d domain.OrderDetail
	if !decodeJSON(w, r, &d) {
		return
	}
	d.ID = r.PathValue("id")

	updated, err := h.OrderDetails.Update(r.Context(), d)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *OrderDetailsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.OrderDetails.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
