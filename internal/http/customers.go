package http

import (
	"net/http"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/pkg/httpx"
)

// CustomersHandler exposes CRUD over the customer register.
type CustomersHandler struct {
	Customers *service.CustomerService
}

// HandleList godoc
//
//	@Summary	List customers
//	@Tags		Customers
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	domain.Customer
//	@Router		/v1/customers [get].
func (h *CustomersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Customers.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *CustomersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.Customers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

// HandleCreate godoc
//
//	@Summary	Create a customer
//	@Tags		Customers
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		domain.Customer	true	"Customer"
//	@Success	201		{object}	domain.Customer
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/customers [post].
func (h *CustomersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if !decodeJSON(w, r, &c) {
		return
	}

	created, err := h.Customers.Create(r.Context(), c)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *CustomersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if !decodeJSON(w, r, &c) {
		return
	}
	c.ID = r.PathValue("id")

	updated, err := h.Customers.Update(r.Context(), c)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *CustomersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Customers.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
