package http

import (
	"net/http"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/pkg/httpx"
)

// MaterialsHandler exposes CRUD over the material catalogue.
type MaterialsHandler struct {
	Materials *service.MaterialService
}

// HandleList godoc
//
//	@Summary	List materials
//	@Tags		Materials
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	domain.Material
//	@Router		/v1/materials [get].
func (h *MaterialsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Materials.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// HandleGet godoc
//
//	@Summary	Get a material
//	@Tags		Materials
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Material ID"
//	@Success	200	{object}	domain.Material
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/v1/materials/{id} [get].
func (h *MaterialsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	m, err := h.Materials.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

// HandleCreate godoc
//
//	@Summary	Create a material
//	@Tags		Materials
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		domain.Material	true	"Material"
//	@Success	201		{object}	domain.Material
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/materials [post].
func (h *MaterialsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var m domain.Material
	if !decodeJSON(w, r, &m) {
		return
	}

	created, err := h.Materials.Create(r.Context(), m)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate godoc
//
//	@Summary	Update a material
//	@Tags		Materials
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"Material ID"
//	@Param		body	body		domain.Material	true	"Material"
//	@Success	200		{object}	domain.Material
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Router		/v1/materials/{id} [put].
func (h *MaterialsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var m domain.Material
	if !decodeJSON(w, r, &m) {
		return
	}
	m.ID = r.PathValue("id")

	updated, err := h.Materials.Update(r.Context(), m)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

// HandleDelete godoc
//
//	@Summary	Delete a material
//	@Tags		Materials
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Material ID"
//	@Success	204
//	@Failure	403	{object}	httpx.ErrorResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/v1/materials/{id} [delete].
func (h *MaterialsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Materials.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
