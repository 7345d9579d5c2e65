package partner

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/netfibra/backoffice/internal"
	"github.com/netfibra/backoffice/internal/transport"
	"github.com/netfibra/backoffice/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, tenantID uuid.UUID, dto CreatePartnerDTO) (*Partner, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*Partner, error)
	List(ctx context.Context, tenantID uuid.UUID, params ListParams) (*ListResponse, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, dto UpdatePartnerDTO) (*Partner, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

func (h *Handler) tenantFor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, false
	}

	var requested *uuid.UUID
	if raw := r.URL.Query().Get("tenant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid tenant_id")
			return uuid.Nil, false
		}
		requested = &id
	}

	tenantID, err := actor.ResolveTenant(requested)
	if err != nil {
		h.HandleServiceError(w, err)
		return uuid.Nil, false
	}
	return tenantID, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}

	var dto CreatePartnerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Create(r.Context(), tenantID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.Service.Get(r.Context(), tenantID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}

	params := ListParams{Page: 1, PerPage: 20}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			params.Page = p
		}
	}
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 && pp <= 100 {
			params.PerPage = pp
		}
	}

	resp, err := h.Service.List(r.Context(), tenantID, params)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var dto UpdatePartnerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Update(r.Context(), tenantID, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Service.Delete(r.Context(), tenantID, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
