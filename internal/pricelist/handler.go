package pricelist

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
	CreateLPU(ctx context.Context, tenantID uuid.UUID, dto CreateLPUDTO) (*LPU, error)
	GetLPU(ctx context.Context, tenantID, id uuid.UUID) (*LPU, error)
	ListLPUs(ctx context.Context, tenantID uuid.UUID, params ListParams) (*ListResponse, error)
	UpdateLPU(ctx context.Context, tenantID, id uuid.UUID, dto UpdateLPUDTO) (*LPU, error)
	DeleteLPU(ctx context.Context, tenantID, id uuid.UUID) error

	ListItems(ctx context.Context, tenantID, lpuID uuid.UUID, params ListParams) ([]*LPUItem, int64, error)
	AddItem(ctx context.Context, tenantID, lpuID uuid.UUID, dto AddItemDTO) (*LPUItem, error)
	UpdateItem(ctx context.Context, tenantID, lpuID, itemID uuid.UUID, dto UpdateItemDTO) (*LPUItem, error)
	RemoveItem(ctx context.Context, tenantID, lpuID, itemID uuid.UUID) error
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

// tenantFor resolves the effective tenant from the authenticated actor, with
// an optional ?tenant_id= override that only a global MASTER can use.
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

func (h *Handler) urlID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func parseListParams(r *http.Request) ListParams {
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
	if ativaStr := r.URL.Query().Get("ativa"); ativaStr != "" {
		if a, err := strconv.ParseBool(ativaStr); err == nil {
			params.Ativa = &a
		}
	}
	if parceiroStr := r.URL.Query().Get("parceiro_id"); parceiroStr != "" {
		if id, err := uuid.Parse(parceiroStr); err == nil {
			params.ParceiroID = &id
		}
	}
	return params
}

func (h *Handler) CreateLPU(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}

	var dto CreateLPUDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lpu, err := h.Service.CreateLPU(r.Context(), tenantID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, lpu)
}

func (h *Handler) GetLPU(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}
	id, ok := h.urlID(w, r, "id")
	if !ok {
		return
	}

	lpu, err := h.Service.GetLPU(r.Context(), tenantID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, lpu)
}

func (h *Handler) ListLPUs(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}

	resp, err := h.Service.ListLPUs(r.Context(), tenantID, parseListParams(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateLPU(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}
	id, ok := h.urlID(w, r, "id")
	if !ok {
		return
	}

	var dto UpdateLPUDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lpu, err := h.Service.UpdateLPU(r.Context(), tenantID, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, lpu)
}

func (h *Handler) DeleteLPU(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}
	id, ok := h.urlID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteLPU(r.Context(), tenantID, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}
	lpuID, ok := h.urlID(w, r, "id")
	if !ok {
		return
	}

	params := parseListParams(r)
	items, total, err := h.Service.ListItems(r.Context(), tenantID, lpuID, params)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":    items,
		"total":    total,
		"page":     params.Page,
		"per_page": params.PerPage,
	})
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}
	lpuID, ok := h.urlID(w, r, "id")
	if !ok {
		return
	}

	var dto AddItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.AddItem(r.Context(), tenantID, lpuID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}
	lpuID, ok := h.urlID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := h.urlID(w, r, "itemID")
	if !ok {
		return
	}

	var dto UpdateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), tenantID, lpuID, itemID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantFor(w, r)
	if !ok {
		return
	}
	lpuID, ok := h.urlID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := h.urlID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.Service.RemoveItem(r.Context(), tenantID, lpuID, itemID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
