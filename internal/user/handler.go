package user

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/netfibra/backoffice/internal"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
	"github.com/netfibra/backoffice/internal/transport"
	"github.com/netfibra/backoffice/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto CreateUserDTO) (*User, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context, params ListParams) (*ListResponse, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Approve(ctx context.Context, id uuid.UUID) (*User, error)
	Block(ctx context.Context, id uuid.UUID) (*User, error)
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

// scope narrows a request to the caller's tenant. A tenant-bound admin only
// ever sees accounts of its own tenant; a global MASTER sees everything and
// may filter by ?tenant_id=.
func (h *Handler) scope(r *http.Request, params *ListParams) bool {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		return false
	}
	if actor.TenantID != nil {
		params.TenantID = actor.TenantID
		return true
	}
	if raw := r.URL.Query().Get("tenant_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			params.TenantID = &id
		}
	}
	return true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// A tenant-bound caller can only create users inside its own tenant.
	if actor, ok := internal.ActorFromContext(r.Context()); ok && actor.TenantID != nil {
		dto.TenantID = actor.TenantID
	}

	created, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	u, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !h.visibleTo(r, u) {
		h.HandleServiceError(w, internal.ErrUserNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
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
	if role := r.URL.Query().Get("role"); role != "" {
		params.Role = &role
	}
	if status := r.URL.Query().Get("status"); status != "" {
		params.Status = &status
	}
	if !h.scope(r, &params) {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	resp, err := h.Service.List(r.Context(), params)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.canTouch(r, id, w) {
		return
	}

	u, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if !h.canTouch(r, id, w) {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Approve)
}

func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Block)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, uuid.UUID) (*User, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if !h.canTouch(r, id, w) {
		return
	}

	u, err := fn(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// visibleTo hides accounts of other tenants from a tenant-bound caller.
// Global accounts are only visible to other global accounts.
func (h *Handler) visibleTo(r *http.Request, u *User) bool {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		return false
	}
	if actor.TenantID == nil {
		return true
	}
	return u.TenantID != nil && *u.TenantID == *actor.TenantID
}

func (h *Handler) canTouch(r *http.Request, id uuid.UUID, w http.ResponseWriter) bool {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if actor.Role == userDatamodel.RoleMaster {
		return true
	}

	target, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return false
	}
	if !h.visibleTo(r, target) {
		h.HandleServiceError(w, internal.ErrUserNotFound)
		return false
	}
	return true
}
