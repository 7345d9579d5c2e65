package rbac

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/netfibra/backoffice/internal"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
	"github.com/netfibra/backoffice/internal/transport"
	"github.com/netfibra/backoffice/pkg/logger"
)

type ServiceAPI interface {
	GetForRole(ctx context.Context, role userDatamodel.Role) (ScreenPermissionsMap, error)
	GetAll(ctx context.Context) (map[userDatamodel.Role]ScreenPermissionsMap, error)
	ReplaceForRole(ctx context.Context, role userDatamodel.Role, screens ScreenPermissionsMap) (ScreenPermissionsMap, error)
	ListPermissions(ctx context.Context) ([]*Permission, error)
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

func (h *Handler) requireMaster(w http.ResponseWriter, r *http.Request) bool {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if actor.Role != userDatamodel.RoleMaster {
		h.HandleServiceError(w, internal.NewForbiddenError("only MASTER can manage access profiles", internal.ErrCodeInsufficientRole))
		return false
	}
	return true
}

// ListAll returns every role's effective matrix (MASTER only).
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	if !h.requireMaster(w, r) {
		return
	}

	all, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"permissions": all})
}

// MyPermissions returns the authenticated user's effective matrix.
func (h *Handler) MyPermissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	matrix, err := h.Service.GetForRole(r.Context(), actor.Role)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"permissions": matrix})
}

type replacePayload struct {
	Screens ScreenPermissionsMap `json:"screens"`
}

// ReplaceForRole swaps a role's stored matrix (MASTER only).
func (h *Handler) ReplaceForRole(w http.ResponseWriter, r *http.Request) {
	if !h.requireMaster(w, r) {
		return
	}

	role := userDatamodel.Role(chi.URLParam(r, "role"))

	var payload replacePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	matrix, err := h.Service.ReplaceForRole(r.Context(), role, payload.Screens)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"permissions": matrix})
}

// ListPermissions returns the coarse capability list (MASTER only).
func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	if !h.requireMaster(w, r) {
		return
	}

	perms, err := h.Service.ListPermissions(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": perms})
}

// Screens lists the registered screen definitions.
func (h *Handler) Screens(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"screens": Screens})
}
