package rbac

import (
	"context"
	"log/slog"

	errors "github.com/netfibra/backoffice/internal"
	rbacDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/rbac"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
	"github.com/netfibra/backoffice/internal/core/events"
)

type RepositoryAPI interface {
	ListPermissions() ([]*rbacDatamodel.Permission, error)
	ListScreenPermissions(role userDatamodel.Role) ([]*rbacDatamodel.ScreenPermission, error)
	ListAllScreenPermissions() ([]*rbacDatamodel.ScreenPermission, error)
	ReplaceScreenPermissions(role userDatamodel.Role, rows []*rbacDatamodel.ScreenPermission) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo   RepositoryAPI
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// GetForRole returns the effective matrix for a role. Stored rows are the
// only source of grants: a screen without a row is fully denied, so dropping
// rows revokes access. MASTER bypasses the matrix and reads as all-allowed.
func (s *Service) GetForRole(ctx context.Context, role userDatamodel.Role) (ScreenPermissionsMap, error) {
	if !role.Valid() {
		return nil, errors.NewValidationError("unknown role", errors.ErrCodeValidationFailed)
	}
	if role == userDatamodel.RoleMaster {
		return fullMatrix(), nil
	}

	rows, err := s.repo.ListScreenPermissions(role)
	if err != nil {
		return nil, errors.NewInternalError("failed to load screen permissions", err)
	}

	matrix := deniedMatrix()
	for _, row := range rows {
		matrix[row.ScreenKey] = ScreenActionSet{
			View:   row.CanView,
			Create: row.CanCreate,
			Edit:   row.CanEdit,
			Delete: row.CanDelete,
		}
	}
	return matrix, nil
}

// GetAll assembles the full admin-panel view: every role's effective matrix.
func (s *Service) GetAll(ctx context.Context) (map[userDatamodel.Role]ScreenPermissionsMap, error) {
	rows, err := s.repo.ListAllScreenPermissions()
	if err != nil {
		return nil, errors.NewInternalError("failed to load screen permissions", err)
	}

	all := make(map[userDatamodel.Role]ScreenPermissionsMap, len(userDatamodel.AllRoles()))
	for _, role := range userDatamodel.AllRoles() {
		if role == userDatamodel.RoleMaster {
			all[role] = fullMatrix()
			continue
		}
		all[role] = deniedMatrix()
	}
	for _, row := range rows {
		matrix, ok := all[row.Role]
		if !ok {
			continue
		}
		matrix[row.ScreenKey] = ScreenActionSet{
			View:   row.CanView,
			Create: row.CanCreate,
			Edit:   row.CanEdit,
			Delete: row.CanDelete,
		}
	}
	return all, nil
}

// ReplaceForRole swaps a role's stored matrix wholesale: every previous row
// is dropped and the submitted map inserted, in one transaction. Screens left
// out of the map end up denied — the caller sends the complete picture.
func (s *Service) ReplaceForRole(ctx context.Context, role userDatamodel.Role, screens ScreenPermissionsMap) (ScreenPermissionsMap, error) {
	if !role.Valid() {
		return nil, errors.NewValidationError("unknown role", errors.ErrCodeValidationFailed)
	}
	if role == userDatamodel.RoleMaster {
		return nil, errors.NewValidationError("MASTER permissions cannot be changed", errors.ErrCodeRoleImmutable)
	}

	rows := make([]*rbacDatamodel.ScreenPermission, 0, len(screens))
	for key, actions := range screens {
		if _, ok := GetScreen(key); !ok {
			return nil, errors.NewValidationError("unknown screen key: "+key, errors.ErrCodeValidationFailed)
		}
		rows = append(rows, &rbacDatamodel.ScreenPermission{
			Role:      role,
			ScreenKey: key,
			CanView:   actions.View,
			CanCreate: actions.Create,
			CanEdit:   actions.Edit,
			CanDelete: actions.Delete,
		})
	}

	if err := s.repo.ReplaceScreenPermissions(role, rows); err != nil {
		s.logger.Error("failed to replace screen permissions", "error", err, "role", role)
		return nil, errors.TranslateDBError(err, errors.NewConflictError("screen permissions conflict", errors.ErrCodeConstraint))
	}

	s.logger.Info("screen permissions replaced", "role", role, "screens", len(rows))
	s.bus.Publish(ctx, events.NewDomainEvent(events.EventTypeMatrixReplaced, map[string]interface{}{
		"role":    string(role),
		"screens": len(rows),
	}))

	// Read back through the usual path so the caller sees the matrix exactly
	// as subsequent reads will.
	return s.GetForRole(ctx, role)
}

// Allowed answers the fail-closed gate question for middleware: MASTER may do
// everything, everyone else needs an explicit grant for the screen/action.
func (s *Service) Allowed(ctx context.Context, role userDatamodel.Role, screenKey string, action ScreenAction) (bool, error) {
	if role == userDatamodel.RoleMaster {
		return true, nil
	}

	matrix, err := s.GetForRole(ctx, role)
	if err != nil {
		return false, err
	}
	actions, ok := matrix[screenKey]
	if !ok {
		return false, nil
	}
	return actions.Allows(action), nil
}

func (s *Service) ListPermissions(ctx context.Context) ([]*Permission, error) {
	models, err := s.repo.ListPermissions()
	if err != nil {
		return nil, errors.NewInternalError("failed to list permissions", err)
	}

	perms := make([]*Permission, 0, len(models))
	for _, m := range models {
		perms = append(perms, PermissionFromDataModel(m))
	}
	return perms, nil
}
