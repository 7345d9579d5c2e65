package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/netfibra/backoffice/internal"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
	"github.com/netfibra/backoffice/internal/core/events"
)

type RepositoryAPI interface {
	List(params ListParams) ([]*userDatamodel.User, int64, error)
	GetByID(id uuid.UUID) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Create(user *userDatamodel.User) error
	Update(user *userDatamodel.User) error
	Delete(id uuid.UUID) error

	TenantExists(id uuid.UUID) (bool, error)
}

// PasswordHasher is satisfied by the auth service so the hashing cost lives
// in one place.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, bus: bus, logger: logger}
}

// Create registers an account. MASTER accounts are global and carry no
// tenant; every other role must be bound to an existing tenant. New accounts
// start PENDING until an admin approves them.
func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role := userDatamodel.Role(dto.Role)
	if role == userDatamodel.RoleMaster {
		if dto.TenantID != nil {
			return nil, errors.NewValidationError("a MASTER account cannot be bound to a tenant", errors.ErrCodeValidationFailed)
		}
	} else {
		if dto.TenantID == nil {
			return nil, errors.NewValidationError("tenant_id is required for tenant-bound roles", errors.ErrCodeTenantRequired)
		}
		exists, err := s.repo.TenantExists(*dto.TenantID)
		if err != nil {
			return nil, errors.NewInternalError("failed to check tenant", err)
		}
		if !exists {
			return nil, errors.ErrTenantNotFound
		}
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return nil, errors.NewInternalError("failed to check email", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("a user with this email already exists", errors.ErrCodeDuplicateEmail)
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	model := &userDatamodel.User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		Role:         role,
		Status:       userDatamodel.StatusPending,
		TenantID:     dto.TenantID,
		IsActive:     true,
	}
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, errors.TranslateDBError(err, errors.NewConflictError("a user with this email already exists", errors.ErrCodeDuplicateEmail))
	}

	s.logger.Info("user created", "user_id", model.ID, "email", model.Email, "role", model.Role)
	if s.bus != nil {
		s.bus.Publish(ctx, events.NewDomainEvent(events.EventTypeUserCreated, map[string]interface{}{
			"user_id": model.ID.String(),
			"email":   model.Email,
			"role":    string(model.Role),
		}))
	}
	return FromDataModel(model), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get user", err)
	}
	if model == nil {
		return nil, errors.ErrUserNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) List(ctx context.Context, params ListParams) (*ListResponse, error) {
	params.Normalize()
	models, total, err := s.repo.List(params)
	if err != nil {
		return nil, errors.NewInternalError("failed to list users", err)
	}

	items := make([]*User, 0, len(models))
	for _, m := range models {
		items = append(items, FromDataModel(m))
	}
	return &ListResponse{Items: items, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}

// Update mutates profile fields. A MASTER account never changes role, the
// same way the permission matrix treats MASTER as fixed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get user", err)
	}
	if model == nil {
		return nil, errors.ErrUserNotFound
	}

	if dto.Role != nil && model.Role == userDatamodel.RoleMaster && userDatamodel.Role(*dto.Role) != userDatamodel.RoleMaster {
		return nil, errors.NewValidationError("a MASTER account cannot change role", errors.ErrCodeRoleImmutable)
	}

	if dto.Name != nil {
		model.Name = *dto.Name
	}
	if dto.Role != nil {
		model.Role = userDatamodel.Role(*dto.Role)
	}
	if dto.Status != nil {
		model.Status = userDatamodel.Status(*dto.Status)
	}
	if dto.IsActive != nil {
		model.IsActive = *dto.IsActive
	}
	if dto.Password != nil {
		hash, err := s.hasher.HashPassword(*dto.Password)
		if err != nil {
			return nil, errors.NewInternalError("failed to hash password", err)
		}
		model.PasswordHash = hash
	}
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(model); err != nil {
		return nil, errors.TranslateDBError(err, errors.NewConflictError("a user with this email already exists", errors.ErrCodeDuplicateEmail))
	}
	return FromDataModel(model), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return errors.NewInternalError("failed to get user", err)
	}
	if model == nil {
		return errors.ErrUserNotFound
	}
	if model.Role == userDatamodel.RoleMaster {
		return errors.NewValidationError("a MASTER account cannot be deleted", errors.ErrCodeRoleImmutable)
	}

	if err := s.repo.Delete(id); err != nil {
		return errors.TranslateDBError(err, errors.NewConflictError("user still owns dependent records", errors.ErrCodeEntityInUse))
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// Approve moves a pending account to APPROVED so it can log in.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*User, error) {
	status := string(userDatamodel.StatusApproved)
	return s.Update(ctx, id, UpdateUserDTO{Status: &status})
}

// Block locks an account out without deleting it.
func (s *Service) Block(ctx context.Context, id uuid.UUID) (*User, error) {
	status := string(userDatamodel.StatusBlocked)
	return s.Update(ctx, id, UpdateUserDTO{Status: &status})
}
