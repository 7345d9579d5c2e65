package tenant

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/netfibra/backoffice/internal"
	tenantDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/tenant"
)

type RepositoryAPI interface {
	List(status *string, limit, offset int) ([]*tenantDatamodel.Tenant, int64, error)
	GetByID(id uuid.UUID) (*tenantDatamodel.Tenant, error)
	Create(tenant *tenantDatamodel.Tenant) error
	Update(tenant *tenantDatamodel.Tenant) error
	Delete(id uuid.UUID) error

	CountUsersByTenant(tenantID uuid.UUID) (int64, error)
	CountLPUsByTenant(tenantID uuid.UUID) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, dto CreateTenantDTO) (*Tenant, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &tenantDatamodel.Tenant{
		Name:   dto.Name,
		Status: tenantDatamodel.StatusActive,
	}
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create tenant", "error", err, "name", dto.Name)
		return nil, errors.TranslateDBError(err, errors.NewConflictError("tenant conflicts with an existing record", errors.ErrCodeDuplicateName))
	}

	s.logger.Info("tenant created", "tenant_id", model.ID, "name", model.Name)
	return FromDataModel(model), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get tenant", err)
	}
	if model == nil {
		return nil, errors.ErrTenantNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) List(ctx context.Context, params ListParams) (*ListResponse, error) {
	params.Normalize()
	models, total, err := s.repo.List(params.Status, params.PerPage, params.Offset())
	if err != nil {
		return nil, errors.NewInternalError("failed to list tenants", err)
	}

	items := make([]*Tenant, 0, len(models))
	for _, m := range models {
		items = append(items, FromDataModel(m))
	}
	return &ListResponse{Items: items, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, dto UpdateTenantDTO) (*Tenant, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get tenant", err)
	}
	if model == nil {
		return nil, errors.ErrTenantNotFound
	}

	if dto.Name != nil {
		model.Name = *dto.Name
	}
	if dto.Status != nil {
		model.Status = tenantDatamodel.Status(*dto.Status)
	}
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(model); err != nil {
		return nil, errors.TranslateDBError(err, errors.NewConflictError("tenant conflicts with an existing record", errors.ErrCodeDuplicateName))
	}
	return FromDataModel(model), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return errors.NewInternalError("failed to get tenant", err)
	}
	if model == nil {
		return errors.ErrTenantNotFound
	}

	inUse := errors.NewConflictError("tenant still owns users or price lists and cannot be deleted", errors.ErrCodeEntityInUse)
	users, err := s.repo.CountUsersByTenant(id)
	if err != nil {
		return errors.NewInternalError("failed to count tenant users", err)
	}
	lpus, err := s.repo.CountLPUsByTenant(id)
	if err != nil {
		return errors.NewInternalError("failed to count tenant price lists", err)
	}
	if users > 0 || lpus > 0 {
		return inUse
	}

	if err := s.repo.Delete(id); err != nil {
		return errors.TranslateDBError(err, inUse)
	}
	s.logger.Info("tenant deleted", "tenant_id", id)
	return nil
}
