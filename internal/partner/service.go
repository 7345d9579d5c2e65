package partner

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/netfibra/backoffice/internal"
	partnerDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/partner"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	List(tenantID uuid.UUID, limit, offset int) ([]*partnerDatamodel.PartnerProfile, int64, error)
	GetByID(id uuid.UUID) (*partnerDatamodel.PartnerProfile, error)
	GetByUserID(userID uuid.UUID) (*partnerDatamodel.PartnerProfile, error)
	Create(profile *partnerDatamodel.PartnerProfile) error
	Update(profile *partnerDatamodel.PartnerProfile) error
	Delete(id uuid.UUID) error

	GetUserByID(id uuid.UUID) (*userDatamodel.User, error)
	CountLPUsByParceiro(parceiroID uuid.UUID) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// profileInTenant hides profiles of other tenants as not-found.
func (s *Service) profileInTenant(tenantID, id uuid.UUID) (*partnerDatamodel.PartnerProfile, error) {
	profile, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get partner", err)
	}
	if profile == nil || profile.TenantID != tenantID {
		return nil, errors.ErrPartnerNotFound
	}
	return profile, nil
}

func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, dto CreatePartnerDTO) (*Partner, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(dto.UserID)
	if err != nil {
		return nil, errors.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	if user.Role != userDatamodel.RolePartner {
		return nil, errors.NewValidationError("linked user must carry the PARTNER role", errors.ErrCodeValidationFailed)
	}
	if user.TenantID == nil || *user.TenantID != tenantID {
		return nil, errors.ErrUserNotFound
	}

	duplicate := errors.NewConflictError("user already has a partner profile", errors.ErrCodeEntityInUse)
	existing, err := s.repo.GetByUserID(dto.UserID)
	if err != nil {
		return nil, errors.NewInternalError("failed to check partner profile", err)
	}
	if existing != nil {
		return nil, duplicate
	}

	model := &partnerDatamodel.PartnerProfile{
		UserID:              dto.UserID,
		TenantID:            tenantID,
		PersonType:          dto.PersonType,
		Document:            dto.Document,
		Phone:               dto.Phone,
		AddressStreet:       dto.AddressStreet,
		AddressNumber:       dto.AddressNumber,
		AddressComplement:   dto.AddressComplement,
		AddressNeighborhood: dto.AddressNeighborhood,
		AddressCity:         dto.AddressCity,
		AddressState:        dto.AddressState,
		AddressZip:          dto.AddressZip,
		Notes:               dto.Notes,
	}
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create partner profile", "error", err, "user_id", dto.UserID)
		return nil, errors.TranslateDBError(err, duplicate)
	}

	s.logger.Info("partner profile created", "partner_id", model.ID, "tenant_id", tenantID)
	return FromDataModel(model), nil
}

func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*Partner, error) {
	profile, err := s.profileInTenant(tenantID, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(profile), nil
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID, params ListParams) (*ListResponse, error) {
	params.Normalize()
	models, total, err := s.repo.List(tenantID, params.PerPage, params.Offset())
	if err != nil {
		return nil, errors.NewInternalError("failed to list partners", err)
	}

	items := make([]*Partner, 0, len(models))
	for _, m := range models {
		items = append(items, FromDataModel(m))
	}
	return &ListResponse{Items: items, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}

func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, dto UpdatePartnerDTO) (*Partner, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.profileInTenant(tenantID, id)
	if err != nil {
		return nil, err
	}

	if dto.PersonType != nil {
		profile.PersonType = dto.PersonType
	}
	if dto.Document != nil {
		profile.Document = dto.Document
	}
	if dto.Phone != nil {
		profile.Phone = dto.Phone
	}
	if dto.AddressStreet != nil {
		profile.AddressStreet = dto.AddressStreet
	}
	if dto.AddressNumber != nil {
		profile.AddressNumber = dto.AddressNumber
	}
	if dto.AddressComplement != nil {
		profile.AddressComplement = dto.AddressComplement
	}
	if dto.AddressNeighborhood != nil {
		profile.AddressNeighborhood = dto.AddressNeighborhood
	}
	if dto.AddressCity != nil {
		profile.AddressCity = dto.AddressCity
	}
	if dto.AddressState != nil {
		profile.AddressState = dto.AddressState
	}
	if dto.AddressZip != nil {
		profile.AddressZip = dto.AddressZip
	}
	if dto.Notes != nil {
		profile.Notes = dto.Notes
	}
	profile.UpdatedAt = time.Now()

	if err := s.repo.Update(profile); err != nil {
		return nil, errors.TranslateDBError(err, errors.NewConflictError("partner profile conflicts with an existing record", errors.ErrCodeConstraint))
	}
	return FromDataModel(profile), nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	profile, err := s.profileInTenant(tenantID, id)
	if err != nil {
		return err
	}

	inUse := errors.NewConflictError("partner holds price lists and cannot be deleted", errors.ErrCodeEntityInUse)
	count, err := s.repo.CountLPUsByParceiro(profile.ID)
	if err != nil {
		return errors.NewInternalError("failed to count partner price lists", err)
	}
	if count > 0 {
		return inUse
	}

	if err := s.repo.Delete(profile.ID); err != nil {
		return errors.TranslateDBError(err, inUse)
	}
	s.logger.Info("partner profile deleted", "partner_id", id, "tenant_id", tenantID)
	return nil
}
