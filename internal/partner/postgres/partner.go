package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	partnerDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/partner"
	pricelistDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/pricelist"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
	"github.com/netfibra/backoffice/internal/partner"
)

type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) partner.RepositoryAPI {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) List(tenantID uuid.UUID, limit, offset int) ([]*partnerDatamodel.PartnerProfile, int64, error) {
	query := r.db.Model(&partnerDatamodel.PartnerProfile{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []*partnerDatamodel.PartnerProfile
	err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, total, err
}

func (r *PartnerRepository) GetByID(id uuid.UUID) (*partnerDatamodel.PartnerProfile, error) {
	var profile partnerDatamodel.PartnerProfile
	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PartnerRepository) GetByUserID(userID uuid.UUID) (*partnerDatamodel.PartnerProfile, error) {
	var profile partnerDatamodel.PartnerProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PartnerRepository) Create(profile *partnerDatamodel.PartnerProfile) error {
	return r.db.Create(profile).Error
}

func (r *PartnerRepository) Update(profile *partnerDatamodel.PartnerProfile) error {
	return r.db.Save(profile).Error
}

func (r *PartnerRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&partnerDatamodel.PartnerProfile{}, "id = ?", id).Error
}

func (r *PartnerRepository) GetUserByID(id uuid.UUID) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *PartnerRepository) CountLPUsByParceiro(parceiroID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&pricelistDatamodel.LPU{}).Where("parceiro_id = ?", parceiroID).Count(&count).Error
	return count, err
}
