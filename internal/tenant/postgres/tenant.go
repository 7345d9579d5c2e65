package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pricelistDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/pricelist"
	tenantDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/tenant"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
	"github.com/netfibra/backoffice/internal/tenant"
)

type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) tenant.RepositoryAPI {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) List(status *string, limit, offset int) ([]*tenantDatamodel.Tenant, int64, error) {
	query := r.db.Model(&tenantDatamodel.Tenant{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tenants []*tenantDatamodel.Tenant
	err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&tenants).Error
	return tenants, total, err
}

func (r *TenantRepository) GetByID(id uuid.UUID) (*tenantDatamodel.Tenant, error) {
	var t tenantDatamodel.Tenant
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) Create(t *tenantDatamodel.Tenant) error {
	return r.db.Create(t).Error
}

func (r *TenantRepository) Update(t *tenantDatamodel.Tenant) error {
	return r.db.Save(t).Error
}

func (r *TenantRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&tenantDatamodel.Tenant{}, "id = ?", id).Error
}

func (r *TenantRepository) CountUsersByTenant(tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

func (r *TenantRepository) CountLPUsByTenant(tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&pricelistDatamodel.LPU{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}
