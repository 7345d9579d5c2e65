package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tenantDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/tenant"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
	"github.com/netfibra/backoffice/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(params user.ListParams) ([]*userDatamodel.User, int64, error) {
	query := r.db.Model(&userDatamodel.User{})
	if params.Role != nil {
		query = query.Where("role = ?", *params.Role)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.TenantID != nil {
		query = query.Where("tenant_id = ?", *params.TenantID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*userDatamodel.User
	err := query.Order("name ASC").Limit(params.PerPage).Offset(params.Offset()).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) GetByID(id uuid.UUID) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&userDatamodel.User{}, "id = ?", id).Error
}

func (r *UserRepository) TenantExists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&tenantDatamodel.Tenant{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
