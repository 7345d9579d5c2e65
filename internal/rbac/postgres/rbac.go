package postgres

import (
	"gorm.io/gorm"

	rbacDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/rbac"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
	"github.com/netfibra/backoffice/internal/rbac"
)

type RBACRepository struct {
	db *gorm.DB
}

func NewRBACRepository(db *gorm.DB) rbac.RepositoryAPI {
	return &RBACRepository{db: db}
}

func (r *RBACRepository) ListPermissions() ([]*rbacDatamodel.Permission, error) {
	var perms []*rbacDatamodel.Permission
	err := r.db.Order("module ASC, name ASC").Find(&perms).Error
	return perms, err
}

func (r *RBACRepository) ListScreenPermissions(role userDatamodel.Role) ([]*rbacDatamodel.ScreenPermission, error) {
	var rows []*rbacDatamodel.ScreenPermission
	err := r.db.Where("role = ?", role).Find(&rows).Error
	return rows, err
}

func (r *RBACRepository) ListAllScreenPermissions() ([]*rbacDatamodel.ScreenPermission, error) {
	var rows []*rbacDatamodel.ScreenPermission
	err := r.db.Order("role ASC, screen_key ASC").Find(&rows).Error
	return rows, err
}

// ReplaceScreenPermissions swaps a role's matrix atomically: readers never
// observe the window between delete and insert.
func (r *RBACRepository) ReplaceScreenPermissions(role userDatamodel.Role, rows []*rbacDatamodel.ScreenPermission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role = ?", role).Delete(&rbacDatamodel.ScreenPermission{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(rows).Error
	})
}
