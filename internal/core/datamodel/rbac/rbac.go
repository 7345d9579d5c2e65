package rbac

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
)

// Permission is a named coarse capability, grouped by module.
type Permission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description *string   `gorm:"column:description"`
	Module      *string   `gorm:"column:module"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Permission) TableName() string { return "permissions" }

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// RolePermission grants one permission to one role. Composite primary key;
// rows go away with their permission (CASCADE).
type RolePermission struct {
	Role         userDatamodel.Role `gorm:"column:role;primaryKey"`
	PermissionID uuid.UUID          `gorm:"column:permission_id;type:uuid;primaryKey"`

	Permission *Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

func (RolePermission) TableName() string { return "role_permissions" }

// ScreenPermission is one cell row of the runtime-editable matrix: what a
// role may do on one UI screen. A missing row means every action is denied.
type ScreenPermission struct {
	Role      userDatamodel.Role `gorm:"column:role;primaryKey"`
	ScreenKey string             `gorm:"column:screen_key;primaryKey"`
	CanView   bool               `gorm:"column:can_view;not null;default:false"`
	CanCreate bool               `gorm:"column:can_create;not null;default:false"`
	CanEdit   bool               `gorm:"column:can_edit;not null;default:false"`
	CanDelete bool               `gorm:"column:can_delete;not null;default:false"`
}

func (ScreenPermission) TableName() string { return "screen_permissions" }
