package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the coarse access profile carried by every user account. The
// matrix in screen_permissions refines what each role may do per screen.
type Role string

const (
	RoleMaster  Role = "MASTER"
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
	RolePartner Role = "PARTNER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMaster, RoleAdmin, RoleManager, RoleStaff, RolePartner:
		return true
	}
	return false
}

// AllRoles lists every assignable role, in privilege order.
func AllRoles() []Role {
	return []Role{RoleMaster, RoleAdmin, RoleManager, RoleStaff, RolePartner}
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusBlocked  Status = "BLOCKED"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	Name         string     `gorm:"column:name;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         Role       `gorm:"column:role;not null"`
	Status       Status     `gorm:"column:status;not null;default:'PENDING'"`
	TenantID     *uuid.UUID `gorm:"column:tenant_id;type:uuid;index"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
