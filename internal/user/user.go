package user

import (
	"time"

	"github.com/google/uuid"

	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
)

// User is the API view of an account. The password hash never leaves the
// datamodel layer.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	TenantID  *uuid.UUID `json:"tenant_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func FromDataModel(m *userDatamodel.User) *User {
	if m == nil {
		return nil
	}
	return &User{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      string(m.Role),
		Status:    string(m.Status),
		TenantID:  m.TenantID,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
