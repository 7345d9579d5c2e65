package user

import (
	"github.com/google/uuid"

	errors "github.com/netfibra/backoffice/internal"
	"github.com/netfibra/backoffice/internal/core/common/validation"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
)

type CreateUserDTO struct {
	Email    string     `json:"email"`
	Name     string     `json:"name"`
	Password string     `json:"password"`
	Role     string     `json:"role"`
	TenantID *uuid.UUID `json:"tenant_id"`
}

func (d *CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email().MaxLength(254)
	v.Field("name", d.Name).Required().MaxLength(150)
	v.Field("password", d.Password).Required().MinLength(8)
	v.Field("role", d.Role).Required().Custom(validRole)
	return v.Validate()
}

type UpdateUserDTO struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password"`
}

func (d *UpdateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(150)
	}
	if d.Role != nil {
		v.Field("role", *d.Role).Custom(validRole)
	}
	if d.Status != nil {
		v.Field("status", *d.Status).Custom(func(value interface{}) *errors.AppError {
			s, _ := value.(string)
			switch userDatamodel.Status(s) {
			case userDatamodel.StatusPending, userDatamodel.StatusApproved, userDatamodel.StatusBlocked:
				return nil
			}
			return errors.NewValidationFieldError("status", "status must be PENDING, APPROVED or BLOCKED", errors.ErrCodeValidationFailed)
		})
	}
	if d.Password != nil {
		v.Field("password", *d.Password).Required().MinLength(8)
	}
	return v.Validate()
}

func validRole(value interface{}) *errors.AppError {
	s, _ := value.(string)
	if !userDatamodel.Role(s).Valid() {
		return errors.NewValidationFieldError("role", "unknown role", errors.ErrCodeValidationFailed)
	}
	return nil
}

type ListParams struct {
	Page     int
	PerPage  int
	Role     *string
	Status   *string
	TenantID *uuid.UUID
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = 20
	}
}

func (p *ListParams) Offset() int { return (p.Page - 1) * p.PerPage }

type ListResponse struct {
	Items   []*User `json:"items"`
	Total   int64   `json:"total"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
}
