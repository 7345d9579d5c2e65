package tenant

import (
	errors "github.com/netfibra/backoffice/internal"
	"github.com/netfibra/backoffice/internal/core/common/validation"
	tenantDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/tenant"
)

type CreateTenantDTO struct {
	Name string `json:"name"`
}

func (d *CreateTenantDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(150)
	return v.Validate()
}

type UpdateTenantDTO struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

func (d *UpdateTenantDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(150)
	}
	if d.Status != nil {
		v.Field("status", *d.Status).Custom(func(value interface{}) *errors.AppError {
			s, _ := value.(string)
			if s != string(tenantDatamodel.StatusActive) && s != string(tenantDatamodel.StatusInactive) {
				return errors.NewValidationFieldError("status", "status must be ACTIVE or INACTIVE", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	}
	return v.Validate()
}

type ListParams struct {
	Page    int
	PerPage int
	Status  *string
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
	Items   []*Tenant `json:"items"`
	Total   int64     `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}
