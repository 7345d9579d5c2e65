package partner

import (
	"github.com/google/uuid"

	errors "github.com/netfibra/backoffice/internal"
	"github.com/netfibra/backoffice/internal/core/common/validation"
)

type CreatePartnerDTO struct {
	UserID   uuid.UUID  `json:"user_id"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`

	PersonType          *string `json:"person_type"`
	Document            *string `json:"cpf_cnpj"`
	Phone               *string `json:"phone"`
	AddressStreet       *string `json:"address_street"`
	AddressNumber       *string `json:"address_number"`
	AddressComplement   *string `json:"address_complement"`
	AddressNeighborhood *string `json:"address_neighborhood"`
	AddressCity         *string `json:"address_city"`
	AddressState        *string `json:"address_state"`
	AddressZip          *string `json:"address_cep"`
	Notes               *string `json:"notes"`
}

func (d *CreatePartnerDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.PersonType != nil {
		v.Field("person_type", *d.PersonType).Custom(func(value interface{}) *errors.AppError {
			if s, ok := value.(string); ok && s != "PF" && s != "PJ" {
				return errors.NewValidationFieldError("person_type", "person_type must be PF or PJ", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	}
	if d.Document != nil {
		v.Field("cpf_cnpj", *d.Document).MaxLength(18)
	}
	return v.Validate()
}

type UpdatePartnerDTO struct {
	PersonType          *string `json:"person_type"`
	Document            *string `json:"cpf_cnpj"`
	Phone               *string `json:"phone"`
	AddressStreet       *string `json:"address_street"`
	AddressNumber       *string `json:"address_number"`
	AddressComplement   *string `json:"address_complement"`
	AddressNeighborhood *string `json:"address_neighborhood"`
	AddressCity         *string `json:"address_city"`
	AddressState        *string `json:"address_state"`
	AddressZip          *string `json:"address_cep"`
	Notes               *string `json:"notes"`
}

func (d *UpdatePartnerDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.PersonType != nil {
		v.Field("person_type", *d.PersonType).Custom(func(value interface{}) *errors.AppError {
			if s, ok := value.(string); ok && s != "PF" && s != "PJ" {
				return errors.NewValidationFieldError("person_type", "person_type must be PF or PJ", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	}
	return v.Validate()
}

type ListParams struct {
	Page    int
	PerPage int
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
	Items   []*Partner `json:"items"`
	Total   int64      `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
}
