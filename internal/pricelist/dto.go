package pricelist

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errors "github.com/netfibra/backoffice/internal"
	"github.com/netfibra/backoffice/internal/core/common/validation"
)

// CreateLPUDTO carries no tenant: the list always belongs to the tenant the
// caller resolved to, never to one named in the body.
type CreateLPUDTO struct {
	Nome       string     `json:"nome"`
	ParceiroID uuid.UUID  `json:"parceiro_id"`
	Ativa      *bool      `json:"ativa"`
	DataInicio *time.Time `json:"data_inicio"`
	DataFim    *time.Time `json:"data_fim"`
}

func (d *CreateLPUDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("nome", d.Nome).Required().MaxLength(150)
	return v.Validate()
}

type UpdateLPUDTO struct {
	Nome       *string    `json:"nome"`
	Ativa      *bool      `json:"ativa"`
	DataInicio *time.Time `json:"data_inicio"`
	DataFim    *time.Time `json:"data_fim"`
}

func (d *UpdateLPUDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Nome != nil {
		v.Field("nome", *d.Nome).Required().MaxLength(150)
	}
	return v.Validate()
}

// AddItemDTO keeps the unit price a pointer so a body that omits it fails
// validation instead of pricing the item at zero.
type AddItemDTO struct {
	ServicoID     uuid.UUID        `json:"servico_id"`
	ValorUnitario *decimal.Decimal `json:"valor_unitario"`
	ValorClasse   *decimal.Decimal `json:"valor_classe"`
}

func (d *AddItemDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("valor_unitario", d.ValorUnitario).
		RequiredDecimal(errors.ErrCodeInvalidPrice).
		NonNegativeDecimal(errors.ErrCodeInvalidPrice)
	v.Field("valor_classe", d.ValorClasse).NonNegativeDecimal(errors.ErrCodeInvalidPrice)
	return v.Validate()
}

// UpdateItemDTO touches prices only. Re-pointing an item at another servico
// is not supported; remove and re-add instead.
type UpdateItemDTO struct {
	ValorUnitario *decimal.Decimal `json:"valor_unitario"`
	ValorClasse   *decimal.Decimal `json:"valor_classe"`
}

func (d *UpdateItemDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("valor_unitario", d.ValorUnitario).NonNegativeDecimal(errors.ErrCodeInvalidPrice)
	v.Field("valor_classe", d.ValorClasse).NonNegativeDecimal(errors.ErrCodeInvalidPrice)
	return v.Validate()
}

type ListParams struct {
	Page       int
	PerPage    int
	Ativa      *bool
	ParceiroID *uuid.UUID
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
	Items   []*LPU `json:"items"`
	Total   int64  `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}
