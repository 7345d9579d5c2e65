package material

import (
	"github.com/google/uuid"

	errors "github.com/netfibra/backoffice/internal"
	"github.com/netfibra/backoffice/internal/core/common/validation"
)

type CreateMaterialDTO struct {
	Codigo    string    `json:"codigo"`
	Descricao string    `json:"descricao"`
	UnidadeID uuid.UUID `json:"unidade_id"`
	Ativo     *bool     `json:"ativo"`
}

func (d *CreateMaterialDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("codigo", d.Codigo).Required().MaxLength(50)
	v.Field("descricao", d.Descricao).Required().MaxLength(255)
	return v.Validate()
}

type UpdateMaterialDTO struct {
	Codigo    *string    `json:"codigo"`
	Descricao *string    `json:"descricao"`
	UnidadeID *uuid.UUID `json:"unidade_id"`
	Ativo     *bool      `json:"ativo"`
}

func (d *UpdateMaterialDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Codigo != nil {
		v.Field("codigo", *d.Codigo).Required().MaxLength(50)
	}
	if d.Descricao != nil {
		v.Field("descricao", *d.Descricao).Required().MaxLength(255)
	}
	return v.Validate()
}

type ListParams struct {
	Page    int
	PerPage int
	Ativo   *bool
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
	Items   []*Material `json:"items"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}
