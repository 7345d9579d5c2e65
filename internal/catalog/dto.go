package catalog

import (
	"github.com/google/uuid"

	errors "github.com/netfibra/backoffice/internal"
	"github.com/netfibra/backoffice/internal/core/common/validation"
)

type CreateClasseDTO struct {
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
	Ativa     *bool   `json:"ativa"`
}

func (d *CreateClasseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("nome", d.Nome).Required().MaxLength(100)
	return v.Validate()
}

type UpdateClasseDTO struct {
	Nome      *string `json:"nome"`
	Descricao *string `json:"descricao"`
	Ativa     *bool   `json:"ativa"`
}

func (d *UpdateClasseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Nome != nil {
		v.Field("nome", *d.Nome).Required().MaxLength(100)
	}
	return v.Validate()
}

type CreateUnidadeDTO struct {
	Nome  string `json:"nome"`
	Sigla string `json:"sigla"`
	Ativa *bool  `json:"ativa"`
}

func (d *CreateUnidadeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("nome", d.Nome).Required().MaxLength(100)
	v.Field("sigla", d.Sigla).Required().MaxLength(20)
	return v.Validate()
}

type UpdateUnidadeDTO struct {
	Nome  *string `json:"nome"`
	Sigla *string `json:"sigla"`
	Ativa *bool   `json:"ativa"`
}

func (d *UpdateUnidadeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Sigla != nil {
		v.Field("sigla", *d.Sigla).Required().MaxLength(20)
	}
	return v.Validate()
}

type CreateServicoDTO struct {
	Codigo    string    `json:"codigo"`
	Atividade string    `json:"atividade"`
	ClasseID  uuid.UUID `json:"classe_id"`
	UnidadeID uuid.UUID `json:"unidade_id"`
	Ativo     *bool     `json:"ativo"`
}

func (d *CreateServicoDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("codigo", d.Codigo).Required().MaxLength(50)
	v.Field("atividade", d.Atividade).Required().MaxLength(255)
	return v.Validate()
}

type UpdateServicoDTO struct {
	Codigo    *string    `json:"codigo"`
	Atividade *string    `json:"atividade"`
	ClasseID  *uuid.UUID `json:"classe_id"`
	UnidadeID *uuid.UUID `json:"unidade_id"`
	Ativo     *bool      `json:"ativo"`
}

func (d *UpdateServicoDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Codigo != nil {
		v.Field("codigo", *d.Codigo).Required().MaxLength(50)
	}
	if d.Atividade != nil {
		v.Field("atividade", *d.Atividade).Required().MaxLength(255)
	}
	return v.Validate()
}

// ListParams paginates catalog listings; Ativa filters on the active flag
// when set, ClasseID narrows servico listings to one classe.
type ListParams struct {
	Page     int
	PerPage  int
	Ativa    *bool
	ClasseID *uuid.UUID
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

type ListResponse[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}
