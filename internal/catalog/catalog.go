package catalog

import (
	"time"

	"github.com/google/uuid"

	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
)

// Domain types for the global catalog. Servico intentionally has no price
// field anywhere in this package; prices exist only on price list items.

type Classe struct {
	ID        uuid.UUID `json:"id"`
	Nome      string    `json:"nome"`
	Descricao *string   `json:"descricao,omitempty"`
	Ativa     bool      `json:"ativa"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Unidade struct {
	ID        uuid.UUID `json:"id"`
	Nome      string    `json:"nome"`
	Sigla     string    `json:"sigla"`
	Ativa     bool      `json:"ativa"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Servico struct {
	ID        uuid.UUID `json:"id"`
	Codigo    string    `json:"codigo"`
	Atividade string    `json:"atividade"`
	ClasseID  uuid.UUID `json:"classe_id"`
	UnidadeID uuid.UUID `json:"unidade_id"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Classe  *Classe  `json:"classe,omitempty"`
	Unidade *Unidade `json:"unidade,omitempty"`
}

func ClasseFromDataModel(m *catalogDatamodel.Classe) *Classe {
	if m == nil {
		return nil
	}
	return &Classe{
		ID:        m.ID,
		Nome:      m.Nome,
		Descricao: m.Descricao,
		Ativa:     m.Ativa,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func UnidadeFromDataModel(m *catalogDatamodel.Unidade) *Unidade {
	if m == nil {
		return nil
	}
	return &Unidade{
		ID:        m.ID,
		Nome:      m.Nome,
		Sigla:     m.Sigla,
		Ativa:     m.Ativa,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ServicoFromDataModel(m *catalogDatamodel.Servico) *Servico {
	if m == nil {
		return nil
	}
	return &Servico{
		ID:        m.ID,
		Codigo:    m.Codigo,
		Atividade: m.Atividade,
		ClasseID:  m.ClasseID,
		UnidadeID: m.UnidadeID,
		Ativo:     m.Ativo,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Classe:    ClasseFromDataModel(m.Classe),
		Unidade:   UnidadeFromDataModel(m.Unidade),
	}
}
