package material

import (
	"time"

	"github.com/google/uuid"

	"github.com/netfibra/backoffice/internal/catalog"
	materialDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/material"
)

// Material is a stock item from the platform-wide materials catalog.
type Material struct {
	ID        uuid.UUID `json:"id"`
	Codigo    string    `json:"codigo"`
	Descricao string    `json:"descricao"`
	UnidadeID uuid.UUID `json:"unidade_id"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Unidade *catalog.Unidade `json:"unidade,omitempty"`
}

func FromDataModel(m *materialDatamodel.Material) *Material {
	if m == nil {
		return nil
	}
	return &Material{
		ID:        m.ID,
		Codigo:    m.Codigo,
		Descricao: m.Descricao,
		UnidadeID: m.UnidadeID,
		Ativo:     m.Ativo,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Unidade:   catalog.UnidadeFromDataModel(m.Unidade),
	}
}
