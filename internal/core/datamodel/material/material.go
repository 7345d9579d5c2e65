package material

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
)

// Material is the platform-wide materials catalog. Like Servico it points at
// a Unidade, which blocks that Unidade from deletion while referenced.
type Material struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Codigo    string    `gorm:"column:codigo;uniqueIndex;not null"`
	Descricao string    `gorm:"column:descricao;not null"`
	UnidadeID uuid.UUID `gorm:"column:unidade_id;type:uuid;index;not null"`
	Ativo     bool      `gorm:"column:ativo;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Unidade *catalogDatamodel.Unidade `gorm:"foreignKey:UnidadeID"`
}

func (Material) TableName() string { return "materiais" }

func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
