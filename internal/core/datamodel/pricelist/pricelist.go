package pricelist

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
)

// LPU (Lista de Preço Único) is the price table agreed between a tenant and
// one of its partners. A partner may hold several, e.g. per region or per
// contract period. The validity window is stored but not yet enforced.
type LPU struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Nome       string     `gorm:"column:nome;not null"`
	ParceiroID uuid.UUID  `gorm:"column:parceiro_id;type:uuid;index;not null"`
	TenantID   uuid.UUID  `gorm:"column:tenant_id;type:uuid;index;not null"`
	Ativa      bool       `gorm:"column:ativa;not null;default:true"`
	DataInicio *time.Time `gorm:"column:data_inicio;type:date"`
	DataFim    *time.Time `gorm:"column:data_fim;type:date"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`

	Itens []LPUItem `gorm:"foreignKey:LPUID;constraint:OnDelete:CASCADE"`
}

func (LPU) TableName() string { return "lpus" }

func (l *LPU) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LPUItem is the only place a price exists in the system.
//
// Constraints mirrored in the migrations:
//   - unique (lpu_id, servico_id): a service appears at most once per list
//   - valor_unitario >= 0
//   - valor_classe IS NULL OR valor_classe >= 0
//   - lpu_id CASCADE on delete, servico_id RESTRICT
type LPUItem struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	LPUID         uuid.UUID        `gorm:"column:lpu_id;type:uuid;not null;index;uniqueIndex:uq_lpu_itens_lpu_servico"`
	ServicoID     uuid.UUID        `gorm:"column:servico_id;type:uuid;not null;index;uniqueIndex:uq_lpu_itens_lpu_servico"`
	ValorUnitario decimal.Decimal  `gorm:"column:valor_unitario;type:decimal(15,2);not null"`
	ValorClasse   *decimal.Decimal `gorm:"column:valor_classe;type:decimal(15,2)"`
	CreatedAt     time.Time        `gorm:"column:created_at"`
	UpdatedAt     time.Time        `gorm:"column:updated_at"`

	Servico *catalogDatamodel.Servico `gorm:"foreignKey:ServicoID"`
}

func (LPUItem) TableName() string { return "lpu_itens" }

func (i *LPUItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
