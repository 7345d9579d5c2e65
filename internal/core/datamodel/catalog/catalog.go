package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The catalog is platform-wide reference data: none of these tables carry a
// tenant id. Pricing never lives here — a Servico is priced only through a
// price list item.

// Classe categorizes services (e.g. "Civil", "Elétrica", "Rede").
type Classe struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome      string    `gorm:"column:nome;uniqueIndex;not null"`
	Descricao *string   `gorm:"column:descricao"`
	Ativa     bool      `gorm:"column:ativa;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Classe) TableName() string { return "classes" }

func (c *Classe) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Unidade is a unit of measure (e.g. "Metro"/"m", "Hora"/"h").
type Unidade struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome      string    `gorm:"column:nome;not null"`
	Sigla     string    `gorm:"column:sigla;uniqueIndex;not null"`
	Ativa     bool      `gorm:"column:ativa;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Unidade) TableName() string { return "unidades" }

func (u *Unidade) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Servico is a billable activity. It deliberately has no price column; the
// same Servico appears in many price lists at different prices, controlled
// exclusively by lpu_itens rows.
type Servico struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Codigo    string    `gorm:"column:codigo;uniqueIndex;not null"`
	Atividade string    `gorm:"column:atividade;not null"`
	ClasseID  uuid.UUID `gorm:"column:classe_id;type:uuid;index;not null"`
	UnidadeID uuid.UUID `gorm:"column:unidade_id;type:uuid;index;not null"`
	Ativo     bool      `gorm:"column:ativo;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Classe  *Classe  `gorm:"foreignKey:ClasseID"`
	Unidade *Unidade `gorm:"foreignKey:UnidadeID"`
}

func (Servico) TableName() string { return "servicos" }

func (s *Servico) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
