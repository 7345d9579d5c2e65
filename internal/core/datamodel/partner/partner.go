package partner

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartnerProfile is the subcontractor record owned by a tenant. Price lists
// hang off a partner, never off a bare user.
type PartnerProfile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex;not null"`
	TenantID uuid.UUID `gorm:"column:tenant_id;type:uuid;index;not null"`

	PersonType          *string `gorm:"column:person_type"` // PF or PJ
	Document            *string `gorm:"column:cpf_cnpj"`
	Phone               *string `gorm:"column:phone"`
	AddressStreet       *string `gorm:"column:address_street"`
	AddressNumber       *string `gorm:"column:address_number"`
	AddressComplement   *string `gorm:"column:address_complement"`
	AddressNeighborhood *string `gorm:"column:address_neighborhood"`
	AddressCity         *string `gorm:"column:address_city"`
	AddressState        *string `gorm:"column:address_state"`
	AddressZip          *string `gorm:"column:address_cep"`
	Notes               *string `gorm:"column:notes"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PartnerProfile) TableName() string { return "partner_profiles" }

func (p *PartnerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
