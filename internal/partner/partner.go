package partner

import (
	"time"

	"github.com/google/uuid"

	partnerDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/partner"
)

// Partner is a subcontractor profile owned by a tenant. The linked user
// account carries the PARTNER role and logs into the portal; the profile
// carries the business data price lists hang off.
type Partner struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`

	PersonType          *string `json:"person_type,omitempty"`
	Document            *string `json:"cpf_cnpj,omitempty"`
	Phone               *string `json:"phone,omitempty"`
	AddressStreet       *string `json:"address_street,omitempty"`
	AddressNumber       *string `json:"address_number,omitempty"`
	AddressComplement   *string `json:"address_complement,omitempty"`
	AddressNeighborhood *string `json:"address_neighborhood,omitempty"`
	AddressCity         *string `json:"address_city,omitempty"`
	AddressState        *string `json:"address_state,omitempty"`
	AddressZip          *string `json:"address_cep,omitempty"`
	Notes               *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(m *partnerDatamodel.PartnerProfile) *Partner {
	if m == nil {
		return nil
	}
	return &Partner{
		ID:                  m.ID,
		UserID:              m.UserID,
		TenantID:            m.TenantID,
		PersonType:          m.PersonType,
		Document:            m.Document,
		Phone:               m.Phone,
		AddressStreet:       m.AddressStreet,
		AddressNumber:       m.AddressNumber,
		AddressComplement:   m.AddressComplement,
		AddressNeighborhood: m.AddressNeighborhood,
		AddressCity:         m.AddressCity,
		AddressState:        m.AddressState,
		AddressZip:          m.AddressZip,
		Notes:               m.Notes,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
