package tenant

import (
	"time"

	"github.com/google/uuid"

	tenantDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/tenant"
)

// Tenant is one ISP company on the platform. Every tenant-scoped record in
// the system points back at one of these.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(m *tenantDatamodel.Tenant) *Tenant {
	if m == nil {
		return nil
	}
	return &Tenant{
		ID:        m.ID,
		Name:      m.Name,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
