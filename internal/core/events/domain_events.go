package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeServicoCreated = "catalog.servico_created"
	EventTypeServicoDeleted = "catalog.servico_deleted"
	EventTypeLPUCreated     = "pricelist.lpu_created"
	EventTypeLPUDeleted     = "pricelist.lpu_deleted"
	EventTypeLPUItemAdded   = "pricelist.item_added"
	EventTypeLPUItemUpdated = "pricelist.item_updated"
	EventTypeLPUItemRemoved = "pricelist.item_removed"
	EventTypeMatrixReplaced = "rbac.matrix_replaced"
	EventTypeUserCreated    = "user.created"
)

// NewDomainEvent builds a generic audit-style event. Entity ids travel as
// strings so subscribers never depend on domain packages.
func NewDomainEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
