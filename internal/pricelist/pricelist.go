package pricelist

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/netfibra/backoffice/internal/catalog"
	pricelistDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/pricelist"
)

// LPU is a price list negotiated between a tenant and one of its partners.
// Every monetary value in the system lives on an LPUItem and nowhere else.
type LPU struct {
	ID         uuid.UUID  `json:"id"`
	Nome       string     `json:"nome"`
	ParceiroID uuid.UUID  `json:"parceiro_id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	Ativa      bool       `json:"ativa"`
	DataInicio *time.Time `json:"data_inicio,omitempty"`
	DataFim    *time.Time `json:"data_fim,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Itens []*LPUItem `json:"itens,omitempty"`
}

type LPUItem struct {
	ID            uuid.UUID        `json:"id"`
	LPUID         uuid.UUID        `json:"lpu_id"`
	ServicoID     uuid.UUID        `json:"servico_id"`
	ValorUnitario decimal.Decimal  `json:"valor_unitario"`
	ValorClasse   *decimal.Decimal `json:"valor_classe,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	Servico *catalog.Servico `json:"servico,omitempty"`
}

func FromDataModel(m *pricelistDatamodel.LPU) *LPU {
	if m == nil {
		return nil
	}
	lpu := &LPU{
		ID:         m.ID,
		Nome:       m.Nome,
		ParceiroID: m.ParceiroID,
		TenantID:   m.TenantID,
		Ativa:      m.Ativa,
		DataInicio: m.DataInicio,
		DataFim:    m.DataFim,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	for i := range m.Itens {
		lpu.Itens = append(lpu.Itens, ItemFromDataModel(&m.Itens[i]))
	}
	return lpu
}

func ItemFromDataModel(m *pricelistDatamodel.LPUItem) *LPUItem {
	if m == nil {
		return nil
	}
	return &LPUItem{
		ID:            m.ID,
		LPUID:         m.LPUID,
		ServicoID:     m.ServicoID,
		ValorUnitario: m.ValorUnitario,
		ValorClasse:   m.ValorClasse,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Servico:       catalog.ServicoFromDataModel(m.Servico),
	}
}
