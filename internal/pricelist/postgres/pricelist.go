package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
	partnerDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/partner"
	pricelistDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/pricelist"
	"github.com/netfibra/backoffice/internal/pricelist"
)

type PriceListRepository struct {
	db *gorm.DB
}

func NewPriceListRepository(db *gorm.DB) pricelist.RepositoryAPI {
	return &PriceListRepository{db: db}
}

func (r *PriceListRepository) ListLPUs(tenantID uuid.UUID, parceiroID *uuid.UUID, ativa *bool, limit, offset int) ([]*pricelistDatamodel.LPU, int64, error) {
	query := r.db.Model(&pricelistDatamodel.LPU{}).Where("tenant_id = ?", tenantID)
	if parceiroID != nil {
		query = query.Where("parceiro_id = ?", *parceiroID)
	}
	if ativa != nil {
		query = query.Where("ativa = ?", *ativa)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lpus []*pricelistDatamodel.LPU
	err := query.Order("nome ASC").Limit(limit).Offset(offset).Find(&lpus).Error
	return lpus, total, err
}

func (r *PriceListRepository) GetLPUByID(id uuid.UUID) (*pricelistDatamodel.LPU, error) {
	var lpu pricelistDatamodel.LPU
	err := r.db.Preload("Itens").Preload("Itens.Servico").Where("id = ?", id).First(&lpu).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lpu, nil
}

func (r *PriceListRepository) CreateLPU(lpu *pricelistDatamodel.LPU) error {
	return r.db.Create(lpu).Error
}

func (r *PriceListRepository) UpdateLPU(lpu *pricelistDatamodel.LPU) error {
	return r.db.Omit("Itens").Save(lpu).Error
}

// DeleteLPU relies on the ON DELETE CASCADE constraint for the items; the
// explicit item delete keeps SQLite-backed tests honest where the cascade is
// not emulated by AutoMigrate.
func (r *PriceListRepository) DeleteLPU(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&pricelistDatamodel.LPUItem{}, "lpu_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&pricelistDatamodel.LPU{}, "id = ?", id).Error
	})
}

func (r *PriceListRepository) ListItems(lpuID uuid.UUID, limit, offset int) ([]*pricelistDatamodel.LPUItem, int64, error) {
	query := r.db.Model(&pricelistDatamodel.LPUItem{}).Where("lpu_id = ?", lpuID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*pricelistDatamodel.LPUItem
	err := query.Preload("Servico").Preload("Servico.Classe").Preload("Servico.Unidade").
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *PriceListRepository) GetItemByID(id uuid.UUID) (*pricelistDatamodel.LPUItem, error) {
	var item pricelistDatamodel.LPUItem
	err := r.db.Preload("Servico").Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PriceListRepository) GetItemByLPUAndServico(lpuID, servicoID uuid.UUID) (*pricelistDatamodel.LPUItem, error) {
	var item pricelistDatamodel.LPUItem
	err := r.db.Where("lpu_id = ? AND servico_id = ?", lpuID, servicoID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PriceListRepository) CreateItem(item *pricelistDatamodel.LPUItem) error {
	return r.db.Create(item).Error
}

func (r *PriceListRepository) UpdateItem(item *pricelistDatamodel.LPUItem) error {
	return r.db.Omit("Servico").Save(item).Error
}

func (r *PriceListRepository) DeleteItem(id uuid.UUID) error {
	return r.db.Delete(&pricelistDatamodel.LPUItem{}, "id = ?", id).Error
}

func (r *PriceListRepository) GetPartnerByID(id uuid.UUID) (*partnerDatamodel.PartnerProfile, error) {
	var profile partnerDatamodel.PartnerProfile
	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PriceListRepository) GetServicoByID(id uuid.UUID) (*catalogDatamodel.Servico, error) {
	var servico catalogDatamodel.Servico
	err := r.db.Where("id = ?", id).First(&servico).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &servico, nil
}
