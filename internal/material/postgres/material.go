package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
	materialDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/material"
	"github.com/netfibra/backoffice/internal/material"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) material.RepositoryAPI {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) List(ativo *bool, limit, offset int) ([]*materialDatamodel.Material, int64, error) {
	query := r.db.Model(&materialDatamodel.Material{})
	if ativo != nil {
		query = query.Where("ativo = ?", *ativo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var materiais []*materialDatamodel.Material
	err := query.Preload("Unidade").Order("codigo ASC").Limit(limit).Offset(offset).Find(&materiais).Error
	return materiais, total, err
}

func (r *MaterialRepository) GetByID(id uuid.UUID) (*materialDatamodel.Material, error) {
	var m materialDatamodel.Material
	err := r.db.Preload("Unidade").Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) GetByCodigo(codigo string) (*materialDatamodel.Material, error) {
	var m materialDatamodel.Material
	err := r.db.Where("codigo = ?", codigo).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) Create(m *materialDatamodel.Material) error {
	return r.db.Create(m).Error
}

func (r *MaterialRepository) Update(m *materialDatamodel.Material) error {
	return r.db.Omit("Unidade").Save(m).Error
}

func (r *MaterialRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&materialDatamodel.Material{}, "id = ?", id).Error
}

func (r *MaterialRepository) GetUnidadeByID(id uuid.UUID) (*catalogDatamodel.Unidade, error) {
	var unidade catalogDatamodel.Unidade
	err := r.db.Where("id = ?", id).First(&unidade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &unidade, nil
}
