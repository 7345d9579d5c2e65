package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netfibra/backoffice/internal/catalog"
	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
	materialDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/material"
	pricelistDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/pricelist"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) catalog.RepositoryAPI {
	return &CatalogRepository{db: db}
}

// ---------------------------------------------------------------------------
// Classe
// ---------------------------------------------------------------------------

func (r *CatalogRepository) ListClasses(ativa *bool, limit, offset int) ([]*catalogDatamodel.Classe, int64, error) {
	query := r.db.Model(&catalogDatamodel.Classe{})
	if ativa != nil {
		query = query.Where("ativa = ?", *ativa)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classes []*catalogDatamodel.Classe
	err := query.Order("nome ASC").Limit(limit).Offset(offset).Find(&classes).Error
	return classes, total, err
}

func (r *CatalogRepository) GetClasseByID(id uuid.UUID) (*catalogDatamodel.Classe, error) {
	var classe catalogDatamodel.Classe
	err := r.db.Where("id = ?", id).First(&classe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &classe, nil
}

func (r *CatalogRepository) GetClasseByNome(nome string) (*catalogDatamodel.Classe, error) {
	var classe catalogDatamodel.Classe
	err := r.db.Where("nome = ?", nome).First(&classe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &classe, nil
}

func (r *CatalogRepository) CreateClasse(classe *catalogDatamodel.Classe) error {
	return r.db.Create(classe).Error
}

func (r *CatalogRepository) UpdateClasse(classe *catalogDatamodel.Classe) error {
	return r.db.Save(classe).Error
}

func (r *CatalogRepository) DeleteClasse(id uuid.UUID) error {
	return r.db.Delete(&catalogDatamodel.Classe{}, "id = ?", id).Error
}

// ---------------------------------------------------------------------------
// Unidade
// ---------------------------------------------------------------------------

func (r *CatalogRepository) ListUnidades(ativa *bool, limit, offset int) ([]*catalogDatamodel.Unidade, int64, error) {
	query := r.db.Model(&catalogDatamodel.Unidade{})
	if ativa != nil {
		query = query.Where("ativa = ?", *ativa)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var unidades []*catalogDatamodel.Unidade
	err := query.Order("sigla ASC").Limit(limit).Offset(offset).Find(&unidades).Error
	return unidades, total, err
}

func (r *CatalogRepository) GetUnidadeByID(id uuid.UUID) (*catalogDatamodel.Unidade, error) {
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

func (r *CatalogRepository) GetUnidadeBySigla(sigla string) (*catalogDatamodel.Unidade, error) {
	var unidade catalogDatamodel.Unidade
	err := r.db.Where("sigla = ?", sigla).First(&unidade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &unidade, nil
}

func (r *CatalogRepository) CreateUnidade(unidade *catalogDatamodel.Unidade) error {
	return r.db.Create(unidade).Error
}

func (r *CatalogRepository) UpdateUnidade(unidade *catalogDatamodel.Unidade) error {
	return r.db.Save(unidade).Error
}

func (r *CatalogRepository) DeleteUnidade(id uuid.UUID) error {
	return r.db.Delete(&catalogDatamodel.Unidade{}, "id = ?", id).Error
}

// ---------------------------------------------------------------------------
// Servico
// ---------------------------------------------------------------------------

func (r *CatalogRepository) ListServicos(ativo *bool, classeID *uuid.UUID, limit, offset int) ([]*catalogDatamodel.Servico, int64, error) {
	query := r.db.Model(&catalogDatamodel.Servico{})
	if ativo != nil {
		query = query.Where("ativo = ?", *ativo)
	}
	if classeID != nil {
		query = query.Where("classe_id = ?", *classeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var servicos []*catalogDatamodel.Servico
	err := query.Preload("Classe").Preload("Unidade").
		Order("codigo ASC").Limit(limit).Offset(offset).Find(&servicos).Error
	return servicos, total, err
}

func (r *CatalogRepository) GetServicoByID(id uuid.UUID) (*catalogDatamodel.Servico, error) {
	var servico catalogDatamodel.Servico
	err := r.db.Preload("Classe").Preload("Unidade").Where("id = ?", id).First(&servico).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &servico, nil
}

func (r *CatalogRepository) GetServicoByCodigo(codigo string) (*catalogDatamodel.Servico, error) {
	var servico catalogDatamodel.Servico
	err := r.db.Where("codigo = ?", codigo).First(&servico).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &servico, nil
}

func (r *CatalogRepository) CreateServico(servico *catalogDatamodel.Servico) error {
	return r.db.Create(servico).Error
}

func (r *CatalogRepository) UpdateServico(servico *catalogDatamodel.Servico) error {
	return r.db.Omit("Classe", "Unidade").Save(servico).Error
}

func (r *CatalogRepository) DeleteServico(id uuid.UUID) error {
	return r.db.Delete(&catalogDatamodel.Servico{}, "id = ?", id).Error
}

// ---------------------------------------------------------------------------
// Dependency counts backing the delete guards
// ---------------------------------------------------------------------------

func (r *CatalogRepository) CountServicosByClasse(classeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&catalogDatamodel.Servico{}).Where("classe_id = ?", classeID).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) CountServicosByUnidade(unidadeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&catalogDatamodel.Servico{}).Where("unidade_id = ?", unidadeID).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) CountMateriaisByUnidade(unidadeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&materialDatamodel.Material{}).Where("unidade_id = ?", unidadeID).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) CountLPUItensByServico(servicoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&pricelistDatamodel.LPUItem{}).Where("servico_id = ?", servicoID).Count(&count).Error
	return count, err
}
