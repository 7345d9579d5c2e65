package material

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/netfibra/backoffice/internal"
	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
	materialDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/material"
)

type RepositoryAPI interface {
	List(ativo *bool, limit, offset int) ([]*materialDatamodel.Material, int64, error)
	GetByID(id uuid.UUID) (*materialDatamodel.Material, error)
	GetByCodigo(codigo string) (*materialDatamodel.Material, error)
	Create(material *materialDatamodel.Material) error
	Update(material *materialDatamodel.Material) error
	Delete(id uuid.UUID) error

	GetUnidadeByID(id uuid.UUID) (*catalogDatamodel.Unidade, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, dto CreateMaterialDTO) (*Material, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	duplicate := errors.NewConflictError("a material with this codigo already exists", errors.ErrCodeDuplicateCodigo)
	existing, err := s.repo.GetByCodigo(dto.Codigo)
	if err != nil {
		return nil, errors.NewInternalError("failed to check material codigo", err)
	}
	if existing != nil {
		return nil, duplicate
	}

	unidade, err := s.repo.GetUnidadeByID(dto.UnidadeID)
	if err != nil {
		return nil, errors.NewInternalError("failed to get unidade", err)
	}
	if unidade == nil {
		return nil, errors.ErrUnidadeNotFound
	}

	ativo := true
	if dto.Ativo != nil {
		ativo = *dto.Ativo
	}
	model := &materialDatamodel.Material{
		Codigo:    dto.Codigo,
		Descricao: dto.Descricao,
		UnidadeID: dto.UnidadeID,
		Ativo:     ativo,
	}
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create material", "error", err, "codigo", dto.Codigo)
		return nil, errors.TranslateDBError(err, duplicate)
	}

	s.logger.Info("material created", "material_id", model.ID, "codigo", model.Codigo)
	return FromDataModel(model), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Material, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get material", err)
	}
	if model == nil {
		return nil, errors.ErrMaterialNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) List(ctx context.Context, params ListParams) (*ListResponse, error) {
	params.Normalize()
	models, total, err := s.repo.List(params.Ativo, params.PerPage, params.Offset())
	if err != nil {
		return nil, errors.NewInternalError("failed to list materiais", err)
	}

	items := make([]*Material, 0, len(models))
	for _, m := range models {
		items = append(items, FromDataModel(m))
	}
	return &ListResponse{Items: items, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, dto UpdateMaterialDTO) (*Material, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get material", err)
	}
	if model == nil {
		return nil, errors.ErrMaterialNotFound
	}

	duplicate := errors.NewConflictError("a material with this codigo already exists", errors.ErrCodeDuplicateCodigo)
	if dto.Codigo != nil && *dto.Codigo != model.Codigo {
		existing, err := s.repo.GetByCodigo(*dto.Codigo)
		if err != nil {
			return nil, errors.NewInternalError("failed to check material codigo", err)
		}
		if existing != nil {
			return nil, duplicate
		}
		model.Codigo = *dto.Codigo
	}
	if dto.Descricao != nil {
		model.Descricao = *dto.Descricao
	}
	if dto.UnidadeID != nil {
		unidade, err := s.repo.GetUnidadeByID(*dto.UnidadeID)
		if err != nil {
			return nil, errors.NewInternalError("failed to get unidade", err)
		}
		if unidade == nil {
			return nil, errors.ErrUnidadeNotFound
		}
		model.UnidadeID = *dto.UnidadeID
	}
	if dto.Ativo != nil {
		model.Ativo = *dto.Ativo
	}
	model.UpdatedAt = time.Now()
	model.Unidade = nil

	if err := s.repo.Update(model); err != nil {
		return nil, errors.TranslateDBError(err, duplicate)
	}
	return FromDataModel(model), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return errors.NewInternalError("failed to get material", err)
	}
	if model == nil {
		return errors.ErrMaterialNotFound
	}

	inUse := errors.NewConflictError("material is referenced and cannot be deleted", errors.ErrCodeEntityInUse)
	if err := s.repo.Delete(id); err != nil {
		return errors.TranslateDBError(err, inUse)
	}
	s.logger.Info("material deleted", "material_id", id)
	return nil
}
