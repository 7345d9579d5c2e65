package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/netfibra/backoffice/internal"
	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
	"github.com/netfibra/backoffice/internal/core/events"
)

type RepositoryAPI interface {
	ListClasses(ativa *bool, limit, offset int) ([]*catalogDatamodel.Classe, int64, error)
	GetClasseByID(id uuid.UUID) (*catalogDatamodel.Classe, error)
	GetClasseByNome(nome string) (*catalogDatamodel.Classe, error)
	CreateClasse(classe *catalogDatamodel.Classe) error
	UpdateClasse(classe *catalogDatamodel.Classe) error
	DeleteClasse(id uuid.UUID) error

	ListUnidades(ativa *bool, limit, offset int) ([]*catalogDatamodel.Unidade, int64, error)
	GetUnidadeByID(id uuid.UUID) (*catalogDatamodel.Unidade, error)
	GetUnidadeBySigla(sigla string) (*catalogDatamodel.Unidade, error)
	CreateUnidade(unidade *catalogDatamodel.Unidade) error
	UpdateUnidade(unidade *catalogDatamodel.Unidade) error
	DeleteUnidade(id uuid.UUID) error

	ListServicos(ativo *bool, classeID *uuid.UUID, limit, offset int) ([]*catalogDatamodel.Servico, int64, error)
	GetServicoByID(id uuid.UUID) (*catalogDatamodel.Servico, error)
	GetServicoByCodigo(codigo string) (*catalogDatamodel.Servico, error)
	CreateServico(servico *catalogDatamodel.Servico) error
	UpdateServico(servico *catalogDatamodel.Servico) error
	DeleteServico(id uuid.UUID) error

	CountServicosByClasse(classeID uuid.UUID) (int64, error)
	CountServicosByUnidade(unidadeID uuid.UUID) (int64, error)
	CountMateriaisByUnidade(unidadeID uuid.UUID) (int64, error)
	CountLPUItensByServico(servicoID uuid.UUID) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo   RepositoryAPI
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// ---------------------------------------------------------------------------
// Classe
// ---------------------------------------------------------------------------

func (s *Service) CreateClasse(ctx context.Context, dto CreateClasseDTO) (*Classe, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// Pre-check for a friendly message; the unique index is the real guard.
	duplicate := errors.NewConflictError("a classe with this name already exists", errors.ErrCodeDuplicateName)
	existing, err := s.repo.GetClasseByNome(dto.Nome)
	if err != nil {
		return nil, errors.NewInternalError("failed to check classe name", err)
	}
	if existing != nil {
		return nil, duplicate
	}

	ativa := true
	if dto.Ativa != nil {
		ativa = *dto.Ativa
	}
	model := &catalogDatamodel.Classe{
		Nome:      dto.Nome,
		Descricao: dto.Descricao,
		Ativa:     ativa,
	}
	if err := s.repo.CreateClasse(model); err != nil {
		s.logger.Error("failed to create classe", "error", err, "nome", dto.Nome)
		return nil, errors.TranslateDBError(err, duplicate)
	}

	s.logger.Info("classe created", "classe_id", model.ID, "nome", model.Nome)
	return ClasseFromDataModel(model), nil
}

func (s *Service) GetClasse(ctx context.Context, id uuid.UUID) (*Classe, error) {
	model, err := s.repo.GetClasseByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get classe", err)
	}
	if model == nil {
		return nil, errors.ErrClasseNotFound
	}
	return ClasseFromDataModel(model), nil
}

func (s *Service) ListClasses(ctx context.Context, params ListParams) (*ListResponse[*Classe], error) {
	params.Normalize()
	models, total, err := s.repo.ListClasses(params.Ativa, params.PerPage, params.Offset())
	if err != nil {
		return nil, errors.NewInternalError("failed to list classes", err)
	}

	items := make([]*Classe, 0, len(models))
	for _, m := range models {
		items = append(items, ClasseFromDataModel(m))
	}
	return &ListResponse[*Classe]{Items: items, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}

func (s *Service) UpdateClasse(ctx context.Context, id uuid.UUID, dto UpdateClasseDTO) (*Classe, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetClasseByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get classe", err)
	}
	if model == nil {
		return nil, errors.ErrClasseNotFound
	}

	duplicate := errors.NewConflictError("a classe with this name already exists", errors.ErrCodeDuplicateName)
	if dto.Nome != nil && *dto.Nome != model.Nome {
		// Uniqueness is re-checked only when the unique field changes.
		existing, err := s.repo.GetClasseByNome(*dto.Nome)
		if err != nil {
			return nil, errors.NewInternalError("failed to check classe name", err)
		}
		if existing != nil {
			return nil, duplicate
		}
		model.Nome = *dto.Nome
	}
	if dto.Descricao != nil {
		model.Descricao = dto.Descricao
	}
	if dto.Ativa != nil {
		model.Ativa = *dto.Ativa
	}
	model.UpdatedAt = time.Now()

	if err := s.repo.UpdateClasse(model); err != nil {
		return nil, errors.TranslateDBError(err, duplicate)
	}
	return ClasseFromDataModel(model), nil
}

func (s *Service) DeleteClasse(ctx context.Context, id uuid.UUID) error {
	model, err := s.repo.GetClasseByID(id)
	if err != nil {
		return errors.NewInternalError("failed to get classe", err)
	}
	if model == nil {
		return errors.ErrClasseNotFound
	}

	inUse := errors.NewConflictError("classe is referenced by one or more servicos and cannot be deleted", errors.ErrCodeEntityInUse)
	count, err := s.repo.CountServicosByClasse(id)
	if err != nil {
		return errors.NewInternalError("failed to count dependent servicos", err)
	}
	if count > 0 {
		return inUse
	}

	if err := s.repo.DeleteClasse(id); err != nil {
		// The RESTRICT FK closes the race between the count and the delete.
		return errors.TranslateDBError(err, inUse)
	}
	s.logger.Info("classe deleted", "classe_id", id)
	return nil
}

// ---------------------------------------------------------------------------
// Unidade
// ---------------------------------------------------------------------------

func (s *Service) CreateUnidade(ctx context.Context, dto CreateUnidadeDTO) (*Unidade, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	duplicate := errors.NewConflictError("a unidade with this sigla already exists", errors.ErrCodeDuplicateSigla)
	existing, err := s.repo.GetUnidadeBySigla(dto.Sigla)
	if err != nil {
		return nil, errors.NewInternalError("failed to check unidade sigla", err)
	}
	if existing != nil {
		return nil, duplicate
	}

	ativa := true
	if dto.Ativa != nil {
		ativa = *dto.Ativa
	}
	model := &catalogDatamodel.Unidade{
		Nome:  dto.Nome,
		Sigla: dto.Sigla,
		Ativa: ativa,
	}
	if err := s.repo.CreateUnidade(model); err != nil {
		s.logger.Error("failed to create unidade", "error", err, "sigla", dto.Sigla)
		return nil, errors.TranslateDBError(err, duplicate)
	}

	s.logger.Info("unidade created", "unidade_id", model.ID, "sigla", model.Sigla)
	return UnidadeFromDataModel(model), nil
}

func (s *Service) GetUnidade(ctx context.Context, id uuid.UUID) (*Unidade, error) {
	model, err := s.repo.GetUnidadeByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get unidade", err)
	}
	if model == nil {
		return nil, errors.ErrUnidadeNotFound
	}
	return UnidadeFromDataModel(model), nil
}

func (s *Service) ListUnidades(ctx context.Context, params ListParams) (*ListResponse[*Unidade], error) {
	params.Normalize()
	models, total, err := s.repo.ListUnidades(params.Ativa, params.PerPage, params.Offset())
	if err != nil {
		return nil, errors.NewInternalError("failed to list unidades", err)
	}

	items := make([]*Unidade, 0, len(models))
	for _, m := range models {
		items = append(items, UnidadeFromDataModel(m))
	}
	return &ListResponse[*Unidade]{Items: items, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}

func (s *Service) UpdateUnidade(ctx context.Context, id uuid.UUID, dto UpdateUnidadeDTO) (*Unidade, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetUnidadeByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get unidade", err)
	}
	if model == nil {
		return nil, errors.ErrUnidadeNotFound
	}

	duplicate := errors.NewConflictError("a unidade with this sigla already exists", errors.ErrCodeDuplicateSigla)
	if dto.Sigla != nil && *dto.Sigla != model.Sigla {
		existing, err := s.repo.GetUnidadeBySigla(*dto.Sigla)
		if err != nil {
			return nil, errors.NewInternalError("failed to check unidade sigla", err)
		}
		if existing != nil {
			return nil, duplicate
		}
		model.Sigla = *dto.Sigla
	}
	if dto.Nome != nil {
		model.Nome = *dto.Nome
	}
	if dto.Ativa != nil {
		model.Ativa = *dto.Ativa
	}
	model.UpdatedAt = time.Now()

	if err := s.repo.UpdateUnidade(model); err != nil {
		return nil, errors.TranslateDBError(err, duplicate)
	}
	return UnidadeFromDataModel(model), nil
}

func (s *Service) DeleteUnidade(ctx context.Context, id uuid.UUID) error {
	model, err := s.repo.GetUnidadeByID(id)
	if err != nil {
		return errors.NewInternalError("failed to get unidade", err)
	}
	if model == nil {
		return errors.ErrUnidadeNotFound
	}

	inUse := errors.NewConflictError("unidade is referenced by servicos or materiais and cannot be deleted", errors.ErrCodeEntityInUse)
	servicoCount, err := s.repo.CountServicosByUnidade(id)
	if err != nil {
		return errors.NewInternalError("failed to count dependent servicos", err)
	}
	materialCount, err := s.repo.CountMateriaisByUnidade(id)
	if err != nil {
		return errors.NewInternalError("failed to count dependent materiais", err)
	}
	if servicoCount > 0 || materialCount > 0 {
		return inUse
	}

	if err := s.repo.DeleteUnidade(id); err != nil {
		return errors.TranslateDBError(err, inUse)
	}
	s.logger.Info("unidade deleted", "unidade_id", id)
	return nil
}

// ---------------------------------------------------------------------------
// Servico
// ---------------------------------------------------------------------------

func (s *Service) CreateServico(ctx context.Context, dto CreateServicoDTO) (*Servico, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	duplicate := errors.NewConflictError("a servico with this codigo already exists", errors.ErrCodeDuplicateCodigo)
	existing, err := s.repo.GetServicoByCodigo(dto.Codigo)
	if err != nil {
		return nil, errors.NewInternalError("failed to check servico codigo", err)
	}
	if existing != nil {
		return nil, duplicate
	}

	// Both foreign keys must resolve before the insert.
	classe, err := s.repo.GetClasseByID(dto.ClasseID)
	if err != nil {
		return nil, errors.NewInternalError("failed to get classe", err)
	}
	if classe == nil {
		return nil, errors.ErrClasseNotFound
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
	model := &catalogDatamodel.Servico{
		Codigo:    dto.Codigo,
		Atividade: dto.Atividade,
		ClasseID:  dto.ClasseID,
		UnidadeID: dto.UnidadeID,
		Ativo:     ativo,
	}
	if err := s.repo.CreateServico(model); err != nil {
		s.logger.Error("failed to create servico", "error", err, "codigo", dto.Codigo)
		return nil, errors.TranslateDBError(err, duplicate)
	}

	s.logger.Info("servico created", "servico_id", model.ID, "codigo", model.Codigo)
	s.bus.Publish(ctx, events.NewDomainEvent(events.EventTypeServicoCreated, map[string]interface{}{
		"servico_id": model.ID.String(),
		"codigo":     model.Codigo,
	}))
	return ServicoFromDataModel(model), nil
}

func (s *Service) GetServico(ctx context.Context, id uuid.UUID) (*Servico, error) {
	model, err := s.repo.GetServicoByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get servico", err)
	}
	if model == nil {
		return nil, errors.ErrServicoNotFound
	}
	return ServicoFromDataModel(model), nil
}

func (s *Service) ListServicos(ctx context.Context, params ListParams) (*ListResponse[*Servico], error) {
	params.Normalize()
	models, total, err := s.repo.ListServicos(params.Ativa, params.ClasseID, params.PerPage, params.Offset())
	if err != nil {
		return nil, errors.NewInternalError("failed to list servicos", err)
	}

	items := make([]*Servico, 0, len(models))
	for _, m := range models {
		items = append(items, ServicoFromDataModel(m))
	}
	return &ListResponse[*Servico]{Items: items, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}

func (s *Service) UpdateServico(ctx context.Context, id uuid.UUID, dto UpdateServicoDTO) (*Servico, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetServicoByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get servico", err)
	}
	if model == nil {
		return nil, errors.ErrServicoNotFound
	}

	duplicate := errors.NewConflictError("a servico with this codigo already exists", errors.ErrCodeDuplicateCodigo)
	if dto.Codigo != nil && *dto.Codigo != model.Codigo {
		existing, err := s.repo.GetServicoByCodigo(*dto.Codigo)
		if err != nil {
			return nil, errors.NewInternalError("failed to check servico codigo", err)
		}
		if existing != nil {
			return nil, duplicate
		}
		model.Codigo = *dto.Codigo
	}
	if dto.Atividade != nil {
		model.Atividade = *dto.Atividade
	}
	if dto.ClasseID != nil {
		classe, err := s.repo.GetClasseByID(*dto.ClasseID)
		if err != nil {
			return nil, errors.NewInternalError("failed to get classe", err)
		}
		if classe == nil {
			return nil, errors.ErrClasseNotFound
		}
		model.ClasseID = *dto.ClasseID
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
	model.Classe = nil
	model.Unidade = nil

	if err := s.repo.UpdateServico(model); err != nil {
		return nil, errors.TranslateDBError(err, duplicate)
	}
	return ServicoFromDataModel(model), nil
}

func (s *Service) DeleteServico(ctx context.Context, id uuid.UUID) error {
	model, err := s.repo.GetServicoByID(id)
	if err != nil {
		return errors.NewInternalError("failed to get servico", err)
	}
	if model == nil {
		return errors.ErrServicoNotFound
	}

	inUse := errors.NewConflictError("servico is referenced by one or more price lists and cannot be deleted", errors.ErrCodeEntityInUse)
	count, err := s.repo.CountLPUItensByServico(id)
	if err != nil {
		return errors.NewInternalError("failed to count dependent price list items", err)
	}
	if count > 0 {
		return inUse
	}

	if err := s.repo.DeleteServico(id); err != nil {
		return errors.TranslateDBError(err, inUse)
	}

	s.logger.Info("servico deleted", "servico_id", id)
	s.bus.Publish(ctx, events.NewDomainEvent(events.EventTypeServicoDeleted, map[string]interface{}{
		"servico_id": id.String(),
	}))
	return nil
}
