package pricelist

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/netfibra/backoffice/internal"
	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
	partnerDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/partner"
	pricelistDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/pricelist"
	"github.com/netfibra/backoffice/internal/core/events"
)

type RepositoryAPI interface {
	ListLPUs(tenantID uuid.UUID, parceiroID *uuid.UUID, ativa *bool, limit, offset int) ([]*pricelistDatamodel.LPU, int64, error)
	GetLPUByID(id uuid.UUID) (*pricelistDatamodel.LPU, error)
	CreateLPU(lpu *pricelistDatamodel.LPU) error
	UpdateLPU(lpu *pricelistDatamodel.LPU) error
	DeleteLPU(id uuid.UUID) error

	ListItems(lpuID uuid.UUID, limit, offset int) ([]*pricelistDatamodel.LPUItem, int64, error)
	GetItemByID(id uuid.UUID) (*pricelistDatamodel.LPUItem, error)
	GetItemByLPUAndServico(lpuID, servicoID uuid.UUID) (*pricelistDatamodel.LPUItem, error)
	CreateItem(item *pricelistDatamodel.LPUItem) error
	UpdateItem(item *pricelistDatamodel.LPUItem) error
	DeleteItem(id uuid.UUID) error

	GetPartnerByID(id uuid.UUID) (*partnerDatamodel.PartnerProfile, error)
	GetServicoByID(id uuid.UUID) (*catalogDatamodel.Servico, error)
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

// lpuInTenant loads an LPU and hides it when it belongs to another tenant.
// Cross-tenant access reads as not-found, never as forbidden, so the id's
// existence leaks nothing.
func (s *Service) lpuInTenant(tenantID, id uuid.UUID) (*pricelistDatamodel.LPU, error) {
	lpu, err := s.repo.GetLPUByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get price list", err)
	}
	if lpu == nil || lpu.TenantID != tenantID {
		return nil, errors.ErrLPUNotFound
	}
	return lpu, nil
}

func (s *Service) CreateLPU(ctx context.Context, tenantID uuid.UUID, dto CreateLPUDTO) (*LPU, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	partner, err := s.repo.GetPartnerByID(dto.ParceiroID)
	if err != nil {
		return nil, errors.NewInternalError("failed to get partner", err)
	}
	if partner == nil || partner.TenantID != tenantID {
		return nil, errors.ErrPartnerNotFound
	}

	ativa := true
	if dto.Ativa != nil {
		ativa = *dto.Ativa
	}
	model := &pricelistDatamodel.LPU{
		Nome:       dto.Nome,
		ParceiroID: dto.ParceiroID,
		TenantID:   tenantID,
		Ativa:      ativa,
		DataInicio: dto.DataInicio,
		DataFim:    dto.DataFim,
	}
	if err := s.repo.CreateLPU(model); err != nil {
		s.logger.Error("failed to create price list", "error", err, "tenant_id", tenantID)
		return nil, errors.TranslateDBError(err, errors.NewConflictError("price list conflicts with an existing record", errors.ErrCodeConstraint))
	}

	s.logger.Info("price list created", "lpu_id", model.ID, "parceiro_id", model.ParceiroID, "tenant_id", tenantID)
	s.bus.Publish(ctx, events.NewDomainEvent(events.EventTypeLPUCreated, map[string]interface{}{
		"lpu_id":      model.ID.String(),
		"parceiro_id": model.ParceiroID.String(),
		"tenant_id":   tenantID.String(),
	}))
	return FromDataModel(model), nil
}

func (s *Service) GetLPU(ctx context.Context, tenantID, id uuid.UUID) (*LPU, error) {
	lpu, err := s.lpuInTenant(tenantID, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(lpu), nil
}

func (s *Service) ListLPUs(ctx context.Context, tenantID uuid.UUID, params ListParams) (*ListResponse, error) {
	params.Normalize()
	models, total, err := s.repo.ListLPUs(tenantID, params.ParceiroID, params.Ativa, params.PerPage, params.Offset())
	if err != nil {
		return nil, errors.NewInternalError("failed to list price lists", err)
	}

	items := make([]*LPU, 0, len(models))
	for _, m := range models {
		items = append(items, FromDataModel(m))
	}
	return &ListResponse{Items: items, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}

func (s *Service) UpdateLPU(ctx context.Context, tenantID, id uuid.UUID, dto UpdateLPUDTO) (*LPU, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	lpu, err := s.lpuInTenant(tenantID, id)
	if err != nil {
		return nil, err
	}

	if dto.Nome != nil {
		lpu.Nome = *dto.Nome
	}
	if dto.Ativa != nil {
		lpu.Ativa = *dto.Ativa
	}
	if dto.DataInicio != nil {
		lpu.DataInicio = dto.DataInicio
	}
	if dto.DataFim != nil {
		lpu.DataFim = dto.DataFim
	}
	lpu.UpdatedAt = time.Now()
	lpu.Itens = nil

	if err := s.repo.UpdateLPU(lpu); err != nil {
		return nil, errors.TranslateDBError(err, errors.NewConflictError("price list conflicts with an existing record", errors.ErrCodeConstraint))
	}
	return FromDataModel(lpu), nil
}

// DeleteLPU removes the list and, through the CASCADE constraint, all of its
// items in the same statement.
func (s *Service) DeleteLPU(ctx context.Context, tenantID, id uuid.UUID) error {
	lpu, err := s.lpuInTenant(tenantID, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteLPU(lpu.ID); err != nil {
		return errors.TranslateDBError(err, errors.NewConflictError("price list cannot be deleted", errors.ErrCodeEntityInUse))
	}

	s.logger.Info("price list deleted", "lpu_id", id, "tenant_id", tenantID)
	s.bus.Publish(ctx, events.NewDomainEvent(events.EventTypeLPUDeleted, map[string]interface{}{
		"lpu_id":    id.String(),
		"tenant_id": tenantID.String(),
	}))
	return nil
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

func (s *Service) ListItems(ctx context.Context, tenantID, lpuID uuid.UUID, params ListParams) ([]*LPUItem, int64, error) {
	params.Normalize()
	if _, err := s.lpuInTenant(tenantID, lpuID); err != nil {
		return nil, 0, err
	}

	models, total, err := s.repo.ListItems(lpuID, params.PerPage, params.Offset())
	if err != nil {
		return nil, 0, errors.NewInternalError("failed to list price list items", err)
	}

	items := make([]*LPUItem, 0, len(models))
	for _, m := range models {
		items = append(items, ItemFromDataModel(m))
	}
	return items, total, nil
}

func (s *Service) AddItem(ctx context.Context, tenantID, lpuID uuid.UUID, dto AddItemDTO) (*LPUItem, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.lpuInTenant(tenantID, lpuID); err != nil {
		return nil, err
	}

	servico, err := s.repo.GetServicoByID(dto.ServicoID)
	if err != nil {
		return nil, errors.NewInternalError("failed to get servico", err)
	}
	if servico == nil {
		return nil, errors.ErrServicoNotFound
	}
	if !servico.Ativo {
		return nil, errors.NewValidationError("an inactive servico cannot be priced", errors.ErrCodeInactiveServico)
	}

	duplicate := errors.NewConflictError("servico is already priced in this price list", errors.ErrCodeDuplicateLPUItem)
	existing, err := s.repo.GetItemByLPUAndServico(lpuID, dto.ServicoID)
	if err != nil {
		return nil, errors.NewInternalError("failed to check price list item", err)
	}
	if existing != nil {
		return nil, duplicate
	}

	model := &pricelistDatamodel.LPUItem{
		LPUID:         lpuID,
		ServicoID:     dto.ServicoID,
		ValorUnitario: *dto.ValorUnitario,
		ValorClasse:   dto.ValorClasse,
	}
	if err := s.repo.CreateItem(model); err != nil {
		// The unique (lpu_id, servico_id) index closes the check/insert race.
		s.logger.Error("failed to add price list item", "error", err, "lpu_id", lpuID, "servico_id", dto.ServicoID)
		return nil, errors.TranslateDBError(err, duplicate)
	}

	s.logger.Info("price list item added", "item_id", model.ID, "lpu_id", lpuID, "servico_id", dto.ServicoID)
	s.bus.Publish(ctx, events.NewDomainEvent(events.EventTypeLPUItemAdded, map[string]interface{}{
		"item_id":    model.ID.String(),
		"lpu_id":     lpuID.String(),
		"servico_id": dto.ServicoID.String(),
	}))
	return ItemFromDataModel(model), nil
}

func (s *Service) UpdateItem(ctx context.Context, tenantID, lpuID, itemID uuid.UUID, dto UpdateItemDTO) (*LPUItem, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.lpuInTenant(tenantID, lpuID); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemByID(itemID)
	if err != nil {
		return nil, errors.NewInternalError("failed to get price list item", err)
	}
	if item == nil || item.LPUID != lpuID {
		return nil, errors.ErrLPUItemNotFound
	}

	if dto.ValorUnitario != nil {
		item.ValorUnitario = *dto.ValorUnitario
	}
	if dto.ValorClasse != nil {
		item.ValorClasse = dto.ValorClasse
	}
	item.UpdatedAt = time.Now()
	item.Servico = nil

	if err := s.repo.UpdateItem(item); err != nil {
		return nil, errors.TranslateDBError(err, errors.NewConflictError("price list item conflicts with an existing record", errors.ErrCodeDuplicateLPUItem))
	}

	s.bus.Publish(ctx, events.NewDomainEvent(events.EventTypeLPUItemUpdated, map[string]interface{}{
		"item_id": item.ID.String(),
		"lpu_id":  lpuID.String(),
	}))
	return ItemFromDataModel(item), nil
}

func (s *Service) RemoveItem(ctx context.Context, tenantID, lpuID, itemID uuid.UUID) error {
	if _, err := s.lpuInTenant(tenantID, lpuID); err != nil {
		return err
	}

	item, err := s.repo.GetItemByID(itemID)
	if err != nil {
		return errors.NewInternalError("failed to get price list item", err)
	}
	if item == nil || item.LPUID != lpuID {
		return errors.ErrLPUItemNotFound
	}

	if err := s.repo.DeleteItem(itemID); err != nil {
		return errors.TranslateDBError(err, errors.NewConflictError("price list item cannot be deleted", errors.ErrCodeEntityInUse))
	}

	s.logger.Info("price list item removed", "item_id", itemID, "lpu_id", lpuID)
	s.bus.Publish(ctx, events.NewDomainEvent(events.EventTypeLPUItemRemoved, map[string]interface{}{
		"item_id": itemID.String(),
		"lpu_id":  lpuID.String(),
	}))
	return nil
}
