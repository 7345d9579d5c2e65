package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/netfibra/backoffice/internal/transport"
	"github.com/netfibra/backoffice/pkg/logger"
)

type ServiceAPI interface {
	CreateClasse(ctx context.Context, dto CreateClasseDTO) (*Classe, error)
	GetClasse(ctx context.Context, id uuid.UUID) (*Classe, error)
	ListClasses(ctx context.Context, params ListParams) (*ListResponse[*Classe], error)
	UpdateClasse(ctx context.Context, id uuid.UUID, dto UpdateClasseDTO) (*Classe, error)
	DeleteClasse(ctx context.Context, id uuid.UUID) error

	CreateUnidade(ctx context.Context, dto CreateUnidadeDTO) (*Unidade, error)
	GetUnidade(ctx context.Context, id uuid.UUID) (*Unidade, error)
	ListUnidades(ctx context.Context, params ListParams) (*ListResponse[*Unidade], error)
	UpdateUnidade(ctx context.Context, id uuid.UUID, dto UpdateUnidadeDTO) (*Unidade, error)
	DeleteUnidade(ctx context.Context, id uuid.UUID) error

	CreateServico(ctx context.Context, dto CreateServicoDTO) (*Servico, error)
	GetServico(ctx context.Context, id uuid.UUID) (*Servico, error)
	ListServicos(ctx context.Context, params ListParams) (*ListResponse[*Servico], error)
	UpdateServico(ctx context.Context, id uuid.UUID, dto UpdateServicoDTO) (*Servico, error)
	DeleteServico(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

func parseListParams(r *http.Request) ListParams {
	params := ListParams{Page: 1, PerPage: 20}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			params.Page = p
		}
	}
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 && pp <= 100 {
			params.PerPage = pp
		}
	}
	if ativaStr := r.URL.Query().Get("ativa"); ativaStr != "" {
		if a, err := strconv.ParseBool(ativaStr); err == nil {
			params.Ativa = &a
		}
	}
	if ativoStr := r.URL.Query().Get("ativo"); ativoStr != "" {
		if a, err := strconv.ParseBool(ativoStr); err == nil {
			params.Ativa = &a
		}
	}
	if classeStr := r.URL.Query().Get("classe_id"); classeStr != "" {
		if id, err := uuid.Parse(classeStr); err == nil {
			params.ClasseID = &id
		}
	}
	return params
}

func (h *Handler) urlID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// ---------------------------------------------------------------------------
// Classe
// ---------------------------------------------------------------------------

func (h *Handler) CreateClasse(w http.ResponseWriter, r *http.Request) {
	var dto CreateClasseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	classe, err := h.Service.CreateClasse(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, classe)
}

func (h *Handler) GetClasse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	classe, err := h.Service.GetClasse(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, classe)
}

func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.ListClasses(r.Context(), parseListParams(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateClasse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	var dto UpdateClasseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	classe, err := h.Service.UpdateClasse(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, classe)
}

func (h *Handler) DeleteClasse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteClasse(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Unidade
// ---------------------------------------------------------------------------

func (h *Handler) CreateUnidade(w http.ResponseWriter, r *http.Request) {
	var dto CreateUnidadeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	unidade, err := h.Service.CreateUnidade(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, unidade)
}

func (h *Handler) GetUnidade(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	unidade, err := h.Service.GetUnidade(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, unidade)
}

func (h *Handler) ListUnidades(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.ListUnidades(r.Context(), parseListParams(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateUnidade(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	var dto UpdateUnidadeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	unidade, err := h.Service.UpdateUnidade(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, unidade)
}

func (h *Handler) DeleteUnidade(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteUnidade(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Servico
// ---------------------------------------------------------------------------

func (h *Handler) CreateServico(w http.ResponseWriter, r *http.Request) {
	var dto CreateServicoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	servico, err := h.Service.CreateServico(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, servico)
}

func (h *Handler) GetServico(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	servico, err := h.Service.GetServico(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, servico)
}

func (h *Handler) ListServicos(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.ListServicos(r.Context(), parseListParams(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateServico(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	var dto UpdateServicoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	servico, err := h.Service.UpdateServico(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, servico)
}

func (h *Handler) DeleteServico(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteServico(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
