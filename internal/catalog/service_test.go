package catalog_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/netfibra/backoffice/internal"
	"github.com/netfibra/backoffice/internal/catalog"
	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
	"github.com/netfibra/backoffice/internal/core/events"
)

func TestCatalogService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Catalog Service Suite")
}

// MockRepository implements catalog.RepositoryAPI for testing
type MockRepository struct {
	classes  map[uuid.UUID]*catalogDatamodel.Classe
	unidades map[uuid.UUID]*catalogDatamodel.Unidade
	servicos map[uuid.UUID]*catalogDatamodel.Servico

	lpuItemCounts  map[uuid.UUID]int64
	materialCounts map[uuid.UUID]int64

	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		classes:        make(map[uuid.UUID]*catalogDatamodel.Classe),
		unidades:       make(map[uuid.UUID]*catalogDatamodel.Unidade),
		servicos:       make(map[uuid.UUID]*catalogDatamodel.Servico),
		lpuItemCounts:  make(map[uuid.UUID]int64),
		materialCounts: make(map[uuid.UUID]int64),
	}
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) ListClasses(ativa *bool, limit, offset int) ([]*catalogDatamodel.Classe, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	var result []*catalogDatamodel.Classe
	for _, c := range m.classes {
		if ativa != nil && c.Ativa != *ativa {
			continue
		}
		result = append(result, c)
	}
	return result, int64(len(result)), nil
}

func (m *MockRepository) GetClasseByID(id uuid.UUID) (*catalogDatamodel.Classe, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.classes[id], nil
}

func (m *MockRepository) GetClasseByNome(nome string) (*catalogDatamodel.Classe, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, c := range m.classes {
		if c.Nome == nome {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) CreateClasse(classe *catalogDatamodel.Classe) error {
	if m.shouldFail {
		return m.failError
	}
	if classe.ID == uuid.Nil {
		classe.ID = uuid.New()
	}
	m.classes[classe.ID] = classe
	return nil
}

func (m *MockRepository) UpdateClasse(classe *catalogDatamodel.Classe) error {
	if m.shouldFail {
		return m.failError
	}
	m.classes[classe.ID] = classe
	return nil
}

func (m *MockRepository) DeleteClasse(id uuid.UUID) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.classes, id)
	return nil
}

func (m *MockRepository) ListUnidades(ativa *bool, limit, offset int) ([]*catalogDatamodel.Unidade, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	var result []*catalogDatamodel.Unidade
	for _, u := range m.unidades {
		if ativa != nil && u.Ativa != *ativa {
			continue
		}
		result = append(result, u)
	}
	return result, int64(len(result)), nil
}

func (m *MockRepository) GetUnidadeByID(id uuid.UUID) (*catalogDatamodel.Unidade, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.unidades[id], nil
}

func (m *MockRepository) GetUnidadeBySigla(sigla string) (*catalogDatamodel.Unidade, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, u := range m.unidades {
		if u.Sigla == sigla {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) CreateUnidade(unidade *catalogDatamodel.Unidade) error {
	if m.shouldFail {
		return m.failError
	}
	if unidade.ID == uuid.Nil {
		unidade.ID = uuid.New()
	}
	m.unidades[unidade.ID] = unidade
	return nil
}

func (m *MockRepository) UpdateUnidade(unidade *catalogDatamodel.Unidade) error {
	if m.shouldFail {
		return m.failError
	}
	m.unidades[unidade.ID] = unidade
	return nil
}

func (m *MockRepository) DeleteUnidade(id uuid.UUID) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.unidades, id)
	return nil
}

func (m *MockRepository) ListServicos(ativo *bool, classeID *uuid.UUID, limit, offset int) ([]*catalogDatamodel.Servico, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	var result []*catalogDatamodel.Servico
	for _, s := range m.servicos {
		if ativo != nil && s.Ativo != *ativo {
			continue
		}
		if classeID != nil && s.ClasseID != *classeID {
			continue
		}
		result = append(result, s)
	}
	return result, int64(len(result)), nil
}

func (m *MockRepository) GetServicoByID(id uuid.UUID) (*catalogDatamodel.Servico, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.servicos[id], nil
}

func (m *MockRepository) GetServicoByCodigo(codigo string) (*catalogDatamodel.Servico, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, s := range m.servicos {
		if s.Codigo == codigo {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) CreateServico(servico *catalogDatamodel.Servico) error {
	if m.shouldFail {
		return m.failError
	}
	if servico.ID == uuid.Nil {
		servico.ID = uuid.New()
	}
	m.servicos[servico.ID] = servico
	return nil
}

func (m *MockRepository) UpdateServico(servico *catalogDatamodel.Servico) error {
	if m.shouldFail {
		return m.failError
	}
	m.servicos[servico.ID] = servico
	return nil
}

func (m *MockRepository) DeleteServico(id uuid.UUID) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.servicos, id)
	return nil
}

func (m *MockRepository) CountServicosByClasse(classeID uuid.UUID) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	var count int64
	for _, s := range m.servicos {
		if s.ClasseID == classeID {
			count++
		}
	}
	return count, nil
}

func (m *MockRepository) CountServicosByUnidade(unidadeID uuid.UUID) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	var count int64
	for _, s := range m.servicos {
		if s.UnidadeID == unidadeID {
			count++
		}
	}
	return count, nil
}

func (m *MockRepository) CountMateriaisByUnidade(unidadeID uuid.UUID) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	return m.materialCounts[unidadeID], nil
}

func (m *MockRepository) CountLPUItensByServico(servicoID uuid.UUID) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	return m.lpuItemCounts[servicoID], nil
}

// MockBus records published events
type MockBus struct {
	published []events.Event
}

func (b *MockBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

var _ = Describe("Catalog Service", func() {
	var (
		mockRepo *MockRepository
		mockBus  *MockBus
		service  *catalog.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockBus = &MockBus{}
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = catalog.NewService(mockRepo, mockBus, testLogger)
		ctx = context.Background()
	})

	Describe("CreateClasse", func() {
		It("should create a classe with default ativa=true", func() {
			result, err := service.CreateClasse(ctx, catalog.CreateClasseDTO{Nome: "Fibra Optica"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.Nome).To(Equal("Fibra Optica"))
			Expect(result.Ativa).To(BeTrue())
			Expect(result.ID).NotTo(Equal(uuid.Nil))
		})

		It("should reject an empty nome", func() {
			_, err := service.CreateClasse(ctx, catalog.CreateClasseDTO{Nome: ""})
			Expect(err).To(HaveOccurred())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("should reject a duplicate nome with a conflict error", func() {
			_, err := service.CreateClasse(ctx, catalog.CreateClasseDTO{Nome: "Fibra Optica"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateClasse(ctx, catalog.CreateClasseDTO{Nome: "Fibra Optica"})
			Expect(err).To(HaveOccurred())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeConflict))
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateName))
		})

		It("should surface repository failures as internal errors", func() {
			mockRepo.SetShouldFail(true, errors.New("connection refused"))

			_, err := service.CreateClasse(ctx, catalog.CreateClasseDTO{Nome: "Fibra Optica"})
			Expect(err).To(HaveOccurred())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeInternal))
		})
	})

	Describe("UpdateClasse", func() {
		var existing *catalog.Classe

		BeforeEach(func() {
			var err error
			existing, err = service.CreateClasse(ctx, catalog.CreateClasseDTO{Nome: "Fibra Optica"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should rename a classe", func() {
			novo := "Rede Externa"
			result, err := service.UpdateClasse(ctx, existing.ID, catalog.UpdateClasseDTO{Nome: &novo})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Nome).To(Equal("Rede Externa"))
		})

		It("should allow an update that keeps the same nome", func() {
			same := "Fibra Optica"
			ativa := false
			result, err := service.UpdateClasse(ctx, existing.ID, catalog.UpdateClasseDTO{Nome: &same, Ativa: &ativa})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Ativa).To(BeFalse())
		})

		It("should reject renaming to an existing nome", func() {
			_, err := service.CreateClasse(ctx, catalog.CreateClasseDTO{Nome: "Rede Externa"})
			Expect(err).NotTo(HaveOccurred())

			taken := "Rede Externa"
			_, err = service.UpdateClasse(ctx, existing.ID, catalog.UpdateClasseDTO{Nome: &taken})
			Expect(err).To(HaveOccurred())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateName))
		})

		It("should return not found for an unknown id", func() {
			novo := "Qualquer"
			_, err := service.UpdateClasse(ctx, uuid.New(), catalog.UpdateClasseDTO{Nome: &novo})
			Expect(err).To(Equal(apperrors.ErrClasseNotFound))
		})
	})

	Describe("DeleteClasse", func() {
		var (
			classe  *catalog.Classe
			unidade *catalog.Unidade
		)

		BeforeEach(func() {
			var err error
			classe, err = service.CreateClasse(ctx, catalog.CreateClasseDTO{Nome: "Fibra Optica"})
			Expect(err).NotTo(HaveOccurred())
			unidade, err = service.CreateUnidade(ctx, catalog.CreateUnidadeDTO{Nome: "Metro", Sigla: "m"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should delete an unreferenced classe", func() {
			err := service.DeleteClasse(ctx, classe.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.GetClasse(ctx, classe.ID)
			Expect(err).To(Equal(apperrors.ErrClasseNotFound))
		})

		It("should refuse to delete a classe referenced by a servico", func() {
			_, err := service.CreateServico(ctx, catalog.CreateServicoDTO{
				Codigo:    "SRV-001",
				Atividade: "Lancamento de cabo",
				ClasseID:  classe.ID,
				UnidadeID: unidade.ID,
			})
			Expect(err).NotTo(HaveOccurred())

			err = service.DeleteClasse(ctx, classe.ID)
			Expect(err).To(HaveOccurred())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeConflict))
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeEntityInUse))
		})

		It("should return not found for an unknown id", func() {
			err := service.DeleteClasse(ctx, uuid.New())
			Expect(err).To(Equal(apperrors.ErrClasseNotFound))
		})
	})

	Describe("CreateUnidade", func() {
		It("should create a unidade", func() {
			result, err := service.CreateUnidade(ctx, catalog.CreateUnidadeDTO{Nome: "Metro", Sigla: "m"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Sigla).To(Equal("m"))
			Expect(result.Ativa).To(BeTrue())
		})

		It("should reject a duplicate sigla", func() {
			_, err := service.CreateUnidade(ctx, catalog.CreateUnidadeDTO{Nome: "Metro", Sigla: "m"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateUnidade(ctx, catalog.CreateUnidadeDTO{Nome: "Metro linear", Sigla: "m"})
			Expect(err).To(HaveOccurred())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateSigla))
		})

		It("should reject missing fields", func() {
			_, err := service.CreateUnidade(ctx, catalog.CreateUnidadeDTO{Nome: "Metro"})
			Expect(err).To(HaveOccurred())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})
	})

	Describe("DeleteUnidade", func() {
		var unidade *catalog.Unidade

		BeforeEach(func() {
			var err error
			unidade, err = service.CreateUnidade(ctx, catalog.CreateUnidadeDTO{Nome: "Metro", Sigla: "m"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should delete an unreferenced unidade", func() {
			Expect(service.DeleteUnidade(ctx, unidade.ID)).To(Succeed())
		})

		It("should refuse to delete a unidade referenced by a servico", func() {
			classe, err := service.CreateClasse(ctx, catalog.CreateClasseDTO{Nome: "Fibra Optica"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateServico(ctx, catalog.CreateServicoDTO{
				Codigo:    "SRV-001",
				Atividade: "Lancamento de cabo",
				ClasseID:  classe.ID,
				UnidadeID: unidade.ID,
			})
			Expect(err).NotTo(HaveOccurred())

			err = service.DeleteUnidade(ctx, unidade.ID)
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeEntityInUse))
		})

		It("should refuse to delete a unidade referenced by a material", func() {
			mockRepo.materialCounts[unidade.ID] = 2

			err := service.DeleteUnidade(ctx, unidade.ID)
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeEntityInUse))
		})
	})

	Describe("CreateServico", func() {
		var (
			classe  *catalog.Classe
			unidade *catalog.Unidade
		)

		BeforeEach(func() {
			var err error
			classe, err = service.CreateClasse(ctx, catalog.CreateClasseDTO{Nome: "Fibra Optica"})
			Expect(err).NotTo(HaveOccurred())
			unidade, err = service.CreateUnidade(ctx, catalog.CreateUnidadeDTO{Nome: "Metro", Sigla: "m"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should create a servico and publish an event", func() {
			result, err := service.CreateServico(ctx, catalog.CreateServicoDTO{
				Codigo:    "SRV-001",
				Atividade: "Lancamento de cabo",
				ClasseID:  classe.ID,
				UnidadeID: unidade.ID,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Codigo).To(Equal("SRV-001"))
			Expect(result.Ativo).To(BeTrue())

			Expect(mockBus.published).To(HaveLen(1))
			Expect(mockBus.published[0].EventType()).To(Equal(events.EventTypeServicoCreated))
		})

		It("should reject a duplicate codigo", func() {
			dto := catalog.CreateServicoDTO{
				Codigo:    "SRV-001",
				Atividade: "Lancamento de cabo",
				ClasseID:  classe.ID,
				UnidadeID: unidade.ID,
			}
			_, err := service.CreateServico(ctx, dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateServico(ctx, dto)
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateCodigo))
		})

		It("should reject an unknown classe", func() {
			_, err := service.CreateServico(ctx, catalog.CreateServicoDTO{
				Codigo:    "SRV-001",
				Atividade: "Lancamento de cabo",
				ClasseID:  uuid.New(),
				UnidadeID: unidade.ID,
			})
			Expect(err).To(Equal(apperrors.ErrClasseNotFound))
		})

		It("should reject an unknown unidade", func() {
			_, err := service.CreateServico(ctx, catalog.CreateServicoDTO{
				Codigo:    "SRV-001",
				Atividade: "Lancamento de cabo",
				ClasseID:  classe.ID,
				UnidadeID: uuid.New(),
			})
			Expect(err).To(Equal(apperrors.ErrUnidadeNotFound))
		})
	})

	Describe("DeleteServico", func() {
		var servico *catalog.Servico

		BeforeEach(func() {
			classe, err := service.CreateClasse(ctx, catalog.CreateClasseDTO{Nome: "Fibra Optica"})
			Expect(err).NotTo(HaveOccurred())
			unidade, err := service.CreateUnidade(ctx, catalog.CreateUnidadeDTO{Nome: "Metro", Sigla: "m"})
			Expect(err).NotTo(HaveOccurred())
			servico, err = service.CreateServico(ctx, catalog.CreateServicoDTO{
				Codigo:    "SRV-001",
				Atividade: "Lancamento de cabo",
				ClasseID:  classe.ID,
				UnidadeID: unidade.ID,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should delete a servico not referenced by any price list", func() {
			Expect(service.DeleteServico(ctx, servico.ID)).To(Succeed())

			_, err := service.GetServico(ctx, servico.ID)
			Expect(err).To(Equal(apperrors.ErrServicoNotFound))
		})

		It("should refuse to delete a servico referenced by a price list item", func() {
			mockRepo.lpuItemCounts[servico.ID] = 3

			err := service.DeleteServico(ctx, servico.ID)
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeEntityInUse))
		})
	})
})
