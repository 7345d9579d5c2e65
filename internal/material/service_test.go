package material_test

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
	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
	materialDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/material"
	"github.com/netfibra/backoffice/internal/material"
)

func TestMaterialService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Material Service Suite")
}

// MockRepository implements material.RepositoryAPI for testing
type MockRepository struct {
	materiais  map[uuid.UUID]*materialDatamodel.Material
	unidades   map[uuid.UUID]*catalogDatamodel.Unidade
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		materiais: make(map[uuid.UUID]*materialDatamodel.Material),
		unidades:  make(map[uuid.UUID]*catalogDatamodel.Unidade),
	}
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) AddUnidade(u *catalogDatamodel.Unidade) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.unidades[u.ID] = u
}

func (m *MockRepository) List(ativo *bool, limit, offset int) ([]*materialDatamodel.Material, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	var result []*materialDatamodel.Material
	for _, mat := range m.materiais {
		if ativo != nil && mat.Ativo != *ativo {
			continue
		}
		result = append(result, mat)
	}
	return result, int64(len(result)), nil
}

func (m *MockRepository) GetByID(id uuid.UUID) (*materialDatamodel.Material, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.materiais[id], nil
}

func (m *MockRepository) GetByCodigo(codigo string) (*materialDatamodel.Material, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, mat := range m.materiais {
		if mat.Codigo == codigo {
			return mat, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(mat *materialDatamodel.Material) error {
	if m.shouldFail {
		return m.failError
	}
	if mat.ID == uuid.Nil {
		mat.ID = uuid.New()
	}
	m.materiais[mat.ID] = mat
	return nil
}

func (m *MockRepository) Update(mat *materialDatamodel.Material) error {
	if m.shouldFail {
		return m.failError
	}
	m.materiais[mat.ID] = mat
	return nil
}

func (m *MockRepository) Delete(id uuid.UUID) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.materiais, id)
	return nil
}

func (m *MockRepository) GetUnidadeByID(id uuid.UUID) (*catalogDatamodel.Unidade, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.unidades[id], nil
}

var _ = Describe("Material Service", func() {
	var (
		mockRepo *MockRepository
		service  *material.Service
		ctx      context.Context
		unidade  *catalogDatamodel.Unidade
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = material.NewService(mockRepo, testLogger)
		ctx = context.Background()

		unidade = &catalogDatamodel.Unidade{Nome: "Metro", Sigla: "m", Ativa: true}
		mockRepo.AddUnidade(unidade)
	})

	Describe("Create", func() {
		It("should create a material with default ativo=true", func() {
			result, err := service.Create(ctx, material.CreateMaterialDTO{
				Codigo:    "MAT-001",
				Descricao: "Cabo drop 1FO",
				UnidadeID: unidade.ID,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Codigo).To(Equal("MAT-001"))
			Expect(result.Ativo).To(BeTrue())
		})

		It("should reject a duplicate codigo", func() {
			dto := material.CreateMaterialDTO{
				Codigo:    "MAT-001",
				Descricao: "Cabo drop 1FO",
				UnidadeID: unidade.ID,
			}
			_, err := service.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, dto)
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeConflict))
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateCodigo))
		})

		It("should reject an unknown unidade", func() {
			_, err := service.Create(ctx, material.CreateMaterialDTO{
				Codigo:    "MAT-001",
				Descricao: "Cabo drop 1FO",
				UnidadeID: uuid.New(),
			})
			Expect(err).To(Equal(apperrors.ErrUnidadeNotFound))
		})

		It("should reject missing fields", func() {
			_, err := service.Create(ctx, material.CreateMaterialDTO{UnidadeID: unidade.ID})
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("should surface repository failures as internal errors", func() {
			mockRepo.SetShouldFail(true, errors.New("connection refused"))

			_, err := service.Create(ctx, material.CreateMaterialDTO{
				Codigo:    "MAT-001",
				Descricao: "Cabo drop 1FO",
				UnidadeID: unidade.ID,
			})
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeInternal))
		})
	})

	Describe("Update", func() {
		var existing *material.Material

		BeforeEach(func() {
			var err error
			existing, err = service.Create(ctx, material.CreateMaterialDTO{
				Codigo:    "MAT-001",
				Descricao: "Cabo drop 1FO",
				UnidadeID: unidade.ID,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should update descricao and ativo", func() {
			descricao := "Cabo drop 2FO"
			ativo := false
			result, err := service.Update(ctx, existing.ID, material.UpdateMaterialDTO{
				Descricao: &descricao,
				Ativo:     &ativo,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Descricao).To(Equal("Cabo drop 2FO"))
			Expect(result.Ativo).To(BeFalse())
		})

		It("should reject a codigo already taken by another material", func() {
			_, err := service.Create(ctx, material.CreateMaterialDTO{
				Codigo:    "MAT-002",
				Descricao: "Conector SC/APC",
				UnidadeID: unidade.ID,
			})
			Expect(err).NotTo(HaveOccurred())

			taken := "MAT-002"
			_, err = service.Update(ctx, existing.ID, material.UpdateMaterialDTO{Codigo: &taken})
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateCodigo))
		})

		It("should return not found for an unknown id", func() {
			descricao := "Qualquer"
			_, err := service.Update(ctx, uuid.New(), material.UpdateMaterialDTO{Descricao: &descricao})
			Expect(err).To(Equal(apperrors.ErrMaterialNotFound))
		})
	})

	Describe("Delete", func() {
		It("should delete an existing material", func() {
			created, err := service.Create(ctx, material.CreateMaterialDTO{
				Codigo:    "MAT-001",
				Descricao: "Cabo drop 1FO",
				UnidadeID: unidade.ID,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, created.ID)).To(Succeed())

			_, err = service.Get(ctx, created.ID)
			Expect(err).To(Equal(apperrors.ErrMaterialNotFound))
		})

		It("should return not found for an unknown id", func() {
			err := service.Delete(ctx, uuid.New())
			Expect(err).To(Equal(apperrors.ErrMaterialNotFound))
		})
	})
})
