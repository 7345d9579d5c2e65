package tenant_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/netfibra/backoffice/internal"
	tenantDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/tenant"
	"github.com/netfibra/backoffice/internal/tenant"
)

func TestTenant(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Tenant Service Suite")
}

type MockRepository struct {
	tenants    map[uuid.UUID]*tenantDatamodel.Tenant
	userCounts map[uuid.UUID]int64
	lpuCounts  map[uuid.UUID]int64

	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		tenants:    make(map[uuid.UUID]*tenantDatamodel.Tenant),
		userCounts: make(map[uuid.UUID]int64),
		lpuCounts:  make(map[uuid.UUID]int64),
	}
}

func (m *MockRepository) SetShouldFail(fail bool, err error) {
	m.shouldFail = fail
	m.failError = err
}

func (m *MockRepository) List(status *string, limit, offset int) ([]*tenantDatamodel.Tenant, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	var out []*tenantDatamodel.Tenant
	for _, t := range m.tenants {
		if status != nil && string(t.Status) != *status {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (m *MockRepository) GetByID(id uuid.UUID) (*tenantDatamodel.Tenant, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.tenants[id], nil
}

func (m *MockRepository) Create(t *tenantDatamodel.Tenant) error {
	if m.shouldFail {
		return m.failError
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	m.tenants[t.ID] = t
	return nil
}

func (m *MockRepository) Update(t *tenantDatamodel.Tenant) error {
	if m.shouldFail {
		return m.failError
	}
	m.tenants[t.ID] = t
	return nil
}

func (m *MockRepository) Delete(id uuid.UUID) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.tenants, id)
	return nil
}

func (m *MockRepository) CountUsersByTenant(tenantID uuid.UUID) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	return m.userCounts[tenantID], nil
}

func (m *MockRepository) CountLPUsByTenant(tenantID uuid.UUID) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	return m.lpuCounts[tenantID], nil
}

var _ = Describe("Tenant Service", func() {
	var (
		repo    *MockRepository
		service *tenant.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		service = tenant.NewService(repo, slog.Default())
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("creates a tenant with ACTIVE status by default", func() {
			created, err := service.Create(ctx, tenant.CreateTenantDTO{Name: "Fibra Sul"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Name).To(Equal("Fibra Sul"))
			Expect(created.Status).To(Equal(string(tenantDatamodel.StatusActive)))
		})

		It("rejects an empty name", func() {
			_, err := service.Create(ctx, tenant.CreateTenantDTO{Name: ""})
			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})
	})

	Describe("Update", func() {
		It("changes name and status", func() {
			created, err := service.Create(ctx, tenant.CreateTenantDTO{Name: "Fibra Sul"})
			Expect(err).NotTo(HaveOccurred())

			newName := "Fibra Sul Telecom"
			newStatus := string(tenantDatamodel.StatusInactive)
			updated, err := service.Update(ctx, created.ID, tenant.UpdateTenantDTO{Name: &newName, Status: &newStatus})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Fibra Sul Telecom"))
			Expect(updated.Status).To(Equal("INACTIVE"))
		})

		It("rejects an unknown status value", func() {
			created, err := service.Create(ctx, tenant.CreateTenantDTO{Name: "Fibra Sul"})
			Expect(err).NotTo(HaveOccurred())

			bad := "SUSPENDED"
			_, err = service.Update(ctx, created.ID, tenant.UpdateTenantDTO{Status: &bad})
			Expect(err).To(HaveOccurred())
		})

		It("returns not found for a missing tenant", func() {
			name := "Whatever"
			_, err := service.Update(ctx, uuid.New(), tenant.UpdateTenantDTO{Name: &name})
			Expect(err).To(Equal(apperrors.ErrTenantNotFound))
		})
	})

	Describe("Delete", func() {
		It("refuses to delete a tenant that still owns users", func() {
			created, err := service.Create(ctx, tenant.CreateTenantDTO{Name: "Fibra Sul"})
			Expect(err).NotTo(HaveOccurred())
			repo.userCounts[created.ID] = 3

			err = service.Delete(ctx, created.ID)
			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeEntityInUse))
		})

		It("refuses to delete a tenant that still owns price lists", func() {
			created, err := service.Create(ctx, tenant.CreateTenantDTO{Name: "Fibra Sul"})
			Expect(err).NotTo(HaveOccurred())
			repo.lpuCounts[created.ID] = 1

			err = service.Delete(ctx, created.ID)
			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeEntityInUse))
		})

		It("deletes an empty tenant", func() {
			created, err := service.Create(ctx, tenant.CreateTenantDTO{Name: "Fibra Sul"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, created.ID)).To(Succeed())
			_, err = service.Get(ctx, created.ID)
			Expect(err).To(Equal(apperrors.ErrTenantNotFound))
		})
	})
})
