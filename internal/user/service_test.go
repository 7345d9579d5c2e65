package user_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/netfibra/backoffice/internal"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
	"github.com/netfibra/backoffice/internal/core/events"
	"github.com/netfibra/backoffice/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type MockRepository struct {
	users   map[uuid.UUID]*userDatamodel.User
	tenants map[uuid.UUID]bool

	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:   make(map[uuid.UUID]*userDatamodel.User),
		tenants: make(map[uuid.UUID]bool),
	}
}

func (m *MockRepository) List(params user.ListParams) ([]*userDatamodel.User, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	var out []*userDatamodel.User
	for _, u := range m.users {
		if params.Role != nil && string(u.Role) != *params.Role {
			continue
		}
		if params.TenantID != nil && (u.TenantID == nil || *u.TenantID != *params.TenantID) {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *MockRepository) GetByID(id uuid.UUID) (*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.users[id], nil
}

func (m *MockRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(u *userDatamodel.User) error {
	if m.shouldFail {
		return m.failError
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users[u.ID] = u
	return nil
}

func (m *MockRepository) Update(u *userDatamodel.User) error {
	if m.shouldFail {
		return m.failError
	}
	m.users[u.ID] = u
	return nil
}

func (m *MockRepository) Delete(id uuid.UUID) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.users, id)
	return nil
}

func (m *MockRepository) TenantExists(id uuid.UUID) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	return m.tenants[id], nil
}

type plainHasher struct{}

func (plainHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

type MockBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *MockBus) Publish(ctx context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *MockBus) EventsOfType(eventType string) []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []events.Event
	for _, e := range b.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

var _ = Describe("User Service", func() {
	var (
		repo    *MockRepository
		bus     *MockBus
		service *user.Service
		ctx     context.Context

		tenantID uuid.UUID
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		bus = &MockBus{}
		service = user.NewService(repo, plainHasher{}, bus, slog.Default())
		ctx = context.Background()
		tenantID = uuid.New()
		repo.tenants[tenantID] = true
	})

	validDTO := func() user.CreateUserDTO {
		return user.CreateUserDTO{
			Email:    "staff@netfibra.com",
			Name:     "Staff User",
			Password: "s3cret-pass",
			Role:     "STAFF",
			TenantID: &tenantID,
		}
	}

	Describe("Create", func() {
		It("creates a PENDING active account with a hashed password", func() {
			created, err := service.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Status).To(Equal("PENDING"))
			Expect(created.IsActive).To(BeTrue())

			stored := repo.users[created.ID]
			Expect(stored.PasswordHash).To(Equal("hashed:s3cret-pass"))
		})

		It("publishes a user created event", func() {
			_, err := service.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(bus.EventsOfType(events.EventTypeUserCreated)).To(HaveLen(1))
		})

		It("rejects a duplicate email", func() {
			_, err := service.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, validDTO())
			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateEmail))
		})

		It("requires a tenant for tenant-bound roles", func() {
			dto := validDTO()
			dto.TenantID = nil
			_, err := service.Create(ctx, dto)
			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeTenantRequired))
		})

		It("rejects an unknown tenant", func() {
			dto := validDTO()
			other := uuid.New()
			dto.TenantID = &other
			_, err := service.Create(ctx, dto)
			Expect(err).To(Equal(apperrors.ErrTenantNotFound))
		})

		It("refuses a MASTER bound to a tenant", func() {
			dto := validDTO()
			dto.Role = "MASTER"
			_, err := service.Create(ctx, dto)
			Expect(err).To(HaveOccurred())
		})

		It("creates a global MASTER without a tenant", func() {
			dto := validDTO()
			dto.Role = "MASTER"
			dto.TenantID = nil
			created, err := service.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.TenantID).To(BeNil())
		})

		It("rejects a short password", func() {
			dto := validDTO()
			dto.Password = "short"
			_, err := service.Create(ctx, dto)
			Expect(err).To(HaveOccurred())
		})

		It("rejects an unknown role", func() {
			dto := validDTO()
			dto.Role = "SUPERUSER"
			_, err := service.Create(ctx, dto)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("changes name and role", func() {
			created, err := service.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			name := "Renamed"
			role := "MANAGER"
			updated, err := service.Update(ctx, created.ID, user.UpdateUserDTO{Name: &name, Role: &role})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Renamed"))
			Expect(updated.Role).To(Equal("MANAGER"))
		})

		It("rehashes a changed password", func() {
			created, err := service.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			pw := "another-pass"
			_, err = service.Update(ctx, created.ID, user.UpdateUserDTO{Password: &pw})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.users[created.ID].PasswordHash).To(Equal("hashed:another-pass"))
		})

		It("refuses to change the role of a MASTER account", func() {
			dto := validDTO()
			dto.Role = "MASTER"
			dto.TenantID = nil
			created, err := service.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())

			role := "ADMIN"
			_, err = service.Update(ctx, created.ID, user.UpdateUserDTO{Role: &role})
			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeRoleImmutable))
		})
	})

	Describe("Approve and Block", func() {
		It("moves a pending account to APPROVED", func() {
			created, err := service.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			approved, err := service.Approve(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal("APPROVED"))
		})

		It("blocks an approved account", func() {
			created, err := service.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Approve(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			blocked, err := service.Block(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(blocked.Status).To(Equal("BLOCKED"))
		})
	})

	Describe("Delete", func() {
		It("deletes a normal account", func() {
			created, err := service.Create(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, created.ID)).To(Succeed())
			_, err = service.Get(ctx, created.ID)
			Expect(err).To(Equal(apperrors.ErrUserNotFound))
		})

		It("never deletes a MASTER account", func() {
			dto := validDTO()
			dto.Role = "MASTER"
			dto.TenantID = nil
			created, err := service.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())

			err = service.Delete(ctx, created.ID)
			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeRoleImmutable))
		})
	})
})
