package rbac_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/netfibra/backoffice/internal"
	rbacDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/rbac"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
	"github.com/netfibra/backoffice/internal/core/events"
	"github.com/netfibra/backoffice/internal/rbac"
)

func TestRBACService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Service Suite")
}

type roleKey struct {
	role userDatamodel.Role
	key  string
}

// MockRepository implements rbac.RepositoryAPI for testing
type MockRepository struct {
	rows       map[roleKey]*rbacDatamodel.ScreenPermission
	perms      []*rbacDatamodel.Permission
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{rows: make(map[roleKey]*rbacDatamodel.ScreenPermission)}
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) ListPermissions() ([]*rbacDatamodel.Permission, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.perms, nil
}

func (m *MockRepository) ListScreenPermissions(role userDatamodel.Role) ([]*rbacDatamodel.ScreenPermission, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*rbacDatamodel.ScreenPermission
	for k, row := range m.rows {
		if k.role == role {
			result = append(result, row)
		}
	}
	return result, nil
}

func (m *MockRepository) ListAllScreenPermissions() ([]*rbacDatamodel.ScreenPermission, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*rbacDatamodel.ScreenPermission
	for _, row := range m.rows {
		result = append(result, row)
	}
	return result, nil
}

func (m *MockRepository) ReplaceScreenPermissions(role userDatamodel.Role, rows []*rbacDatamodel.ScreenPermission) error {
	if m.shouldFail {
		return m.failError
	}
	for k := range m.rows {
		if k.role == role {
			delete(m.rows, k)
		}
	}
	for _, row := range rows {
		m.rows[roleKey{role: row.Role, key: row.ScreenKey}] = row
	}
	return nil
}

// MockBus records published events
type MockBus struct {
	published []events.Event
}

func (b *MockBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

var _ = Describe("RBAC Service", func() {
	var (
		mockRepo *MockRepository
		mockBus  *MockBus
		service  *rbac.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockBus = &MockBus{}
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = rbac.NewService(mockRepo, mockBus, testLogger)
		ctx = context.Background()
	})

	Describe("GetForRole", func() {
		It("should deny every screen when a role has no stored rows", func() {
			matrix, err := service.GetForRole(ctx, userDatamodel.RoleStaff)
			Expect(err).NotTo(HaveOccurred())
			Expect(matrix).NotTo(BeEmpty())
			for key, actions := range matrix {
				Expect(actions).To(Equal(rbac.ScreenActionSet{}), "screen %s should be denied", key)
			}
		})

		It("should read MASTER as fully allowed everywhere", func() {
			matrix, err := service.GetForRole(ctx, userDatamodel.RoleMaster)
			Expect(err).NotTo(HaveOccurred())
			Expect(matrix).NotTo(BeEmpty())
			for key, actions := range matrix {
				Expect(actions).To(Equal(rbac.ScreenActionSet{View: true, Create: true, Edit: true, Delete: true}), "screen %s", key)
			}
		})

		It("should grant only what stored rows say", func() {
			mockRepo.rows[roleKey{userDatamodel.RoleStaff, "catalogo"}] = &rbacDatamodel.ScreenPermission{
				Role:      userDatamodel.RoleStaff,
				ScreenKey: "catalogo",
				CanView:   true,
				CanCreate: true,
			}

			matrix, err := service.GetForRole(ctx, userDatamodel.RoleStaff)
			Expect(err).NotTo(HaveOccurred())
			Expect(matrix["catalogo"].Create).To(BeTrue())
			Expect(matrix["catalogo"].Delete).To(BeFalse())
		})

		It("should reject an unknown role", func() {
			_, err := service.GetForRole(ctx, userDatamodel.Role("SUPERVISOR"))
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})
	})

	Describe("ReplaceForRole", func() {
		It("should replace the role's matrix wholesale", func() {
			_, err := service.ReplaceForRole(ctx, userDatamodel.RoleStaff, rbac.ScreenPermissionsMap{
				"catalogo": {View: true, Create: true},
				"lpus":     {View: true},
			})
			Expect(err).NotTo(HaveOccurred())

			matrix, err := service.GetForRole(ctx, userDatamodel.RoleStaff)
			Expect(err).NotTo(HaveOccurred())
			Expect(matrix["catalogo"].Create).To(BeTrue())
			Expect(matrix["lpus"].View).To(BeTrue())
			Expect(matrix["lpus"].Edit).To(BeFalse())
			Expect(mockBus.published).To(HaveLen(1))
		})

		It("should revoke screens omitted from the new map", func() {
			_, err := service.ReplaceForRole(ctx, userDatamodel.RoleStaff, rbac.ScreenPermissionsMap{
				"catalogo": {View: true, Create: true, Edit: true, Delete: true},
			})
			Expect(err).NotTo(HaveOccurred())

			// Second replace without catalogo: every grant on it is gone.
			_, err = service.ReplaceForRole(ctx, userDatamodel.RoleStaff, rbac.ScreenPermissionsMap{
				"lpus": {View: true},
			})
			Expect(err).NotTo(HaveOccurred())

			matrix, err := service.GetForRole(ctx, userDatamodel.RoleStaff)
			Expect(err).NotTo(HaveOccurred())
			Expect(matrix["catalogo"]).To(Equal(rbac.ScreenActionSet{}))
			Expect(matrix["lpus"].View).To(BeTrue())
		})

		It("should fully deny every screen after replacing with an empty map", func() {
			_, err := service.ReplaceForRole(ctx, userDatamodel.RolePartner, rbac.ScreenPermissionsMap{
				"lpus": {View: true, Edit: true},
			})
			Expect(err).NotTo(HaveOccurred())

			allowed, err := service.Allowed(ctx, userDatamodel.RolePartner, "lpus", rbac.ActionView)
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())

			_, err = service.ReplaceForRole(ctx, userDatamodel.RolePartner, rbac.ScreenPermissionsMap{})
			Expect(err).NotTo(HaveOccurred())

			matrix, err := service.GetForRole(ctx, userDatamodel.RolePartner)
			Expect(err).NotTo(HaveOccurred())
			Expect(matrix).NotTo(BeEmpty())
			for key, actions := range matrix {
				Expect(actions).To(Equal(rbac.ScreenActionSet{}), "screen %s should be denied", key)
			}

			allowed, err = service.Allowed(ctx, userDatamodel.RolePartner, "lpus", rbac.ActionView)
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("should refuse to touch MASTER", func() {
			_, err := service.ReplaceForRole(ctx, userDatamodel.RoleMaster, rbac.ScreenPermissionsMap{})
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeRoleImmutable))
		})

		It("should reject an unregistered screen key", func() {
			_, err := service.ReplaceForRole(ctx, userDatamodel.RoleStaff, rbac.ScreenPermissionsMap{
				"tela_inexistente": {View: true},
			})
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("should surface repository failures as internal errors", func() {
			mockRepo.SetShouldFail(true, errors.New("deadlock detected"))

			_, err := service.ReplaceForRole(ctx, userDatamodel.RoleStaff, rbac.ScreenPermissionsMap{
				"catalogo": {View: true},
			})
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeInternal))
		})
	})

	Describe("Allowed", func() {
		It("should always allow MASTER", func() {
			allowed, err := service.Allowed(ctx, userDatamodel.RoleMaster, "tela_inexistente", rbac.ActionDelete)
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})

		It("should deny an unregistered screen for everyone else", func() {
			allowed, err := service.Allowed(ctx, userDatamodel.RoleAdmin, "tela_inexistente", rbac.ActionView)
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("should honor stored grants per action", func() {
			_, err := service.ReplaceForRole(ctx, userDatamodel.RoleStaff, rbac.ScreenPermissionsMap{
				"catalogo": {View: true, Edit: true},
			})
			Expect(err).NotTo(HaveOccurred())

			allowed, err := service.Allowed(ctx, userDatamodel.RoleStaff, "catalogo", rbac.ActionEdit)
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())

			allowed, err = service.Allowed(ctx, userDatamodel.RoleStaff, "catalogo", rbac.ActionDelete)
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})
	})

	Describe("GetAll", func() {
		It("should cover every role", func() {
			all, err := service.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(len(userDatamodel.AllRoles())))
			Expect(all[userDatamodel.RoleMaster]["catalogo"].Delete).To(BeTrue())
			Expect(all[userDatamodel.RolePartner]["catalogo"].View).To(BeFalse())
		})
	})
})
