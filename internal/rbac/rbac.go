package rbac

import (
	"time"

	"github.com/google/uuid"

	rbacDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/rbac"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
)

// ScreenAction is one of the four things a role can do on a screen.
type ScreenAction string

const (
	ActionView   ScreenAction = "view"
	ActionCreate ScreenAction = "create"
	ActionEdit   ScreenAction = "edit"
	ActionDelete ScreenAction = "delete"
)

// ScreenActionSet is one cell of the permission matrix.
type ScreenActionSet struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

func (s ScreenActionSet) Allows(action ScreenAction) bool {
	switch action {
	case ActionView:
		return s.View
	case ActionCreate:
		return s.Create
	case ActionEdit:
		return s.Edit
	case ActionDelete:
		return s.Delete
	}
	return false
}

// ScreenPermissionsMap maps screen_key to the actions a role may perform.
type ScreenPermissionsMap map[string]ScreenActionSet

// ScreenDefinition registers one UI screen and the per-role defaults the
// seeder materializes as rows at bootstrap.
type ScreenDefinition struct {
	Key      string                                 `json:"key"`
	Label    string                                 `json:"label"`
	Defaults map[userDatamodel.Role]ScreenActionSet `json:"-"`
}

var (
	none           = ScreenActionSet{}
	viewOnly       = ScreenActionSet{View: true}
	full           = ScreenActionSet{View: true, Create: true, Edit: true, Delete: true}
	viewCreateEdit = ScreenActionSet{View: true, Create: true, Edit: true}
)

// Screens is the central screen registry. Every protected screen must be
// listed here; an unregistered key is denied for everyone except MASTER.
var Screens = []ScreenDefinition{
	{
		Key:   "catalogo",
		Label: "Catálogo",
		Defaults: map[userDatamodel.Role]ScreenActionSet{
			userDatamodel.RoleMaster:  full,
			userDatamodel.RoleAdmin:   full,
			userDatamodel.RoleManager: viewCreateEdit,
			userDatamodel.RoleStaff:   viewOnly,
			userDatamodel.RolePartner: none,
		},
	},
	{
		Key:   "materiais",
		Label: "Materiais",
		Defaults: map[userDatamodel.Role]ScreenActionSet{
			userDatamodel.RoleMaster:  full,
			userDatamodel.RoleAdmin:   full,
			userDatamodel.RoleManager: viewCreateEdit,
			userDatamodel.RoleStaff:   viewOnly,
			userDatamodel.RolePartner: none,
		},
	},
	{
		Key:   "lpus",
		Label: "Listas de Preço",
		Defaults: map[userDatamodel.Role]ScreenActionSet{
			userDatamodel.RoleMaster:  full,
			userDatamodel.RoleAdmin:   full,
			userDatamodel.RoleManager: viewCreateEdit,
			userDatamodel.RoleStaff:   viewOnly,
			userDatamodel.RolePartner: viewOnly,
		},
	},
	{
		Key:   "partners",
		Label: "Parceiros",
		Defaults: map[userDatamodel.Role]ScreenActionSet{
			userDatamodel.RoleMaster:  full,
			userDatamodel.RoleAdmin:   full,
			userDatamodel.RoleManager: viewCreateEdit,
			userDatamodel.RoleStaff:   viewOnly,
			userDatamodel.RolePartner: none,
		},
	},
	{
		Key:   "companies",
		Label: "Empresas",
		Defaults: map[userDatamodel.Role]ScreenActionSet{
			userDatamodel.RoleMaster:  full,
			userDatamodel.RoleAdmin:   viewCreateEdit,
			userDatamodel.RoleManager: viewOnly,
			userDatamodel.RoleStaff:   none,
			userDatamodel.RolePartner: none,
		},
	},
	{
		Key:   "admin.users",
		Label: "Usuários",
		Defaults: map[userDatamodel.Role]ScreenActionSet{
			userDatamodel.RoleMaster:  full,
			userDatamodel.RoleAdmin:   viewCreateEdit,
			userDatamodel.RoleManager: none,
			userDatamodel.RoleStaff:   none,
			userDatamodel.RolePartner: none,
		},
	},
	{
		Key:   "admin.profiles",
		Label: "Perfis de Acesso",
		Defaults: map[userDatamodel.Role]ScreenActionSet{
			userDatamodel.RoleMaster:  {View: true, Edit: true},
			userDatamodel.RoleAdmin:   none,
			userDatamodel.RoleManager: none,
			userDatamodel.RoleStaff:   none,
			userDatamodel.RolePartner: none,
		},
	},
}

// GetScreen looks a screen up by key.
func GetScreen(key string) (ScreenDefinition, bool) {
	for _, s := range Screens {
		if s.Key == key {
			return s, true
		}
	}
	return ScreenDefinition{}, false
}

// DefaultsForRole assembles the bootstrap matrix for a role from the registry.
// The seeder materializes it as rows; at runtime only stored rows grant
// anything.
func DefaultsForRole(role userDatamodel.Role) ScreenPermissionsMap {
	m := make(ScreenPermissionsMap, len(Screens))
	for _, s := range Screens {
		m[s.Key] = s.Defaults[role]
	}
	return m
}

// deniedMatrix lists every registered screen with all four actions off.
func deniedMatrix() ScreenPermissionsMap {
	m := make(ScreenPermissionsMap, len(Screens))
	for _, s := range Screens {
		m[s.Key] = ScreenActionSet{}
	}
	return m
}

// fullMatrix lists every registered screen with all four actions on.
func fullMatrix() ScreenPermissionsMap {
	m := make(ScreenPermissionsMap, len(Screens))
	for _, s := range Screens {
		m[s.Key] = full
	}
	return m
}

// Permission is a coarse named capability, kept for audit and seeding.
type Permission struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Module      *string   `json:"module,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func PermissionFromDataModel(m *rbacDatamodel.Permission) *Permission {
	if m == nil {
		return nil
	}
	return &Permission{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Module:      m.Module,
		CreatedAt:   m.CreatedAt,
	}
}
