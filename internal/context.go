package internal

import (
	"context"
	"time"

	"github.com/google/uuid"

	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
)

type ctxKey string

const ContextActorKey ctxKey = "actor"

// Actor is the authenticated caller: identity, role and tenant binding.
// It is resolved by the auth middleware before any service is invoked.
type Actor struct {
	UserID   uuid.UUID
	Email    string
	Role     userDatamodel.Role
	TenantID *uuid.UUID
}

func ActorFromContext(ctx context.Context) (*Actor, bool) {
	if ctx == nil {
		return nil, false
	}
	actor, ok := ctx.Value(ContextActorKey).(*Actor)
	return actor, ok
}

func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ContextActorKey, actor)
}

// ResolveTenant picks the effective tenant for a tenant-scoped operation.
// An actor bound to a tenant always uses its own (any requested id is
// ignored); a global MASTER must supply one explicitly.
func (a *Actor) ResolveTenant(requested *uuid.UUID) (uuid.UUID, error) {
	if a.TenantID != nil {
		return *a.TenantID, nil
	}
	if requested != nil {
		return *requested, nil
	}
	return uuid.Nil, NewValidationError(
		"tenant_id is required for a global user without a tenant binding",
		ErrCodeTenantRequired,
	)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
