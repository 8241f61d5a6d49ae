package auth

import (
	"context"

	"github.com/David-1512/LearnHub/internal/domain/enums"
)

type identityContextKey string

const identityKey identityContextKey = "auth_identity"

type Identity struct {
	UserID string
	SID    string
	Roles  []enums.Role
}

func (i Identity) HasRole(roles ...enums.Role) bool {
	return enums.AnyAllowed(i.Roles, roles...)
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
