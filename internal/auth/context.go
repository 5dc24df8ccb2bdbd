package auth

import (
	"context"

	"github.com/stadiumstories/cricket-gateway/internal/user"
)

type contextKey string

const userContextKey contextKey = "user"

// NewContext attaches the resolved user (possibly nil) to ctx.
func NewContext(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext returns the authenticated user, or nil when the token
// subject had no account record.
func UserFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(userContextKey).(*user.User)
	return u
}
