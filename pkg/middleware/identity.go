package middleware

import (
	"context"
	"net/http"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
)

// The upstream gateway authenticates requests and forwards the resolved
// identity in these headers. This service trusts them as-is.
const (
	HeaderUserId   = "X-User-Id"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the caller resolved from the gateway headers.
type Identity struct {
	UserID string
	Name   string
	Role   models.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// WithIdentity attaches the gateway identity to the request context when the
// headers are present. Anonymous requests pass through untouched.
func WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserId)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		role := models.Role(r.Header.Get(HeaderUserRole))
		if role != models.RoleAdmin {
			role = models.RoleMember
		}

		name := r.Header.Get(HeaderUserName)
		if name == "" {
			name = userID
		}

		ctx := ContextWithIdentity(r.Context(), Identity{UserID: userID, Name: name, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ContextWithIdentity returns a context carrying the given identity.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// RequireIdentity rejects anonymous requests.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose caller is not an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		if !identity.IsAdmin() {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext returns the caller identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
