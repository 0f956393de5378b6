// Package identity resolves the calling principal and role from a bearer
// token. Every other module authorizes against the Caller it produces.
package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
)

// Principal is the opaque identifier of an authenticated caller.
type Principal string

// Role is the closed set of caller roles.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a role string against the recognized set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleGuest, RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// IsAdmin reports whether the role grants administrative operations.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Caller is the resolved identity of one request.
type Caller struct {
	Principal Principal
	Role      Role
}

// Guest is the caller used for requests with no valid token.
var Guest = Caller{Role: RoleGuest}

// Authenticated reports whether the caller carries a real principal.
func (c Caller) Authenticated() bool { return c.Principal != "" && c.Role != RoleGuest }

type ctxKey struct{}

// WithCaller stores the caller in the context.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// CallerFrom returns the caller stored in the context, or Guest.
func CallerFrom(ctx context.Context) Caller {
	if c, ok := ctx.Value(ctxKey{}).(Caller); ok {
		return c
	}
	return Guest
}

// RoleResolver maps a principal to its current role. Implemented by the
// user registry.
type RoleResolver interface {
	RoleOf(ctx context.Context, p Principal) (Role, error)
}

// ParseToken verifies an HS256 token and returns the principal it names.
func ParseToken(secret []byte, tokenString string) (Principal, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", jwt.ErrSignatureInvalid
	}
	return Principal(claims.Subject), nil
}

// Middleware resolves the request's Caller and stores it in the context.
// Requests without a valid bearer token proceed as Guest; authorization is
// each operation's concern, not the transport's.
func Middleware(secret []byte, roles RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := Guest
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				if p, err := ParseToken(secret, strings.TrimPrefix(auth, "Bearer ")); err == nil {
					role, err := roles.RoleOf(r.Context(), p)
					if err != nil {
						role = RoleUser
					}
					caller = Caller{Principal: p, Role: role}
				}
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}
