// Package auth provides the bearer-token middleware that resolves the acting
// Principal for a request. Token issuance lives elsewhere; this package only
// validates and extracts claims.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	wsmodels "workscope/internal/workspace/models"
	id "workscope/pkg/domain"
	"workscope/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims are the fields the middleware expects from a validated token.
type Claims struct {
	UserID      string
	Role        string
	WorkspaceID string
}

type contextKeyPrincipal struct{}

// ContextKeyPrincipal is exported for handlers and tests.
var ContextKeyPrincipal = contextKeyPrincipal{}

// GetPrincipal retrieves the authenticated principal from the context.
func GetPrincipal(ctx context.Context) (*wsmodels.Principal, bool) {
	p, ok := ctx.Value(ContextKeyPrincipal).(*wsmodels.Principal)
	return p, ok
}

// WithPrincipal injects a principal into the context. Useful for handler
// tests that skip the middleware chain.
func WithPrincipal(ctx context.Context, p *wsmodels.Principal) context.Context {
	return context.WithValue(ctx, ContextKeyPrincipal, p)
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequirePrincipal validates the Authorization header and resolves the
// Principal for downstream handlers. Requests without a valid bearer token
// are rejected before any aggregation work happens.
func RequirePrincipal(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				writeJSONError(w, http.StatusUnauthorized, "invalid_token", "missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(strings.TrimPrefix(authHeader, bearerPrefix))
			if err != nil {
				if logger != nil {
					logger.DebugContext(r.Context(), "token validation failed", "error", err)
				}
				writeJSONError(w, http.StatusUnauthorized, "invalid_token", "token validation failed")
				return
			}

			principal, err := principalFromClaims(claims)
			if err != nil {
				if logger != nil {
					logger.DebugContext(r.Context(), "token claims rejected", "error", err)
				}
				writeJSONError(w, http.StatusUnauthorized, "invalid_token", "token claims rejected")
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			ctx = requestcontext.WithUserID(ctx, principal.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func principalFromClaims(claims *Claims) (*wsmodels.Principal, error) {
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, err
	}
	workspaceID, err := id.ParseWorkspaceID(claims.WorkspaceID)
	if err != nil {
		return nil, err
	}
	role, err := wsmodels.ParseRole(claims.Role)
	if err != nil {
		return nil, err
	}
	return &wsmodels.Principal{
		UserID:      userID,
		Role:        role,
		WorkspaceID: workspaceID,
	}, nil
}
