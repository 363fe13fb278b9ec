package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/blogi/blogi-api/internal/logger"
	"github.com/blogi/blogi-api/internal/models"
)

// TokenResolver defines the minimal interface needed by the middleware.
type TokenResolver interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	Resolve(ctx context.Context, tokenString string) (*models.Identity, error)
}

// identityKey is an unexported context key type for the caller identity.
type identityKey struct{}

// SetIdentityToContext stores the resolved identity in the context.
func SetIdentityToContext(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext retrieves the authenticated identity from the
// context. Returns nil if the request did not pass the auth middleware.
func GetIdentityFromContext(ctx context.Context) *models.Identity {
	identity, _ := ctx.Value(identityKey{}).(*models.Identity)
	return identity
}

// AuthMiddleware returns a middleware that resolves the bearer token to an
// identity and stores it in the request context. Missing, malformed,
// expired, or tampered tokens yield 401 with a WWW-Authenticate header.
func AuthMiddleware(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := resolver.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeUnauthorized(w)
				return
			}

			identity, err := resolver.Resolve(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetIdentityToContext(ctx, identity)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		ErrorType:  "unauthorized",
		Message:    "Authentication required",
	})
}
