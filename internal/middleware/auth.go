package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/AnshRaj112/devconnect-backend/internal/observability"
	"github.com/AnshRaj112/devconnect-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenHeader carries the bearer token on protected requests.
const TokenHeader = "x-auth-token"

const (
	msgNoToken      = "No Token, authorization denied"
	msgInvalidToken = "Token is Not Valid"
)

type contextKey string

const identityKey contextKey = "identity"

type TokenVerifier interface {
	Verify(token string) (services.Identity, error)
}

// RevocationChecker reports whether tokens of a user must no longer be honored.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, userID primitive.ObjectID) (bool, error)
}

// Auth rejects requests without a valid token before they reach next.
// revoked may be nil.
func Auth(verifier TokenVerifier, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(TokenHeader))
			if token == "" {
				reject(w, "missing", msgNoToken)
				return
			}

			id, err := verifier.Verify(token)
			if err != nil {
				reject(w, "invalid", msgInvalidToken)
				return
			}

			if revoked != nil {
				isRevoked, err := revoked.IsRevoked(r.Context(), id.UserID)
				if err != nil {
					// Fail open when Redis is unavailable.
					slog.WarnContext(r.Context(), "⚠️ revocation check failed", "error", err)
				} else if isRevoked {
					reject(w, "revoked", msgInvalidToken)
					return
				}
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			ctx = observability.WithUserID(ctx, id.UserID.Hex())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user stored by Auth.
func UserID(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(identityKey).(services.Identity)
	if !ok {
		return primitive.NilObjectID, false
	}
	return id.UserID, true
}

// WithIdentity stores id the way Auth does. Handlers under test use it to
// skip token handling.
func WithIdentity(ctx context.Context, id services.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func reject(w http.ResponseWriter, reason, msg string) {
	observability.AuthRejections.WithLabelValues(reason).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
