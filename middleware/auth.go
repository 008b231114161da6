// --- middleware/auth.go ---
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

// ContextKey is a custom type to avoid context key collisions.
type ContextKey string

// UserKey is the key under which the verified username is stored in the
// request context.
const UserKey ContextKey = "user"

// Verifier validates a token string and yields the embedded username.
type Verifier interface {
	Verify(token string) (string, error)
}

// Auth checks for a valid bearer token in the request header and adds the
// verified username to the request context. A missing token is a 401, a bad
// or expired one a 403, both with the API's JSON error body.
func Auth(verifier Verifier, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("request without token", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "Acceso denegado")
				return
			}

			// The header is "Bearer <token>".
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "Acceso denegado")
				return
			}

			username, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "err", err)
				writeError(w, http.StatusForbidden, "Token inválido o expirado")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
