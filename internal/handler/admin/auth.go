// Package admin exposes the catalog management and purchase reporting API.
// All routes require the operator bearer token.
package admin

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/handler"
)

// RequireToken returns middleware that rejects requests without the operator
// bearer token. Comparison is constant-time.
func RequireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				handler.ErrorResponse(w, r, domain.Unauthorized("admin.auth", "admin API is disabled"))
				return
			}

			auth := r.Header.Get("Authorization")
			presented, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				handler.ErrorResponse(w, r, domain.Unauthorized("admin.auth", "missing bearer token"))
				return
			}

			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				handler.ErrorResponse(w, r, domain.Unauthorized("admin.auth", "invalid token"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
