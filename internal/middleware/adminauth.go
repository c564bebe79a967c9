package middleware

import (
	"crypto/subtle"
	"net/http"

	"stockline-api/pkg/apierror"
)

// AdminPasswordHeader carries the shared admin secret on gated requests.
const AdminPasswordHeader = "X-Admin-Password"

// NewAdminAuth creates a middleware gating routes behind a shared secret.
// The secret is configured once at startup and compared on each request;
// a missing or wrong header is rejected before the handler runs.
func NewAdminAuth(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(AdminPasswordHeader)
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
				writeError(w, apierror.Unauthorized("Unauthorized: Invalid admin password"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
