package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"stockline-api/pkg/apierror"
)

// Recovery is a middleware that recovers from panics.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC: %v\n%s", err, debug.Stack())

				writeError(w, apierror.InternalError("internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	w.Write(err.ToJSON())
}
