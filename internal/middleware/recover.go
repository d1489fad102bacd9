package middleware

import (
	"net/http"
	"runtime/debug"
)

// Recover converts handler panics into 500 responses instead of tearing
// down the connection. The stack is logged through the request logger.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger := GetLogger(r.Context())
				logger.Error("handler panic",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
