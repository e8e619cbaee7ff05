package middleware

import (
	"net/http"
)

// SizeLimitMiddleware caps the request body at maxBytes. Handlers reading
// past the cap get a *http.MaxBytesError, which the transport layer turns
// into a 413 response.
func SizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
