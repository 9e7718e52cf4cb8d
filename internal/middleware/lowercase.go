package middleware

import (
	"net/http"
	"strings"
)

// LowercasePath converts all URL paths to lowercase so endpoints are
// reachable regardless of case. Call signs and ids appear in query or body,
// never in path segments, so this is safe.
func LowercasePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = strings.ToLower(r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
