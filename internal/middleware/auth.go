package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/w1ncs/netcontrol/internal/procedures"
	"github.com/w1ncs/netcontrol/internal/utils"
)

type contextKey string

const callerContextKey contextKey = "caller"

// GrantHeader carries an optional delegated-permission token obtained from
// net.verify_passcode
const GrantHeader = "X-Grant-Token"

// Auth verifies the bearer token and stores the caller identity in the
// request context
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := utils.ValidateToken(parts[1], jwtSecret)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			caller := procedures.Caller{GrantToken: r.Header.Get(GrantHeader)}
			caller.ProfileID, _ = claims["id"].(string)
			caller.CallSign, _ = claims["callSign"].(string)
			caller.Role, _ = claims["role"].(string)

			ctx := context.WithValue(r.Context(), callerContextKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFrom returns the authenticated caller stored by Auth
func CallerFrom(r *http.Request) procedures.Caller {
	caller, _ := r.Context().Value(callerContextKey).(procedures.Caller)
	return caller
}
