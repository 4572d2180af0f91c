package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/kishandholakiya1027/invoice-be/security"
	"github.com/kishandholakiya1027/invoice-be/utils"
)

type AuthMiddleware struct {
	jwtManager  *security.JWTManager
	rateLimiter *security.RateLimiter
}

func CreateAuthMiddleware(jwtManager *security.JWTManager, rateLimiter *security.RateLimiter) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:  jwtManager,
		rateLimiter: rateLimiter,
	}
}

// JWTMiddleware guards protected routes. On success the decoded identity is
// placed on the request context for the services to scope queries with.
func (am *AuthMiddleware) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Authorization header required")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, "Invalid authorization format")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := am.jwtManager.ValidateToken(token)
		if err != nil {
			writeAuthError(w, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, claims.Subject)
		ctx = context.WithValue(ctx, utils.UsernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (am *AuthMiddleware) RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := utils.GetUserID(r.Context())
		if key == "" {
			key = clientIP(r)
		}
		if !am.rateLimiter.Allow(key) {
			writeJSONError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeAuthError(w http.ResponseWriter, message string) {
	writeJSONError(w, http.StatusUnauthorized, message)
}
