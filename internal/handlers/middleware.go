package handlers

import (
	"context"
	"net"
	"net/http"

	"wordscramble/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const PlayerContextKey ContextKey = "player"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	secret  []byte
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(secret []byte, limiter *security.RateLimiter) *Middleware {
	return &Middleware{secret: secret, limiter: limiter}
}

// RequirePlayer verifies the signed player cookie and puts the session
// token on the request context.
func (m *Middleware) RequirePlayer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(PlayerCookieName)
		if err != nil {
			http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
			return
		}

		token, err := security.ParsePlayerToken(m.secret, cookie.Value)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, PlayerCookieName))
			http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), PlayerContextKey, token)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit throttles requests per client IP.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(clientIP(r)) {
			http.Error(w, ErrTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// GetPlayerToken returns the session token placed by RequirePlayer, or "".
func GetPlayerToken(ctx context.Context) string {
	token, _ := ctx.Value(PlayerContextKey).(string)
	return token
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
