// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/foodgram/backend/internal/infrastructure/security"
	"github.com/foodgram/backend/pkg/errors"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	usernameKey contextKey = "username"
)

// ContextWithUser returns a context carrying the given user identity, as
// the authentication middleware would set it.
func ContextWithUser(ctx context.Context, userID uuid.UUID, username string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, usernameKey, username)
}

// UserID extracts the authenticated user's id from the request context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// Username extracts the authenticated user's username from the request
// context.
func Username(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey).(string)
	return name, ok
}

// Logger logs each request with zap after it completes.
func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}

// SecurityHeaders sets conservative security response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// Authenticate verifies the bearer token and stores the user identity in
// the request context. Requests without a valid access token are
// rejected.
func Authenticate(tokens *security.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, appErr := claimsFromRequest(r, tokens)
			if appErr != nil {
				writeError(w, r, appErr)
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), claims)))
		})
	}
}

// MaybeAuthenticate stores the user identity when a valid token is
// present but lets anonymous requests through. Listing endpoints use it
// so the favorited / in-cart filters can see who is asking.
func MaybeAuthenticate(tokens *security.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, appErr := claimsFromRequest(r, tokens); appErr == nil {
				r = r.WithContext(withUser(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit applies a token-bucket limit per client IP. Stale buckets are
// dropped once they have been idle for a few minutes.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	type bucket struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		b, ok := buckets[ip]
		if !ok {
			b = &bucket{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
			buckets[ip] = b
		}
		b.lastSeen = time.Now()

		if len(buckets) > 10000 {
			cutoff := time.Now().Add(-5 * time.Minute)
			for key, stale := range buckets {
				if stale.lastSeen.Before(cutoff) {
					delete(buckets, key)
				}
			}
		}
		return b.limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiterFor(ip).Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, r, errors.NewAppError(
					errors.CodeRateLimited, "Too many requests", "",
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func claimsFromRequest(r *http.Request, tokens *security.TokenService) (*security.Claims, *errors.AppError) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errors.NewUnauthorizedError("")
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, errors.NewUnauthorizedError("Authorization header must use the Bearer scheme")
	}
	claims, err := tokens.ValidateToken(raw, security.TokenKindAccess)
	if err != nil {
		return nil, errors.NewUnauthorizedError("Invalid or expired token")
	}
	return claims, nil
}

func withUser(ctx context.Context, claims *security.Claims) context.Context {
	return ContextWithUser(ctx, claims.UserID, claims.Username)
}
