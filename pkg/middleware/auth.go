package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/TubaAnsari/vendor-management-portal/pkg/httputil"
	"github.com/TubaAnsari/vendor-management-portal/pkg/logger"
)

type contextKeyType string

const claimsKey contextKeyType = "claims"

// Claims identifies the authenticated vendor.
type Claims struct {
	VendorID int64  `json:"vendor_id"`
	Email    string `json:"email"`
}

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator func(token string) (*Claims, error)

// Auth validates bearer tokens and stores the vendor claims in the request context.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing or malformed authorization header")
				return
			}

			claims, err := validate(token)
			if err != nil {
				writeAuthError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = logger.WithVendorID(ctx, claims.VendorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaticToken guards a route group with a fixed shared bearer token. An empty
// token disables the check.
func StaticToken(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if expected == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				writeAuthError(w, r, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the claims stored by Auth, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok && c != nil
}

// VendorIDFromContext returns the authenticated vendor id, or 0.
func VendorIDFromContext(ctx context.Context) int64 {
	if c, ok := ClaimsFromContext(ctx); ok {
		return c.VendorID
	}
	return 0
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func writeAuthError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	httputil.WriteJSON(w, status, httputil.Response{
		Error: &httputil.ErrorResponse{
			Code:      code,
			Message:   message,
			RequestID: logger.CorrelationIDFromContext(r.Context()),
		},
	})
}
