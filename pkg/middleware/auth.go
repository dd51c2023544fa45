package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/davranaff/locusd/pkg/auth"
	"github.com/davranaff/locusd/pkg/contextkeys"
	"github.com/davranaff/locusd/pkg/httputil"
	"github.com/davranaff/locusd/pkg/observability"
)

// AuthMiddleware authenticates requests with a bearer token and places
// the resolved claims on the request context
type AuthMiddleware struct {
	service *auth.Service
	metrics *observability.Metrics
}

// NewAuthMiddleware creates a new authentication middleware. metrics may
// be nil.
func NewAuthMiddleware(service *auth.Service, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{
		service: service,
		metrics: metrics,
	}
}

// Handler wraps an HTTP handler with authentication
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Format: "Bearer <token>"
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.reject(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.reject(w, "invalid authorization header format")
			return
		}

		claims, err := m.service.ResolveToken(parts[1])
		if err != nil {
			m.reject(w, "invalid or expired token")
			return
		}

		if m.metrics != nil {
			m.metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()
		}

		ctx := contextkeys.WithPrincipal(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, message string) {
	if m.metrics != nil {
		m.metrics.TokenVerificationsTotal.WithLabelValues("failure").Inc()
	}
	httputil.WriteUnauthorized(w, message)
}

// GetPrincipal extracts the authenticated claims from a context, or nil
// when the request was not authenticated
func GetPrincipal(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(contextkeys.PrincipalKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
