package api

import (
	"errors"
	"net/http"

	"github.com/davranaff/locusd/pkg/auth"
	"github.com/davranaff/locusd/pkg/httputil"
	"github.com/davranaff/locusd/pkg/observability"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	service *auth.Service
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(service *auth.Service, logger *observability.Logger, metrics *observability.Metrics) *AuthHandlers {
	return &AuthHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// LoginRequest is the request body for POST /api/v1/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login handles POST /api/v1/auth/login
func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	result, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.countLogin("failure")
			httputil.WriteUnauthorized(w, "invalid credentials")
			return
		}
		h.logger.WithError(err).Error("login failed")
		h.countLogin("error")
		httputil.WriteInternalError(w)
		return
	}

	h.countLogin("success")
	h.logger.WithFields(map[string]interface{}{
		"username": result.User.Username,
		"role":     string(result.User.Role),
	}).Info("user logged in")

	httputil.WriteSuccess(w, result)
}

func (h *AuthHandlers) countLogin(status string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(status).Inc()
	}
}
