package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shoecream/shoecare-api/internal/domain"
	"github.com/shoecream/shoecare-api/internal/http/response"
	"github.com/shoecream/shoecare-api/internal/service"
	"github.com/shoecream/shoecare-api/pkg/auth"
	"github.com/shoecream/shoecare-api/pkg/config"
	"github.com/shoecream/shoecare-api/pkg/logger"
)

type contextKey string

const claimsKey contextKey = "claims"

type Handlers struct {
	identity  service.IdentityService
	coupons   service.CouponService
	requests  service.RequestService
	content   service.ContentService
	config    *config.Config
	adminHash string
}

func New(
	identity service.IdentityService,
	coupons service.CouponService,
	requests service.RequestService,
	content service.ContentService,
	cfg *config.Config,
	adminHash string,
) *Handlers {
	return &Handlers{
		identity:  identity,
		coupons:   coupons,
		requests:  requests,
		content:   content,
		config:    cfg,
		adminHash: adminHash,
	}
}

// RequireRole parses the bearer token and rejects requests whose session
// role does not match. Admin passes member-gated routes too.
func (h *Handlers) RequireRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.Unauthorized(w, "Missing or invalid authorization header")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			if claims.Role != requiredRole && claims.Role != auth.RoleAdmin {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), logger.MemberIDKey, claims.Sub)
			ctx = context.WithValue(ctx, claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper to get session claims from context
func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeServiceError translates the core error taxonomy into the JSON
// envelope. Everything in the taxonomy is recoverable user input.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		response.WriteValidationError(w, ve.Error(), ve.Field)
	case errors.Is(err, domain.ErrDuplicatePhone):
		response.Conflict(w, "This phone number is already registered")
	case errors.Is(err, domain.ErrAlreadyUsed):
		response.CouponUsed(w, "This coupon has already been used")
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "Not found")
	default:
		logger.ErrorContext(r.Context(), "Unhandled service error", "error", err)
		response.InternalError(w, "Internal error")
	}
}
