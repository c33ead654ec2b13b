package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shoecream/shoecare-api/internal/domain"
	"github.com/shoecream/shoecare-api/internal/http/response"
	"github.com/shoecream/shoecare-api/pkg/auth"
)

type memberSessionRes struct {
	Member      *domain.Member `json:"member"`
	AccessToken string         `json:"access_token"`
}

// Register creates a member, issues the welcome coupon, rewards the
// referrer when the invite code resolves, and logs the new member in.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	member, err := h.identity.Register(r.Context(), &in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := auth.NewMemberToken(member.ID, member.Name, member.Phone, h.config.Auth.JWTSecret, h.config.Auth.AccessTokenTTL)
	if err != nil {
		response.InternalError(w, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, memberSessionRes{Member: member, AccessToken: token})
}

// Login authenticates by exact name+phone match.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	member, err := h.identity.Authenticate(r.Context(), &in)
	if err != nil {
		if domain.IsValidation(err) {
			writeServiceError(w, r, err)
			return
		}
		response.Unauthorized(w, "No member matches that name and phone")
		return
	}

	token, err := auth.NewMemberToken(member.ID, member.Name, member.Phone, h.config.Auth.JWTSecret, h.config.Auth.AccessTokenTTL)
	if err != nil {
		response.InternalError(w, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, memberSessionRes{Member: member, AccessToken: token})
}

// Logout ends the session. Tokens are stateless, so the server side is a
// no-op; the client discards the token.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the current member snapshot including the coupon wallet.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	member, err := h.identity.GetMember(r.Context(), claims.Sub)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// ListMyCoupons lists the caller's coupons in issue order.
func (h *Handlers) ListMyCoupons(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	coupons, err := h.coupons.List(r.Context(), claims.Sub)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coupons)
}

// RedeemMyCoupon flips one coupon to used, exactly once.
func (h *Handlers) RedeemMyCoupon(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		response.BadRequest(w, "Invalid coupon index")
		return
	}

	coupon, err := h.coupons.Redeem(r.Context(), claims.Sub, index)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coupon)
}
