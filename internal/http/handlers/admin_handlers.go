package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"

	"github.com/shoecream/shoecare-api/internal/domain"
	"github.com/shoecream/shoecare-api/internal/http/response"
	"github.com/shoecream/shoecare-api/pkg/auth"
)

type adminLoginReq struct {
	Password string `json:"password"`
}

type adminLoginRes struct {
	AccessToken string `json:"access_token"`
}

// AdminLogin checks the shared back-office credential. A stand-in gate for
// the shop owner, not a security boundary.
func (h *Handlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	match, err := argon2id.ComparePasswordAndHash(req.Password, h.adminHash)
	if err != nil || !match {
		response.Unauthorized(w, "Wrong password")
		return
	}

	token, err := auth.NewAdminToken(h.config.Auth.JWTSecret, h.config.Auth.AdminTokenTTL)
	if err != nil {
		response.InternalError(w, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, adminLoginRes{AccessToken: token})
}

// ListMembers returns all members, newest first.
func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.identity.ListMembers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// ListRequests returns the request log, newest first, optionally filtered
// by ?type=pickup|delivery.
func (h *Handlers) ListRequests(w http.ResponseWriter, r *http.Request) {
	var typPtr *domain.RequestType
	if raw := r.URL.Query().Get("type"); raw != "" {
		typ, ok := domain.ParseRequestType(raw)
		if !ok {
			response.BadRequest(w, "Invalid type parameter")
			return
		}
		typPtr = &typ
	}

	requests, err := h.requests.List(r.Context(), typPtr)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

type issueCouponReq struct {
	TemplateID string `json:"template_id"`
}

// IssueCoupon grants a catalog coupon to a member from the dashboard.
func (h *Handlers) IssueCoupon(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid member id")
		return
	}

	var req issueCouponReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	coupon, err := h.coupons.Issue(r.Context(), memberID, req.TemplateID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, coupon)
}

// ListCouponCatalog exposes the template catalog to the dashboard.
func (h *Handlers) ListCouponCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coupons.Catalog())
}

// UpdateNotice replaces fields on the matching notice.
func (h *Handlers) UpdateNotice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid notice id")
		return
	}

	var patch domain.NoticePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	notice, err := h.content.UpdateNotice(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notice)
}

// UpdateBanner replaces fields on the matching banner.
func (h *Handlers) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid banner id")
		return
	}

	var patch domain.BannerPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	banner, err := h.content.UpdateBanner(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, banner)
}
