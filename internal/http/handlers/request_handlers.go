package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shoecream/shoecare-api/internal/domain"
	"github.com/shoecream/shoecare-api/internal/http/response"
	"github.com/shoecream/shoecare-api/internal/session"
	"github.com/shoecream/shoecare-api/pkg/auth"
)

type memberRequestReq struct {
	Type      string `json:"type"`
	Count     int    `json:"count"`
	ExtraInfo string `json:"extra_info"`
}

type guestRequestReq struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Count     int    `json:"count"`
	ExtraInfo string `json:"extra_info"`
}

type guestFlowRes struct {
	FlowToken string `json:"flow_token"`
	ExpiresIn int64  `json:"expires_in"`
}

// EnterGuestFlow mints a short-lived token for a single guest submission.
// Minting a fresh token per flow invocation is what keeps guest state from
// leaking between actions: closing the intake modal discards the token.
// An authenticated member is refused; their own identity already covers
// the intake.
func (h *Handlers) EnterGuestFlow(w http.ResponseWriter, r *http.Request) {
	gate := session.NewGate()
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if claims, err := auth.Parse(token, h.config.Auth.JWTSecret); err == nil && claims.Role == auth.RoleMember {
			gate.Authenticate(&domain.Member{ID: claims.Sub, Name: claims.Name, Phone: claims.Phone})
		}
	}

	if err := gate.EnterGuestFlow(); err != nil {
		response.Conflict(w, "Already authenticated")
		return
	}

	token, err := auth.NewGuestFlowToken(h.config.Auth.JWTSecret, h.config.Auth.GuestFlowTTL)
	if err != nil {
		response.InternalError(w, "Failed to start guest flow")
		return
	}

	writeJSON(w, http.StatusOK, guestFlowRes{
		FlowToken: token,
		ExpiresIn: int64(h.config.Auth.GuestFlowTTL.Seconds()),
	})
}

// SubmitMemberRequest records an intake for the authenticated member.
// Identity fields come from the member record, not the request body.
func (h *Handlers) SubmitMemberRequest(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	var req memberRequestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	in := &domain.RequestInput{
		Type:      domain.RequestType(req.Type),
		Identity:  domain.Authenticated(claims.Sub),
		Count:     req.Count,
		ExtraInfo: req.ExtraInfo,
	}

	created, err := h.requests.Submit(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// SubmitGuestRequest records an intake for a guest supplying identity
// inline. The resulting request carries no member reference.
func (h *Handlers) SubmitGuestRequest(w http.ResponseWriter, r *http.Request) {
	var req guestRequestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	in := &domain.RequestInput{
		Type:      domain.RequestType(req.Type),
		Identity:  domain.Guest(req.Name, req.Phone, req.Address),
		Count:     req.Count,
		ExtraInfo: req.ExtraInfo,
	}

	created, err := h.requests.Submit(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListNotices serves the public notice list.
func (h *Handlers) ListNotices(w http.ResponseWriter, r *http.Request) {
	notices, err := h.content.ListNotices(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notices)
}

// ListBanners serves the public banner list.
func (h *Handlers) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.content.ListBanners(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, banners)
}
