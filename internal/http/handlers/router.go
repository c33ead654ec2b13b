package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shoecream/shoecare-api/pkg/auth"
)

// Router builds the API surface. The optional registerLimiter throttles
// signup and admin login when Redis is configured.
func (h *Handlers) Router(registerLimiter func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	limited := func(r chi.Router) chi.Router {
		if registerLimiter != nil {
			return r.With(registerLimiter)
		}
		return r
	}

	r.Route("/v1", func(r chi.Router) {
		// Public
		limited(r).Post("/members", h.Register)
		r.Post("/session", h.Login)
		r.Delete("/session", h.Logout)
		r.Post("/guest/flow", h.EnterGuestFlow)
		r.Get("/notices", h.ListNotices)
		r.Get("/banners", h.ListBanners)

		// Guest flow (guest token required)
		r.Group(func(r chi.Router) {
			r.Use(h.RequireRole(auth.RoleGuest))
			r.Post("/guest/requests", h.SubmitGuestRequest)
		})

		// Member (member token required)
		r.Route("/member", func(r chi.Router) {
			r.Use(h.RequireRole(auth.RoleMember))
			r.Get("/me", h.Me)
			r.Get("/coupons", h.ListMyCoupons)
			r.Post("/coupons/{index}/redeem", h.RedeemMyCoupon)
			r.Post("/requests", h.SubmitMemberRequest)
		})

		// Admin
		r.Route("/admin", func(r chi.Router) {
			limited(r).Post("/login", h.AdminLogin)

			r.Group(func(r chi.Router) {
				r.Use(h.RequireRole(auth.RoleAdmin))
				r.Get("/members", h.ListMembers)
				r.Get("/requests", h.ListRequests)
				r.Get("/coupons/catalog", h.ListCouponCatalog)
				r.Post("/members/{id}/coupons", h.IssueCoupon)
				r.Patch("/notices/{id}", h.UpdateNotice)
				r.Patch("/banners/{id}", h.UpdateBanner)
			})
		})
	})

	return r
}
