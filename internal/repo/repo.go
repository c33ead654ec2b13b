package repo

import (
	"context"

	"github.com/shoecream/shoecare-api/internal/domain"
)

// MemberRepository owns member records and their coupon wallets. Create
// enforces phone uniqueness; lookups that miss return domain.ErrNotFound
// (or nil, nil where documented).
type MemberRepository interface {
	// Create persists a new member. Returns domain.ErrDuplicatePhone when
	// the phone is already taken.
	Create(ctx context.Context, m *domain.Member) (*domain.Member, error)

	FindByID(ctx context.Context, id int64) (*domain.Member, error)

	// FindByNamePhone matches name and phone exactly. Iteration order is
	// insertion order, so first match wins deterministically.
	FindByNamePhone(ctx context.Context, name, phone string) (*domain.Member, error)

	// FindByReferralCode returns nil, nil when no member holds the code.
	FindByReferralCode(ctx context.Context, code string) (*domain.Member, error)

	ReferralCodeExists(ctx context.Context, code string) (bool, error)

	// List returns all members, newest first.
	List(ctx context.Context) ([]domain.Member, error)

	// AppendCoupon attaches a coupon to the member's wallet (most recent
	// last).
	AppendCoupon(ctx context.Context, memberID int64, c domain.Coupon) error

	// RedeemCoupon flips the coupon at index to used. Returns
	// domain.ErrNotFound for an unknown member or index and
	// domain.ErrAlreadyUsed when it was redeemed before.
	RedeemCoupon(ctx context.Context, memberID int64, index int) (*domain.Coupon, error)
}

// RequestRepository is the append-only service request log.
type RequestRepository interface {
	Create(ctx context.Context, r *domain.ServiceRequest) (*domain.ServiceRequest, error)

	// List returns requests newest first, optionally filtered by type.
	List(ctx context.Context, typ *domain.RequestType) ([]domain.ServiceRequest, error)
}

// ContentRepository holds the notice and banner collections managed from
// the admin dashboard.
type ContentRepository interface {
	ListNotices(ctx context.Context) ([]domain.Notice, error)
	UpdateNotice(ctx context.Context, id int64, patch domain.NoticePatch) (*domain.Notice, error)
	ListBanners(ctx context.Context) ([]domain.Banner, error)
	UpdateBanner(ctx context.Context, id int64, patch domain.BannerPatch) (*domain.Banner, error)
}

// Store bundles the repositories behind a single backing implementation.
type Store struct {
	Members  MemberRepository
	Requests RequestRepository
	Content  ContentRepository
}
