package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shoecream/shoecare-api/internal/coupon"
	"github.com/shoecream/shoecare-api/internal/domain"
	"github.com/shoecream/shoecare-api/internal/repo"
	"github.com/shoecream/shoecare-api/pkg/events"
	"github.com/shoecream/shoecare-api/pkg/logger"
)

// CouponService is the coupon ledger: it attaches catalog coupons to
// members and tracks used state.
type CouponService interface {
	Issue(ctx context.Context, memberID int64, templateID string) (*domain.Coupon, error)
	Redeem(ctx context.Context, memberID int64, index int) (*domain.Coupon, error)
	List(ctx context.Context, memberID int64) ([]domain.Coupon, error)
	Catalog() []coupon.Template
}

type couponService struct {
	members  repo.MemberRepository
	catalog  *coupon.Catalog
	eventBus events.Publisher
}

func NewCouponService(members repo.MemberRepository, catalog *coupon.Catalog, eventBus events.Publisher) CouponService {
	return &couponService{
		members:  members,
		catalog:  catalog,
		eventBus: eventBus,
	}
}

func (s *couponService) Issue(ctx context.Context, memberID int64, templateID string) (*domain.Coupon, error) {
	tmpl, ok := s.catalog.Get(templateID)
	if !ok {
		return nil, domain.NewValidationError("template_id", "unknown coupon template")
	}

	c := tmpl.Stamp(time.Now())
	if err := s.members.AppendCoupon(ctx, memberID, c); err != nil {
		return nil, fmt.Errorf("failed to issue coupon: %w", err)
	}

	event := events.CouponIssuedEvent{
		MemberID:   memberID,
		TemplateID: tmpl.ID,
		Name:       c.Name,
		Amount:     c.Amount,
		IssuedAt:   c.IssuedAt,
	}
	if err := s.eventBus.Publish(ctx, events.CouponIssued, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish coupon issued event", "error", err, "member_id", memberID)
	}

	return &c, nil
}

func (s *couponService) Redeem(ctx context.Context, memberID int64, index int) (*domain.Coupon, error) {
	c, err := s.members.RedeemCoupon(ctx, memberID, index)
	if err != nil {
		return nil, err
	}

	event := events.CouponRedeemedEvent{
		MemberID:   memberID,
		Index:      index,
		Name:       c.Name,
		Amount:     c.Amount,
		RedeemedAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.CouponRedeemed, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish coupon redeemed event", "error", err, "member_id", memberID)
	}

	return c, nil
}

func (s *couponService) List(ctx context.Context, memberID int64) ([]domain.Coupon, error) {
	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return m.Coupons, nil
}

func (s *couponService) Catalog() []coupon.Template {
	return s.catalog.List()
}
