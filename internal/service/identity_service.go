package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shoecream/shoecare-api/internal/coupon"
	"github.com/shoecream/shoecare-api/internal/domain"
	"github.com/shoecream/shoecare-api/internal/repo"
	"github.com/shoecream/shoecare-api/pkg/events"
	"github.com/shoecream/shoecare-api/pkg/logger"
)

// IdentityService is the identity store: registration with referral-code
// propagation, name+phone authentication, referral-code lookup.
type IdentityService interface {
	Register(ctx context.Context, in *domain.RegisterInput) (*domain.Member, error)
	Authenticate(ctx context.Context, in *domain.LoginInput) (*domain.Member, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.Member, error)
	GetMember(ctx context.Context, id int64) (*domain.Member, error)
	ListMembers(ctx context.Context) ([]domain.Member, error)
}

type identityService struct {
	members  repo.MemberRepository
	coupons  CouponService
	catalog  *coupon.Catalog
	eventBus events.Publisher
}

func NewIdentityService(
	members repo.MemberRepository,
	coupons CouponService,
	catalog *coupon.Catalog,
	eventBus events.Publisher,
) IdentityService {
	return &identityService{
		members:  members,
		coupons:  coupons,
		catalog:  catalog,
		eventBus: eventBus,
	}
}

const (
	referralCodeLen     = 6
	referralCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referralCodeRetries = 10
)

func (s *identityService) Register(ctx context.Context, in *domain.RegisterInput) (*domain.Member, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	code, err := s.generateReferralCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate referral code: %w", err)
	}

	now := time.Now()
	welcome, ok := s.catalog.Get(coupon.TemplateWelcome)
	if !ok {
		return nil, fmt.Errorf("coupon catalog is missing the welcome template")
	}

	member := &domain.Member{
		Name:         in.Name,
		Phone:        in.Phone,
		Address:      in.Address,
		JoinedAt:     now,
		ReferralCode: code,
		// Recorded verbatim whether or not the code resolves to a member.
		InvitedBy: in.InviteCode,
		Coupons:   []domain.Coupon{welcome.Stamp(now)},
	}

	created, err := s.members.Create(ctx, member)
	if err != nil {
		return nil, err
	}

	event := events.MemberRegisteredEvent{
		MemberID:     created.ID,
		Name:         created.Name,
		Phone:        created.Phone,
		ReferralCode: created.ReferralCode,
		InvitedBy:    created.InvitedBy,
		JoinedAt:     created.JoinedAt,
	}
	if err := s.eventBus.Publish(ctx, events.MemberRegistered, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish member registered event", "error", err, "member_id", created.ID)
	}

	if in.InviteCode != "" {
		s.rewardReferrer(ctx, created, in.InviteCode)
	}

	return created, nil
}

// rewardReferrer resolves the invite code against existing referral codes
// and grants the referrer a thank-you coupon. A code that resolves to
// nobody is not an error: the signup already succeeded and invitedBy keeps
// the raw value.
func (s *identityService) rewardReferrer(ctx context.Context, newMember *domain.Member, inviteCode string) {
	referrer, err := s.members.FindByReferralCode(ctx, inviteCode)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to resolve invite code", "error", err, "invite_code", inviteCode)
		return
	}
	if referrer == nil {
		logger.InfoContext(ctx, "Invite code does not match any member", "invite_code", inviteCode)
		return
	}

	if _, err := s.coupons.Issue(ctx, referrer.ID, coupon.TemplateReferral); err != nil {
		logger.ErrorContext(ctx, "Failed to issue referral coupon", "error", err, "referrer_id", referrer.ID)
		return
	}

	event := events.ReferralRewardedEvent{
		ReferrerID:   referrer.ID,
		NewMemberID:  newMember.ID,
		ReferralCode: inviteCode,
		RewardedAt:   time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.ReferralRewarded, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish referral rewarded event", "error", err, "referrer_id", referrer.ID)
	}
}

func (s *identityService) Authenticate(ctx context.Context, in *domain.LoginInput) (*domain.Member, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.members.FindByNamePhone(ctx, in.Name, in.Phone)
}

func (s *identityService) FindByReferralCode(ctx context.Context, code string) (*domain.Member, error) {
	return s.members.FindByReferralCode(ctx, code)
}

func (s *identityService) GetMember(ctx context.Context, id int64) (*domain.Member, error) {
	return s.members.FindByID(ctx, id)
}

func (s *identityService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	return s.members.List(ctx)
}

// generateReferralCode draws 6 characters from A-Z0-9 and retries on the
// rare collision with an existing member's code.
func (s *identityService) generateReferralCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < referralCodeRetries; attempt++ {
		code, err := randomCode(referralCodeLen)
		if err != nil {
			return "", err
		}
		exists, err := s.members.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("exhausted %d attempts", referralCodeRetries)
}

func randomCode(length int) (string, error) {
	max := big.NewInt(int64(len(referralCodeCharset)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = referralCodeCharset[n.Int64()]
	}
	return string(buf), nil
}
