package memory

import (
	"context"
	"sync"

	"github.com/shoecream/shoecare-api/internal/domain"
)

// MemberRepo keeps members in insertion order in process memory. The
// surrounding UI serializes user actions, but the HTTP server itself is
// concurrent, so access is still guarded by a RWMutex.
type MemberRepo struct {
	mu      sync.RWMutex
	nextID  int64
	members []*domain.Member
	byID    map[int64]*domain.Member
}

func NewMemberRepo() *MemberRepo {
	return &MemberRepo{
		nextID: 1,
		byID:   make(map[int64]*domain.Member),
	}
}

func (r *MemberRepo) Create(_ context.Context, m *domain.Member) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.members {
		if existing.Phone == m.Phone {
			return nil, domain.ErrDuplicatePhone
		}
	}

	stored := cloneMember(m)
	stored.ID = r.nextID
	r.nextID++

	r.members = append(r.members, stored)
	r.byID[stored.ID] = stored

	return cloneMember(stored), nil
}

func (r *MemberRepo) FindByID(_ context.Context, id int64) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneMember(m), nil
}

func (r *MemberRepo) FindByNamePhone(_ context.Context, name, phone string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members {
		if m.Name == name && m.Phone == phone {
			return cloneMember(m), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemberRepo) FindByReferralCode(_ context.Context, code string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members {
		if m.ReferralCode == code {
			return cloneMember(m), nil
		}
	}
	return nil, nil
}

func (r *MemberRepo) ReferralCodeExists(_ context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members {
		if m.ReferralCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemberRepo) List(_ context.Context) ([]domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Member, 0, len(r.members))
	for i := len(r.members) - 1; i >= 0; i-- {
		out = append(out, *cloneMember(r.members[i]))
	}
	return out, nil
}

func (r *MemberRepo) AppendCoupon(_ context.Context, memberID int64, c domain.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[memberID]
	if !ok {
		return domain.ErrNotFound
	}
	m.Coupons = append(m.Coupons, c)
	return nil
}

func (r *MemberRepo) RedeemCoupon(_ context.Context, memberID int64, index int) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[memberID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if index < 0 || index >= len(m.Coupons) {
		return nil, domain.ErrNotFound
	}
	if m.Coupons[index].Used {
		return nil, domain.ErrAlreadyUsed
	}
	m.Coupons[index].Used = true

	c := m.Coupons[index]
	return &c, nil
}

// cloneMember copies the member including its coupon slice so callers can
// never mutate the stored record through a returned pointer.
func cloneMember(m *domain.Member) *domain.Member {
	out := *m
	out.Coupons = make([]domain.Coupon, len(m.Coupons))
	copy(out.Coupons, m.Coupons)
	return &out
}
