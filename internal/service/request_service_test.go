package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoecream/shoecare-api/internal/domain"
	"github.com/shoecream/shoecare-api/internal/repo/memory"
	"github.com/shoecream/shoecare-api/pkg/events"
)

func newRequestFixture(t *testing.T) (RequestService, IdentityService) {
	t.Helper()

	identity, _, members := newIdentityFixture(t)
	requests := NewRequestService(memory.NewRequestRepo(), members, events.NewLogEventBus())
	return requests, identity
}

func TestSubmit_GuestPickup(t *testing.T) {
	requests, _ := newRequestFixture(t)

	created, err := requests.Submit(context.Background(), &domain.RequestInput{
		Type:      domain.RequestPickup,
		Identity:  domain.Guest("김철수", "010-1111-2222", "서울 강남구"),
		Count:     2,
		ExtraInfo: "공동현관 1234#",
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Nil(t, created.MemberID)
	assert.Equal(t, "김철수", created.Name)
	assert.Equal(t, "010-1111-2222", created.Phone)
	assert.Equal(t, 2, created.Count)
	assert.Equal(t, "공동현관 1234#", created.ExtraInfo)
	assert.False(t, created.Date.IsZero())
}

func TestSubmit_PickupRequiresExtraInfo(t *testing.T) {
	requests, _ := newRequestFixture(t)

	_, err := requests.Submit(context.Background(), &domain.RequestInput{
		Type:     domain.RequestPickup,
		Identity: domain.Guest("김철수", "010-1111-2222", "서울 강남구"),
		Count:    1,
	})
	assert.True(t, domain.IsValidation(err))
}

func TestSubmit_DeliveryExtraInfoOptional(t *testing.T) {
	requests, _ := newRequestFixture(t)

	created, err := requests.Submit(context.Background(), &domain.RequestInput{
		Type:     domain.RequestDelivery,
		Identity: domain.Guest("김철수", "010-1111-2222", "서울 강남구"),
		Count:    1,
	})
	require.NoError(t, err)
	assert.Empty(t, created.ExtraInfo)
}

func TestSubmit_RejectsInvalidInput(t *testing.T) {
	requests, _ := newRequestFixture(t)

	tests := []struct {
		name  string
		input domain.RequestInput
	}{
		{"unknown type", domain.RequestInput{
			Type:     "dryclean",
			Identity: domain.Guest("김철수", "010-1111-2222", "서울"),
			Count:    1,
		}},
		{"zero count", domain.RequestInput{
			Type:     domain.RequestDelivery,
			Identity: domain.Guest("김철수", "010-1111-2222", "서울"),
			Count:    0,
		}},
		{"guest missing name", domain.RequestInput{
			Type:     domain.RequestDelivery,
			Identity: domain.Guest("", "010-1111-2222", "서울"),
			Count:    1,
		}},
		{"guest bad phone", domain.RequestInput{
			Type:     domain.RequestDelivery,
			Identity: domain.Guest("김철수", "not-a-phone", "서울"),
			Count:    1,
		}},
		{"guest missing address", domain.RequestInput{
			Type:     domain.RequestDelivery,
			Identity: domain.Guest("김철수", "010-1111-2222", ""),
			Count:    1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := requests.Submit(context.Background(), &tt.input)
			assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestSubmit_MemberIdentitySnapshot(t *testing.T) {
	requests, identity := newRequestFixture(t)
	m := register(t, identity, "박영희", "010-3333-4444", "부산 해운대구", "")

	created, err := requests.Submit(context.Background(), &domain.RequestInput{
		Type:     domain.RequestDelivery,
		Identity: domain.Authenticated(m.ID),
		Count:    3,
	})
	require.NoError(t, err)

	require.NotNil(t, created.MemberID)
	assert.Equal(t, m.ID, *created.MemberID)
	// Identity comes from the member record, not the caller.
	assert.Equal(t, "박영희", created.Name)
	assert.Equal(t, "010-3333-4444", created.Phone)
	assert.Equal(t, "부산 해운대구", created.Address)
}

func TestSubmit_UnknownMember(t *testing.T) {
	requests, _ := newRequestFixture(t)

	_, err := requests.Submit(context.Background(), &domain.RequestInput{
		Type:     domain.RequestDelivery,
		Identity: domain.Authenticated(999),
		Count:    1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_NewestFirstAndTypeFilter(t *testing.T) {
	requests, _ := newRequestFixture(t)

	submit := func(typ domain.RequestType, extra string) *domain.ServiceRequest {
		created, err := requests.Submit(context.Background(), &domain.RequestInput{
			Type:      typ,
			Identity:  domain.Guest("김철수", "010-1111-2222", "서울"),
			Count:     1,
			ExtraInfo: extra,
		})
		require.NoError(t, err)
		return created
	}

	first := submit(domain.RequestPickup, "공동현관 1234#")
	second := submit(domain.RequestDelivery, "")
	third := submit(domain.RequestPickup, "없음")

	all, err := requests.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, first.ID, all[2].ID)

	pickup := domain.RequestPickup
	pickups, err := requests.List(context.Background(), &pickup)
	require.NoError(t, err)
	require.Len(t, pickups, 2)
	assert.Equal(t, third.ID, pickups[0].ID)
	assert.Equal(t, first.ID, pickups[1].ID)
}
