package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestMemberTokenRoundTrip(t *testing.T) {
	token, err := NewMemberToken(42, "김철수", "010-1111-2222", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.Sub)
	assert.Equal(t, "김철수", claims.Name)
	assert.Equal(t, "010-1111-2222", claims.Phone)
	assert.Equal(t, RoleMember, claims.Role)
}

func TestGuestAndAdminTokensCarryNoIdentity(t *testing.T) {
	for _, tc := range []struct {
		role string
		mint func() (string, error)
	}{
		{RoleGuest, func() (string, error) { return NewGuestFlowToken(testSecret, time.Minute) }},
		{RoleAdmin, func() (string, error) { return NewAdminToken(testSecret, time.Minute) }},
	} {
		token, err := tc.mint()
		require.NoError(t, err)

		claims, err := Parse(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, tc.role, claims.Role)
		assert.Zero(t, claims.Sub)
		assert.Empty(t, claims.Name)
	}
}

func TestParse_RejectsBadTokens(t *testing.T) {
	token, err := NewMemberToken(1, "김철수", "010-1111-2222", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "other-secret")
	assert.Error(t, err)

	_, err = Parse("not-a-jwt", testSecret)
	assert.Error(t, err)

	expired, err := NewMemberToken(1, "김철수", "010-1111-2222", testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = Parse(expired, testSecret)
	assert.Error(t, err)
}
