package auth

import (
	"crypto/md5"
	"encoding/hex"
	"testing"
	"time"

	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "s3cret-password"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, IsLegacyHash(hash))
}

func TestLegacyHashVerification(t *testing.T) {
	sum := md5.Sum([]byte("oldpassword"))
	legacy := hex.EncodeToString(sum[:])

	assert.True(t, IsLegacyHash(legacy))
	assert.True(t, VerifyPassword(legacy, "oldpassword"))
	assert.False(t, VerifyPassword(legacy, "newpassword"))
}

func TestTokenIssueAndParse(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret-at-least-32-characters!", time.Hour)
	require.NoError(t, err)

	user := &domain.User{ID: 7, Username: "guest", Role: domain.RoleLandlord}
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "guest", claims.Username)
	assert.Equal(t, domain.RoleLandlord, claims.Role)
}

func TestTokenRejectsBadInput(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret-at-least-32-characters!", time.Hour)
	require.NoError(t, err)

	_, err = issuer.Parse("not-a-token")
	assert.Error(t, err)

	other, err := NewTokenIssuer("a-different-secret-entirely-here!!", time.Hour)
	require.NoError(t, err)
	token, err := other.Issue(&domain.User{ID: 1, Username: "u", Role: domain.RoleUser})
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.Error(t, err, "token signed with another secret must not validate")

	expired, err := NewTokenIssuer("test-secret-at-least-32-characters!", -time.Minute)
	require.NoError(t, err)
	token, err = expired.Issue(&domain.User{ID: 1, Username: "u", Role: domain.RoleUser})
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.Error(t, err, "expired token must not validate")

	_, err = NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
}
