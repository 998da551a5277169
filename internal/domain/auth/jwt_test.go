package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "sbreport/internal/core/context"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(JWTConfig{Secret: secret, Issuer: "sbreport", AccessTokenTTL: 15 * time.Minute})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestService("s3cret")
	user := appctx.UserContext{
		UserID:      "u-1",
		Email:       "ana@example.com",
		Roles:       []string{"stock_manager"},
		Permissions: []string{"report:serial_batch:read"},
		OrgIDs:      []string{"Acme"},
	}

	token, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	got, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user, *got)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := newTestService("s3cret")
	token, _, err := svc.GenerateAccessToken(appctx.UserContext{UserID: "u-1"})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := newTestService("other").ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(JWTConfig{Secret: "s3cret", Issuer: "someone-else", AccessTokenTTL: time.Minute})
		_, err := other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		later := newTestService("s3cret")
		later.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err := later.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u-1"})
		s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ValidateToken(s)
		assert.Error(t, err)
	})
}

func TestJWTService_RequiresUserID(t *testing.T) {
	_, _, err := newTestService("s3cret").GenerateAccessToken(appctx.UserContext{})
	assert.Error(t, err)
}
