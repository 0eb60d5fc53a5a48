package jwt_test

import (
	"courtbook/config"
	"courtbook/infras/jwt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "courtbook"
	cfg.JWT.AccessSecret = "secret"
	cfg.JWT.AccessExpireMin = 15

	return jwt.New(cfg)
}

func TestService_ValidateToken(t *testing.T) {
	service := newService()

	t.Run("valid token", func(t *testing.T) {
		token, err := service.GenerateAccessToken("member-1", "m@club.test", "admin", time.Now())
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, "member-1", claims.MemberID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := service.GenerateAccessToken("member-1", "m@club.test", "user", time.Now().Add(-time.Hour))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)

		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("foreign signature", func(t *testing.T) {
		other := &config.Config{}
		other.JWT.AccessSecret = "other"
		other.JWT.AccessExpireMin = 15

		token, err := jwt.New(other).GenerateAccessToken("member-1", "", "user", time.Now())
		require.NoError(t, err)

		_, err = service.ValidateToken(token)

		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingToken)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, jwt.ErrBearerFormat)
}

func TestService_ValidateToken_Claims(t *testing.T) {
	t.Run("issuer must match when configured", func(t *testing.T) {
		minted := &config.Config{}
		minted.JWT.AccessSecret = "secret"
		minted.JWT.AccessExpireMin = 15
		minted.JWT.Issuer = "identity.other-club"

		token, err := jwt.New(minted).GenerateAccessToken("member-1", "", "user", time.Now())
		require.NoError(t, err)

		verifying := &config.Config{}
		verifying.JWT.AccessSecret = "secret"
		verifying.JWT.Issuer = "identity.club"

		_, err = jwt.New(verifying).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
	})

	t.Run("unknown role", func(t *testing.T) {
		service := newService()

		token, err := service.GenerateAccessToken("member-1", "", "coach", time.Now())
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
	})

	t.Run("missing member", func(t *testing.T) {
		service := newService()

		token, err := service.GenerateAccessToken("", "", "user", time.Now())
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
	})

	t.Run("leeway absorbs clock skew", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.JWT.AccessSecret = "secret"
		cfg.JWT.AccessExpireMin = 1
		cfg.JWT.LeewaySeconds = 120

		service := jwt.New(cfg)
		token, err := service.GenerateAccessToken("member-1", "", "user", time.Now().Add(-90*time.Second))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.NoError(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := newService().ValidateToken("not.a.token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
