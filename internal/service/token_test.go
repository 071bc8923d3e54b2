package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sainik-college/internal/apperr"
	"sainik-college/internal/cache"
	"sainik-college/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef-test"

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	tok, exp, err := m.Issue(model.User{ID: 7, Username: "bob", Role: model.RoleAdmin})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	claims, err := m.Verify(context.Background(), tok)
	require.NoError(t, err)
	require.Equal(t, 7, claims.UserID)
	require.Equal(t, "bob", claims.Username)
	require.Equal(t, "7", claims.Subject)
	require.NotEmpty(t, claims.ID)
	require.True(t, claims.IsAdmin())
}

func TestTokenExpiryBoundary(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := &clock{t: start}
	ttl := 24 * time.Hour
	m := NewTokenManager(testSecret, ttl, WithClock(c.Now))

	tok, exp, err := m.Issue(model.User{ID: 1, Role: model.RoleUser})
	require.NoError(t, err)
	require.Equal(t, start.Add(ttl), exp)

	c.t = start.Add(ttl - time.Second)
	_, err = m.Verify(context.Background(), tok)
	require.NoError(t, err)

	c.t = start.Add(ttl + time.Second)
	_, err = m.Verify(context.Background(), tok)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestVerifyRejects(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		_, err := m.Verify(ctx, "")
		require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Verify(ctx, "not.a.jwt")
		require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenManager("another-secret-value", time.Hour)
		tok, _, err := other.Issue(model.User{ID: 1, Role: model.RoleAdmin})
		require.NoError(t, err)
		_, err = m.Verify(ctx, tok)
		require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("alg none", func(t *testing.T) {
		claims := CustomClaims{UserID: 1, Role: model.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.Verify(ctx, tok)
		require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("HS512", func(t *testing.T) {
		claims := CustomClaims{UserID: 1, Role: model.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = m.Verify(ctx, tok)
		require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("no exp", func(t *testing.T) {
		claims := CustomClaims{UserID: 1, Role: model.RoleAdmin}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = m.Verify(ctx, tok)
		require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("no user id", func(t *testing.T) {
		tok, _, err := m.Issue(model.User{ID: 0, Role: model.RoleUser})
		require.NoError(t, err)
		_, err = m.Verify(ctx, tok)
		require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})
}

func TestIssueWithoutSecret(t *testing.T) {
	m := NewTokenManager("", time.Hour)
	_, _, err := m.Issue(model.User{ID: 1})
	require.Error(t, err)
	_, err = m.Verify(context.Background(), "x")
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestRevoke(t *testing.T) {
	store := map[string]time.Duration{}
	fc := &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			if _, ok := store[key]; ok {
				return redis.NewStringResult("1", nil)
			}
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(_ context.Context, key string, _ any, ttl time.Duration) *redis.StatusCmd {
			store[key] = ttl
			return redis.NewStatusResult("OK", nil)
		},
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &clock{t: start}
	m := NewTokenManager(testSecret, time.Hour, WithClock(c.Now), WithDenylist(fc))
	ctx := context.Background()

	tok, _, err := m.Issue(model.User{ID: 3, Role: model.RoleUser})
	require.NoError(t, err)
	claims, err := m.Verify(ctx, tok)
	require.NoError(t, err)

	c.t = start.Add(20 * time.Minute)
	require.NoError(t, m.Revoke(ctx, claims))
	require.Equal(t, 40*time.Minute, store[revokedKeyPrefix+claims.ID])

	_, err = m.Verify(ctx, tok)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)

	// 另一個 token 不受影響
	other, _, err := m.Issue(model.User{ID: 3, Role: model.RoleUser})
	require.NoError(t, err)
	_, err = m.Verify(ctx, other)
	require.NoError(t, err)
}

func TestRevokeNoop(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, m.Revoke(context.Background(), &CustomClaims{}))

	fc := &cache.FakeCache{}
	m = NewTokenManager(testSecret, time.Hour, WithDenylist(fc))
	expired := &CustomClaims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        "abc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	require.NoError(t, m.Revoke(context.Background(), expired))
	require.NoError(t, m.Revoke(context.Background(), nil))
}

func TestDenylistErrors(t *testing.T) {
	fc := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", errors.New("conn refused"))
		},
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("conn refused"))
		},
	}
	m := NewTokenManager(testSecret, time.Hour, WithDenylist(fc))
	tok, _, err := m.Issue(model.User{ID: 1, Role: model.RoleUser})
	require.NoError(t, err)

	_, err = m.Verify(context.Background(), tok)
	require.Error(t, err)
	require.NotErrorIs(t, err, apperr.ErrUnauthenticated)

	claims := &CustomClaims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        "abc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	require.Error(t, m.Revoke(context.Background(), claims))
}
