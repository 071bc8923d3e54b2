// File: internal/service/token.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"sainik-college/internal/apperr"
	"sainik-college/internal/cache"
	"sainik-college/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	UserID   int    `json:"id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin 判斷 token 是否帶有管理員角色
func (c *CustomClaims) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// TokenManager 以程序層級的密鑰簽發與驗證存取令牌
type TokenManager struct {
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
	revoked cache.Cache
}

type TokenOption func(*TokenManager)

// WithClock 替換時間來源，測試用
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

// WithDenylist 啟用登出黑名單，以 jti 為 key 存放到 token 到期為止
func WithDenylist(c cache.Cache) TokenOption {
	return func(m *TokenManager) { m.revoked = c }
}

func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) *TokenManager {
	m := &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue 依據使用者資訊產生 JWT，回傳令牌與到期時間
func (m *TokenManager) Issue(user model.User) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("Issue: signing secret not set")
	}
	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := CustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("Issue: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Verify 驗證簽章、演算法與到期時間；任何失敗都回傳 ErrUnauthenticated
func (m *TokenManager) Verify(ctx context.Context, tokenString string) (*CustomClaims, error) {
	if tokenString == "" || len(m.secret) == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, apperr.ErrUnauthenticated
	}
	if claims.UserID == 0 {
		return nil, apperr.ErrUnauthenticated
	}

	if m.revoked != nil && claims.ID != "" {
		err := m.revoked.Get(ctx, revokedKeyPrefix+claims.ID).Err()
		switch {
		case err == nil:
			return nil, apperr.ErrUnauthenticated
		case !errors.Is(err, redis.Nil):
			return nil, fmt.Errorf("Verify: denylist lookup: %w", err)
		}
	}
	return claims, nil
}

// Revoke 把 token 的 jti 放入黑名單直到原本的到期時間
func (m *TokenManager) Revoke(ctx context.Context, claims *CustomClaims) error {
	if m.revoked == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	remaining := claims.ExpiresAt.Time.Sub(m.now())
	if remaining <= 0 {
		return nil
	}
	if err := m.revoked.Set(ctx, revokedKeyPrefix+claims.ID, "1", remaining).Err(); err != nil {
		return fmt.Errorf("Revoke: %w", err)
	}
	return nil
}
