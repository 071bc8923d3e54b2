package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"sainik-college/internal/api"
	"sainik-college/internal/apperr"
	"sainik-college/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// Verifier 驗證 bearer token，*service.TokenManager 直接滿足
type Verifier interface {
	Verify(ctx context.Context, token string) (*service.CustomClaims, error)
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: apperr.Message(apperr.ErrUnauthenticated)})
}

// extractClaims 解析 Authorization: Bearer <token>；
// 缺少標頭、格式錯誤、簽章錯誤、過期都回傳 ErrUnauthenticated
func extractClaims(c echo.Context, tokens Verifier) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return nil, apperr.ErrUnauthenticated
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, apperr.ErrUnauthenticated
	}
	return tokens.Verify(c.Request().Context(), strings.TrimSpace(parts[1]))
}

func authenticate(c echo.Context, tokens Verifier) (*service.CustomClaims, error) {
	claims, err := extractClaims(c, tokens)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) {
			return nil, unauthenticated(c)
		}
		c.Logger().Errorf("verify token: %v", err)
		return nil, c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: apperr.Message(err)})
	}
	c.Set(ContextUserKey, claims)
	return claims, nil
}

// RequireAuth 僅允許帶有效 token 的請求
func RequireAuth(tokens Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := authenticate(c, tokens)
			if claims == nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireAdmin 先驗證身分，再檢查角色；未登入一律 401，角色不足才 403
func RequireAdmin(tokens Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := authenticate(c, tokens)
			if claims == nil {
				return err
			}
			if !claims.IsAdmin() {
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: apperr.Message(apperr.ErrForbidden)})
			}
			return next(c)
		}
	}
}

// CurrentUser 取出 RequireAuth 放在 context 的 claims
func CurrentUser(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims, ok && claims != nil
}
