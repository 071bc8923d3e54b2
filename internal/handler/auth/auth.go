// File: internal/handler/auth/auth.go
package auth

import (
	"context"
	"net/http"

	"sainik-college/internal/api"
	"sainik-college/internal/handler"
	"sainik-college/internal/middleware"
	"sainik-college/internal/model"
	"sainik-college/internal/service"

	"github.com/labstack/echo/v4"
)

// Authenticator 為 handler 需要的驗證服務，*service.Authenticator 直接滿足
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (*service.LoginResult, error)
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	Me(ctx context.Context, userID int) (*model.User, error)
	Logout(ctx context.Context, claims *service.CustomClaims) error
}

// RegisterHandler 建立一般使用者帳號
// @Summary     註冊使用者
// @Description 建立角色為 user 的帳號，Email 會自動轉小寫
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.SuccessResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(a Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		user, err := a.Register(c.Request().Context(), req.Username, req.Email, req.Password)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, api.SuccessResponse{Success: true, ID: user.ID})
	}
}

// LoginHandler 使用 username 或 email 加密碼登入並回傳 JWT
// @Summary     登入
// @Description 帳號不存在與密碼錯誤回傳相同的 401 訊息
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(a Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		if req.Identifier() == "" {
			return handler.BadRequest(c, "username or email is required")
		}
		res, err := a.Login(c.Request().Context(), req.Identifier(), req.Password)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.LoginResponse{
			Token:     res.Token,
			ExpiresAt: res.ExpiresAt,
			Role:      res.User.Role,
			User:      api.NewUserResponse(res.User),
		})
	}
}

// ChangePasswordHandler 變更目前登入者的密碼
// @Summary     變更密碼
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.ChangePasswordRequest true "目前密碼與新密碼"
// @Success     200  {object} api.SuccessResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /auth/change-password [post]
func ChangePasswordHandler(a Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "unauthenticated"})
		}
		var req api.ChangePasswordRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		if err := a.ChangePassword(c.Request().Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
	}
}

// MeHandler 取得目前登入者資料
// @Summary     目前使用者
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /auth/me [get]
func MeHandler(a Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "unauthenticated"})
		}
		user, err := a.Me(c.Request().Context(), claims.UserID)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}

// LogoutHandler 讓目前的 token 失效
// @Summary     登出
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.SuccessResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /auth/logout [post]
func LogoutHandler(a Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "unauthenticated"})
		}
		if err := a.Logout(c.Request().Context(), claims); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
	}
}
