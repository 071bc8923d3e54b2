// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sainik-college/internal/apperr"
	"sainik-college/internal/model"

	"github.com/go-playground/validator/v10"
)

// CredentialStore 為驗證流程所需的使用者儲存介面
type CredentialStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	Create(ctx context.Context, username, email, passwordHash, role string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, userID int, hash string) error
}

// LoginResult 為登入成功後回傳的令牌與使用者
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      model.User
}

type Authenticator struct {
	users    CredentialStore
	tokens   *TokenManager
	validate *validator.Validate
}

func NewAuthenticator(users CredentialStore, tokens *TokenManager) *Authenticator {
	return &Authenticator{
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// Login 驗證帳號（username 或 email）與密碼並簽發令牌。
// 帳號不存在與密碼錯誤回傳同一個 ErrInvalidCredentials。
func (a *Authenticator) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	user, err := a.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			_ = ComparePassword(dummyHash(), password)
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("Login: %w", err)
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokens.Issue(*user)
	if err != nil {
		return nil, fmt.Errorf("Login: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

func (a *Authenticator) checkNewAccount(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("username, email and password are required: %w", apperr.ErrInvalidInput)
	}
	if err := a.validate.Var(username, "min=3,max=50"); err != nil {
		return fmt.Errorf("username must be 3-50 characters: %w", apperr.ErrInvalidInput)
	}
	if err := a.validate.Var(email, "email"); err != nil {
		return fmt.Errorf("invalid email format: %w", apperr.ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters: %w", MinPasswordLength, apperr.ErrInvalidInput)
	}
	return nil
}

// Register 建立一般使用者帳號，角色固定為 user
func (a *Authenticator) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	return a.create(ctx, username, email, password, model.RoleUser)
}

func (a *Authenticator) create(ctx context.Context, username, email, password, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := a.checkNewAccount(username, email, password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := a.users.Create(ctx, username, email, hash, role)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, fmt.Errorf("username or email already exists: %w", apperr.ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword 驗證目前密碼後替換哈希；其他已簽發的令牌不受影響
func (a *Authenticator) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return fmt.Errorf("new password must be at least %d characters: %w", MinPasswordLength, apperr.ErrInvalidInput)
	}
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return fmt.Errorf("invalid current password: %w", apperr.ErrInvalidCredentials)
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return a.users.UpdatePasswordHash(ctx, userID, hash)
}

// Me 回傳目前登入者的資料
func (a *Authenticator) Me(ctx context.Context, userID int) (*model.User, error) {
	return a.users.FindByID(ctx, userID)
}

// Logout 讓目前的令牌提早失效
func (a *Authenticator) Logout(ctx context.Context, claims *CustomClaims) error {
	return a.tokens.Revoke(ctx, claims)
}

// EnsureAdmin 首次啟動時建立預設管理員；帳號已存在時不做任何事
func (a *Authenticator) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	_, err := a.users.FindByIdentifier(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	if _, err := a.create(ctx, username, email, password, model.RoleAdmin); err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	return true, nil
}
