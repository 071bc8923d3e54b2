package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sainik-college/internal/apperr"
	"sainik-college/internal/model"

	"github.com/stretchr/testify/require"
)

// memUsers 為記憶體版 CredentialStore
type memUsers struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*model.User
	err    error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[int]*model.User{}}
}

func (m *memUsers) FindByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Username == identifier || u.Email == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memUsers) FindByID(_ context.Context, id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Create(_ context.Context, username, email, hash, role string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username || u.Email == email {
			return nil, apperr.ErrConflict
		}
	}
	m.nextID++
	u := &model.User{ID: m.nextID, Username: username, Email: email, PasswordHash: hash, Role: role, CreatedAt: time.Now()}
	m.byID[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m *memUsers) UpdatePasswordHash(_ context.Context, userID int, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return apperr.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func newTestAuthenticator(users CredentialStore) *Authenticator {
	return NewAuthenticator(users, NewTokenManager(testSecret, time.Hour))
}

func TestRegisterThenLogin(t *testing.T) {
	users := newMemUsers()
	a := newTestAuthenticator(users)
	ctx := context.Background()

	u, err := a.Register(ctx, " alice ", "Alice@Example.com", "wonderland")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, "Alice@Example.com", u.Email)
	require.Equal(t, model.RoleUser, u.Role)
	require.NotEqual(t, "wonderland", u.PasswordHash)

	for _, id := range []string{"alice", "Alice@Example.com"} {
		res, err := a.Login(ctx, id, "wonderland")
		require.NoError(t, err)
		require.Equal(t, model.RoleUser, res.User.Role)

		claims, err := a.tokens.Verify(ctx, res.Token)
		require.NoError(t, err)
		require.Equal(t, u.ID, claims.UserID)
		require.Equal(t, model.RoleUser, claims.Role)
		require.False(t, claims.IsAdmin())
	}
}

func TestLoginWithMixedCaseEmail(t *testing.T) {
	a := newTestAuthenticator(newMemUsers())
	ctx := context.Background()

	_, err := a.Register(ctx, "alice", "Alice@X.com", "secret1")
	require.NoError(t, err)

	for _, id := range []string{"Alice@X.com", "alice"} {
		res, err := a.Login(ctx, id, "secret1")
		require.NoError(t, err, id)
		require.Equal(t, "Alice@X.com", res.User.Email)
	}
	// 比對區分大小寫
	for _, id := range []string{"alice@x.com", "ALICE@X.COM", "Alice"} {
		_, err = a.Login(ctx, id, "secret1")
		require.ErrorIs(t, err, apperr.ErrInvalidCredentials, id)
	}
}

func TestRegisterValidation(t *testing.T) {
	a := newTestAuthenticator(newMemUsers())
	ctx := context.Background()

	cases := map[string][3]string{
		"missing username": {"", "a@b.com", "secret1"},
		"missing email":    {"alice", "", "secret1"},
		"missing password": {"alice", "a@b.com", ""},
		"short username":   {"al", "a@b.com", "secret1"},
		"bad email":        {"alice", "not-an-email", "secret1"},
		"short password":   {"alice", "a@b.com", "12345"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := a.Register(ctx, in[0], in[1], in[2])
			require.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	a := newTestAuthenticator(newMemUsers())
	ctx := context.Background()
	_, err := a.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = a.Register(ctx, "alice", "other@example.com", "secret1")
	require.ErrorIs(t, err, apperr.ErrConflict)
	_, err = a.Register(ctx, "alice2", "alice@example.com", "secret1")
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	a := newTestAuthenticator(newMemUsers())
	ctx := context.Background()
	_, err := a.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, errUnknown := a.Login(ctx, "nobody", "secret1")
	_, errWrong := a.Login(ctx, "alice", "wrong-password")
	require.ErrorIs(t, errUnknown, apperr.ErrInvalidCredentials)
	require.Equal(t, errUnknown, errWrong)
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLoginStoreError(t *testing.T) {
	users := newMemUsers()
	users.err = errors.New("db down")
	a := newTestAuthenticator(users)

	_, err := a.Login(context.Background(), "alice", "secret1")
	require.Error(t, err)
	require.NotErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	a := newTestAuthenticator(newMemUsers())
	ctx := context.Background()
	u, err := a.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	t.Run("wrong current keeps old password", func(t *testing.T) {
		err := a.ChangePassword(ctx, u.ID, "nope", "brand-new")
		require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
		_, err = a.Login(ctx, "alice", "secret1")
		require.NoError(t, err)
		_, err = a.Login(ctx, "alice", "brand-new")
		require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	})

	t.Run("short new password", func(t *testing.T) {
		err := a.ChangePassword(ctx, u.ID, "secret1", "123")
		require.ErrorIs(t, err, apperr.ErrInvalidInput)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := a.ChangePassword(ctx, 999, "secret1", "brand-new")
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("success", func(t *testing.T) {
		before, err := a.Login(ctx, "alice", "secret1")
		require.NoError(t, err)

		require.NoError(t, a.ChangePassword(ctx, u.ID, "secret1", "brand-new"))
		_, err = a.Login(ctx, "alice", "secret1")
		require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
		_, err = a.Login(ctx, "alice", "brand-new")
		require.NoError(t, err)

		// 既有 token 仍然有效
		_, err = a.tokens.Verify(ctx, before.Token)
		require.NoError(t, err)
	})
}

func TestMe(t *testing.T) {
	a := newTestAuthenticator(newMemUsers())
	ctx := context.Background()
	u, err := a.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	got, err := a.Me(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	_, err = a.Me(ctx, 42)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	a := newTestAuthenticator(newMemUsers())
	ctx := context.Background()

	created, err := a.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123")
	require.NoError(t, err)
	require.True(t, created)

	created, err = a.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123")
	require.NoError(t, err)
	require.False(t, created)

	res, err := a.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, res.User.Role)

	_, err = a.EnsureAdmin(ctx, "root", "bad", "admin123")
	require.ErrorIs(t, err, apperr.ErrInvalidInput)

	users := newMemUsers()
	users.err = errors.New("db down")
	_, err = newTestAuthenticator(users).EnsureAdmin(ctx, "admin", "admin@example.com", "admin123")
	require.Error(t, err)
}
