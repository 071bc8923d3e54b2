package store

import (
	"context"

	"sainik-college/internal/database"
	"sainik-college/internal/model"
)

const userColumns = `id, username, email, password_hash, role, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapErr("GetUserByID", err)
	}
	return u, nil
}

// GetUserByIdentifier 以 username 或 email 精確比對（區分大小寫），username 優先
func GetUserByIdentifier(ctx context.Context, db database.DB, identifier string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE username = $1 OR email = $1
		 ORDER BY (username = $1) DESC
		 LIMIT 1`,
		identifier,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapErr("GetUserByIdentifier", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Role,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, wrapErr("CreateUser", err)
	}
	return u, nil
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID int, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return wrapErr("UpdateUserPassword", err)
	}
	return expectOne("UpdateUserPassword", tag)
}

// Users 將上面的函式包成 service.CredentialStore
type Users struct {
	DB database.DB
}

func NewUsers(db database.DB) *Users {
	return &Users{DB: db}
}

func (s *Users) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	return GetUserByIdentifier(ctx, s.DB, identifier)
}

func (s *Users) FindByID(ctx context.Context, id int) (*model.User, error) {
	return GetUserByID(ctx, s.DB, id)
}

func (s *Users) Create(ctx context.Context, username, email, passwordHash, role string) (*model.User, error) {
	return CreateUser(ctx, s.DB, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	})
}

func (s *Users) UpdatePasswordHash(ctx context.Context, userID int, hash string) error {
	return UpdateUserPassword(ctx, s.DB, userID, hash)
}
