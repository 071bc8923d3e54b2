package store

import (
	"errors"
	"fmt"

	"sainik-college/internal/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation 為 PostgreSQL 的 SQLSTATE unique_violation
const uniqueViolation = "23505"

// wrapErr 將驅動層錯誤轉換成 apperr sentinel 並加上操作名稱
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return fmt.Errorf("%s: %w", op, apperr.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// expectOne 在 UPDATE/DELETE 沒影響任何列時回傳 NotFound
func expectOne(op string, tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}
