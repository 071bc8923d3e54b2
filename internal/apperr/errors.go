// Package apperr holds the sentinel errors shared by the store, service and
// handler layers. Callers match them with errors.Is.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("admin privileges required")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInternal           = errors.New("internal error")
)

// Status 回傳錯誤對應的 HTTP 狀態碼，未知錯誤一律視為 500
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		// 註冊端點對重複帳號回 400
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message 回傳可安全顯示給用戶端的訊息；500 不外洩細節，
// 包裝過的錯誤去掉結尾的哨兵文字
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return ErrInternal.Error()
	}
	msg := err.Error()
	for _, sentinel := range []error{ErrInvalidInput, ErrInvalidCredentials, ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrConflict} {
		if msg != sentinel.Error() && errors.Is(err, sentinel) {
			prefix := strings.TrimSuffix(msg, ": "+sentinel.Error())
			// store 層只帶操作名稱（如 "GetNewsByID"），不給用戶端看
			if !strings.Contains(prefix, " ") {
				return sentinel.Error()
			}
			return prefix
		}
	}
	return msg
}
