// File: internal/handler/respond.go
package handler

import (
	"net/http"
	"strconv"

	"sainik-college/internal/api"
	"sainik-college/internal/apperr"

	"github.com/labstack/echo/v4"
)

// Error 將錯誤轉成 {"message": ...}；500 會記錄原因但不回傳細節
func Error(c echo.Context, err error) error {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, api.ErrorResponse{Message: apperr.Message(err)})
}

// BadRequest 回傳 400 與訊息
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msg})
}

// ParamID 解析路徑參數 :id，必須為正整數
func ParamID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Bind 先 Bind 再驗證；失敗時已寫出 400，呼叫端直接回傳 err
func Bind(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, BadRequest(c, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return false, BadRequest(c, err.Error())
	}
	return true, nil
}
