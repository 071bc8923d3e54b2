package contacts

import (
	"net/http"
	"strings"

	"sainik-college/internal/api"
	"sainik-college/internal/database"
	"sainik-college/internal/handler"
	"sainik-college/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createContact = store.CreateContact
	listContacts  = store.ListContacts
	deleteContact = store.DeleteContact
)

// @Summary     送出聯絡訊息
// @Tags        contact
// @Accept      json
// @Produce     json
// @Param       body body     api.ContactRequest true "聯絡資料"
// @Success     201  {object} api.SuccessResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /contact [post]
func SubmitHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ContactRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		m, err := createContact(c.Request().Context(), db, req.Model())
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, api.SuccessResponse{Success: true, ID: m.ID})
	}
}

// @Summary     聯絡訊息列表
// @Tags        admin-contacts
// @Produce     json
// @Success     200 {array}  model.Contact
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/contacts [get]
func ListHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listContacts(c.Request().Context(), db)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     刪除聯絡訊息
// @Tags        admin-contacts
// @Produce     json
// @Param       id  path     int true "訊息 ID"
// @Success     200 {object} api.SuccessResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/contacts/{id} [delete]
func DeleteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c)
		if !ok {
			return handler.BadRequest(c, "invalid id")
		}
		if err := deleteContact(c.Request().Context(), db, id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
	}
}
