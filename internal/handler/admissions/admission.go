package admissions

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
	createAdmission  = store.CreateAdmission
	listAdmissions   = store.ListAdmissions
	getAdmissionByID = store.GetAdmissionByID
	deleteAdmission  = store.DeleteAdmission
)

// @Summary     送出入學申請
// @Description 公開表單，Email 會自動轉小寫
// @Tags        admissions
// @Accept      json
// @Produce     json
// @Param       body body     api.AdmissionRequest true "申請資料"
// @Success     201  {object} api.SuccessResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /admissions [post]
func SubmitHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.AdmissionRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		a, err := createAdmission(c.Request().Context(), db, req.Model())
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, api.SuccessResponse{Success: true, ID: a.ID})
	}
}

// @Summary     入學申請列表
// @Tags        admin-admissions
// @Produce     json
// @Success     200 {array}  model.Admission
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/admissions [get]
func ListHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listAdmissions(c.Request().Context(), db)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     取得單筆入學申請
// @Tags        admin-admissions
// @Produce     json
// @Param       id  path     int true "申請 ID"
// @Success     200 {object} model.Admission
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/admissions/{id} [get]
func GetHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c)
		if !ok {
			return handler.BadRequest(c, "invalid id")
		}
		a, err := getAdmissionByID(c.Request().Context(), db, id)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, a)
	}
}

// @Summary     刪除入學申請
// @Tags        admin-admissions
// @Produce     json
// @Param       id  path     int true "申請 ID"
// @Success     200 {object} api.SuccessResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/admissions/{id} [delete]
func DeleteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c)
		if !ok {
			return handler.BadRequest(c, "invalid id")
		}
		if err := deleteAdmission(c.Request().Context(), db, id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
	}
}
