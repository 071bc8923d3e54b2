// File: internal/handler/news/news.go
package news

import (
	"context"
	"net/http"

	"sainik-college/internal/api"
	"sainik-college/internal/handler"
	"sainik-college/internal/middleware"
	"sainik-college/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/russross/blackfriday/v2"
)

// Feed 為新聞服務介面，*service.NewsFeed 直接滿足
type Feed interface {
	Active(ctx context.Context) ([]model.NewsItem, error)
	All(ctx context.Context) ([]model.NewsItem, error)
	Get(ctx context.Context, id int) (*model.NewsItem, error)
	Create(ctx context.Context, in model.NewsInput) (*model.NewsItem, error)
	Update(ctx context.Context, id int, in model.NewsInput) (*model.NewsItem, error)
	Delete(ctx context.Context, id int) error
}

// renderMarkdown 把公告內容轉成 HTML
func renderMarkdown(src string) string {
	return string(blackfriday.Run([]byte(src), blackfriday.WithExtensions(blackfriday.CommonExtensions)))
}

func toPublic(items []model.NewsItem) []api.PublicNewsItem {
	out := make([]api.PublicNewsItem, 0, len(items))
	for _, it := range items {
		out = append(out, api.PublicNewsItem{
			ID:          it.ID,
			Title:       it.Title,
			Content:     it.Content,
			ContentHTML: renderMarkdown(it.Content),
			Date:        it.Date,
		})
	}
	return out
}

// ListPublicHandler 公開的有效新聞，依日期新到舊
// @Summary     最新消息
// @Tags        news
// @Produce     json
// @Success     200 {array}  api.PublicNewsItem
// @Failure     500 {object} api.ErrorResponse
// @Router      /news [get]
func ListPublicHandler(feed Feed) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := feed.Active(c.Request().Context())
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, toPublic(items))
	}
}

// ListAllHandler 後台列出全部新聞（含停用）
// @Summary     新聞列表（管理員）
// @Tags        admin-news
// @Produce     json
// @Success     200 {array}  model.NewsItem
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/news [get]
func ListAllHandler(feed Feed) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := feed.All(c.Request().Context())
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, items)
	}
}

// GetHandler 後台讀取單則新聞（含停用）
// @Summary     取得單則新聞
// @Tags        admin-news
// @Produce     json
// @Param       id  path     int true "新聞 ID"
// @Success     200 {object} model.NewsItem
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/news/{id} [get]
func GetHandler(feed Feed) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c)
		if !ok {
			return handler.BadRequest(c, "invalid id")
		}
		item, err := feed.Get(c.Request().Context(), id)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

// CreateHandler 新增新聞
// @Summary     新增新聞
// @Tags        admin-news
// @Accept      json
// @Produce     json
// @Param       body body     api.NewsRequest true "新聞內容"
// @Success     201  {object} model.NewsItem
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/news [post]
func CreateHandler(feed Feed) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.NewsRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		authorID := 0
		if claims, ok := middleware.CurrentUser(c); ok {
			authorID = claims.UserID
		}
		item, err := feed.Create(c.Request().Context(), req.Input(authorID))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, item)
	}
}

// UpdateHandler 更新新聞
// @Summary     更新新聞
// @Tags        admin-news
// @Accept      json
// @Produce     json
// @Param       id   path     int             true "新聞 ID"
// @Param       body body     api.NewsRequest true "新聞內容"
// @Success     200  {object} model.NewsItem
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/news/{id} [put]
func UpdateHandler(feed Feed) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c)
		if !ok {
			return handler.BadRequest(c, "invalid id")
		}
		var req api.NewsRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		// 作者欄位維持原值
		item, err := feed.Update(c.Request().Context(), id, req.Input(0))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

// DeleteHandler 刪除新聞
// @Summary     刪除新聞
// @Tags        admin-news
// @Produce     json
// @Param       id  path     int true "新聞 ID"
// @Success     200 {object} api.SuccessResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/news/{id} [delete]
func DeleteHandler(feed Feed) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c)
		if !ok {
			return handler.BadRequest(c, "invalid id")
		}
		if err := feed.Delete(c.Request().Context(), id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
	}
}
