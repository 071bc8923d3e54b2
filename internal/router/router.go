// File: internal/router/router.go
package router

import (
	"sainik-college/internal/cache"
	"sainik-college/internal/database"
	"sainik-college/internal/handler"
	"sainik-college/internal/handler/admissions"
	"sainik-college/internal/handler/auth"
	"sainik-college/internal/handler/contacts"
	"sainik-college/internal/handler/news"
	"sainik-college/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Deps 為註冊路由所需的相依物件
type Deps struct {
	DB         database.DB
	Cache      cache.Cache
	Auth       auth.Authenticator
	Tokens     middleware.Verifier
	News       news.Feed
	StaticDir  string
	LoginRate  float64
	LoginBurst int
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	e.Use(echomw.CORS())

	requireAuth := middleware.RequireAuth(d.Tokens)
	requireAdmin := middleware.RequireAdmin(d.Tokens)

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 帳號
	api.POST("/auth/register", auth.RegisterHandler(d.Auth))
	api.POST("/auth/login", auth.LoginHandler(d.Auth), middleware.LoginRateLimiter(d.LoginRate, d.LoginBurst))
	api.POST("/auth/change-password", auth.ChangePasswordHandler(d.Auth), requireAuth)
	api.GET("/auth/me", auth.MeHandler(d.Auth), requireAuth)
	api.POST("/auth/logout", auth.LogoutHandler(d.Auth), requireAuth)

	// 公開內容與表單
	api.GET("/news", news.ListPublicHandler(d.News))
	api.POST("/admissions", admissions.SubmitHandler(d.DB))
	api.POST("/contact", contacts.SubmitHandler(d.DB))

	// 管理員專屬
	admin := api.Group("/admin", requireAdmin)
	admin.GET("/news", news.ListAllHandler(d.News))
	admin.POST("/news", news.CreateHandler(d.News))
	admin.GET("/news/:id", news.GetHandler(d.News))
	admin.PUT("/news/:id", news.UpdateHandler(d.News))
	admin.DELETE("/news/:id", news.DeleteHandler(d.News))

	admin.GET("/admissions", admissions.ListHandler(d.DB))
	admin.GET("/admissions/:id", admissions.GetHandler(d.DB))
	admin.DELETE("/admissions/:id", admissions.DeleteHandler(d.DB))

	admin.GET("/contacts", contacts.ListHandler(d.DB))
	admin.DELETE("/contacts/:id", contacts.DeleteHandler(d.DB))

	// 前端靜態檔
	if d.StaticDir != "" {
		e.Static("/", d.StaticDir)
	}
}
