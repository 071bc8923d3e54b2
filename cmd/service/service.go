// @title        Sainik College API
// @version      1.0
// @description  Sainik College 網站後端：最新消息、入學申請、聯絡表單與管理後台
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"sainik-college/internal/api"
	"sainik-college/internal/cache"
	"sainik-college/internal/config"
	"sainik-college/internal/database"
	"sainik-college/internal/router"
	"sainik-college/internal/service"
	"sainik-college/internal/store"
	"sainik-college/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "sainik-college/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	e := echo.New()
	e.Validator = api.NewValidator()
	e.Debug = cfg.Debug
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	wp := newWorkerPool(cfg.WorkerCount, func(r any) { e.Logger.Errorf("worker panic: %v", r) })
	defer wp.Stop()

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL, service.WithDenylist(rdb))
	authn := service.NewAuthenticator(store.NewUsers(db), tokens)

	if cfg.HasAdminBootstrap() {
		created, err := authn.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("建立預設管理員失敗: %v", err)
		}
		if created {
			e.Logger.Infof("default admin %q created", cfg.AdminUsername)
		}
	}

	feed := service.NewNewsFeed(store.NewNews(db), rdb, wp, cfg.NewsCacheTTL, e.Logger)

	router.Setup(e, router.Deps{
		DB:         db,
		Cache:      rdb,
		Auth:       authn,
		Tokens:     tokens,
		News:       feed,
		StaticDir:  cfg.StaticDir,
		LoginRate:  cfg.LoginRate,
		LoginBurst: cfg.LoginBurst,
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, cfg.Addr())
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
