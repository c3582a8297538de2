package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"basic-api/internal/config"
	"basic-api/internal/database"
	"basic-api/internal/logging"
	"basic-api/internal/middleware"
	"basic-api/internal/router"
	"basic-api/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	_ "basic-api/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newLogger       = logging.New
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	exitFunc        = os.Exit
)

// run 組裝所有元件並阻塞到 ctx 取消或伺服器結束
func run(ctx context.Context) error {
	cfg, err := loadConfig(config.DefaultEnvFile)
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel, nil)
	if err != nil {
		return fmt.Errorf("無效的 LOG_LEVEL: %w", err)
	}

	if cfg.RunMigrations {
		if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 執行失敗: %w", err)
		}
		logger.Info("migrations applied")
	}

	db, err := newPgxPool(ctx, database.PoolOptions{
		URL:            cfg.DatabaseURL,
		MaxConns:       cfg.Pool.MaxConnections,
		MinConns:       cfg.Pool.MinConnections,
		AcquireTimeout: cfg.Pool.AcquireTimeout,
		IdleTimeout:    cfg.Pool.IdleTimeout,
		MaxLifetime:    cfg.Pool.MaxLifetime,
		Tracer:         logging.QueryTracer(logger),
	})
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	e := newEcho(logger, db)
	logger.WithField("addr", cfg.Addr()).Info("server starting")
	return serve(ctx, e, cfg.Addr(), logger)
}

func newEcho(logger *logrus.Logger, db database.DB) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.AccessLog())
	e.Use(echomw.Recover())

	router.Setup(e, db, store.NewUserStore(db))

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

// serve 在 ctx 取消後給進行中的請求 shutdownTimeout 的時間完成
func serve(ctx context.Context, e *echo.Echo, addr string, logger logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, addr) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器啟動失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownServer(shutdownCtx, e); err != nil {
		return fmt.Errorf("伺服器關閉失敗: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("伺服器異常結束: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
