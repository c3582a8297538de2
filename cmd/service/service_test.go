package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"basic-api/internal/config"
	"basic-api/internal/database"
	"basic-api/internal/logging"
)

func restoreGlobals() {
	loadConfig = config.Load
	newLogger = logging.New
	newPgxPool = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	exitFunc = func(code int) {}
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL:   "postgres://u:p@db:5432/app",
		ServerPort:    4000,
		LogLevel:      "info",
		RunMigrations: true,
		Pool: config.PoolConfig{
			MaxConnections: 8,
			MinConnections: 1,
			AcquireTimeout: time.Second,
			IdleTimeout:    time.Minute,
			MaxLifetime:    time.Hour,
		},
	}
}

// stubAll 讓 run 不碰真實的環境、資料庫與網路
func stubAll(t *testing.T, cfg *config.Config) (*bytes.Buffer, map[string]bool) {
	t.Helper()
	t.Cleanup(restoreGlobals)
	var buf bytes.Buffer
	called := map[string]bool{}
	loadConfig = func(string) (*config.Config, error) { return cfg, nil }
	newLogger = func(level string, _ io.Writer) (*logrus.Logger, error) { return logging.New(level, &buf) }
	runMigrationsFn = func(url string) error {
		called["migrate"] = true
		require.Equal(t, cfg.DatabaseURL, url)
		return nil
	}
	newPgxPool = func(_ context.Context, opts database.PoolOptions) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, cfg.DatabaseURL, opts.URL)
		require.Equal(t, cfg.Pool.MaxConnections, opts.MaxConns)
		require.Equal(t, cfg.Pool.MinConnections, opts.MinConns)
		require.Equal(t, cfg.Pool.AcquireTimeout, opts.AcquireTimeout)
		require.Equal(t, cfg.Pool.IdleTimeout, opts.IdleTimeout)
		require.Equal(t, cfg.Pool.MaxLifetime, opts.MaxLifetime)
		require.NotNil(t, opts.Tracer)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = addr == ":4000"
		return nil
	}
	return &buf, called
}

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
}

func TestRunSuccess(t *testing.T) {
	buf, called := stubAll(t, testConfig())

	require.NoError(t, run(context.Background()))
	require.True(t, called["migrate"])
	require.True(t, called["pgx"])
	require.True(t, called["start"])
	require.True(t, called["dbClose"])
	require.Contains(t, buf.String(), "server starting")
}

func TestRunSkipsMigrations(t *testing.T) {
	cfg := testConfig()
	cfg.RunMigrations = false
	_, called := stubAll(t, cfg)

	require.NoError(t, run(context.Background()))
	require.False(t, called["migrate"])
	require.True(t, called["start"])
}

func TestRunErrors(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		stubAll(t, testConfig())
		loadConfig = func(string) (*config.Config, error) { return nil, errors.New("cfg") }
		require.ErrorContains(t, run(context.Background()), "cfg")
	})

	t.Run("log level", func(t *testing.T) {
		cfg := testConfig()
		cfg.LogLevel = "loud"
		stubAll(t, cfg)
		require.Error(t, run(context.Background()))
	})

	t.Run("migrations", func(t *testing.T) {
		_, called := stubAll(t, testConfig())
		runMigrationsFn = func(string) error { return errors.New("migrate") }
		require.ErrorContains(t, run(context.Background()), "migrate")
		require.False(t, called["pgx"])
	})

	t.Run("pool", func(t *testing.T) {
		_, called := stubAll(t, testConfig())
		newPgxPool = func(context.Context, database.PoolOptions) (database.DB, error) { return nil, errors.New("db") }
		require.Error(t, run(context.Background()))
		require.False(t, called["start"])
	})

	t.Run("start", func(t *testing.T) {
		_, called := stubAll(t, testConfig())
		startServer = func(*echo.Echo, string) error { return errors.New("address in use") }
		require.ErrorContains(t, run(context.Background()), "address in use")
		require.True(t, called["dbClose"])
	})
}

func TestServeGracefulShutdown(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stopped := make(chan struct{})
	startServer = func(*echo.Echo, string) error {
		<-stopped
		return http.ErrServerClosed
	}
	var deadline time.Time
	shutdownServer = func(ctx context.Context, _ *echo.Echo) error {
		deadline, _ = ctx.Deadline()
		close(stopped)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	require.NoError(t, serve(ctx, echo.New(), ":0", logrus.New()))
	require.WithinDuration(t, start.Add(shutdownTimeout), deadline, 2*time.Second)
}

func TestServeShutdownError(t *testing.T) {
	t.Cleanup(restoreGlobals)
	startServer = func(*echo.Echo, string) error { select {} }
	shutdownServer = func(context.Context, *echo.Echo) error { return errors.New("deadline exceeded") }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorContains(t, serve(ctx, echo.New(), ":0", logrus.New()), "deadline exceeded")
}

func TestNewEchoRoutes(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	e := newEcho(logger, &database.FakeDB{PingFn: func(context.Context) error { return nil }})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/api/users")
}

func TestMainFunction(t *testing.T) {
	stubAll(t, testConfig())
	main()
}

func TestMainExit(t *testing.T) {
	stubAll(t, testConfig())
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	loadConfig = func(string) (*config.Config, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}
