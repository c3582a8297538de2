package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions 描述連線池的上限與逾時；零值欄位沿用 pgxpool 預設。
// AcquireTimeout 限制每次查詢等待空閒連線的時間，零值表示只受 ctx 限制。
type PoolOptions struct {
	URL            string
	MaxConns       int32
	MinConns       int32
	AcquireTimeout time.Duration
	IdleTimeout    time.Duration
	MaxLifetime    time.Duration
	Tracer         pgx.QueryTracer
}

var (
	pgxpoolParseConfig   = pgxpool.ParseConfig
	pgxpoolNewWithConfig = pgxpool.NewWithConfig
)

// NewPgxPool 依 opts 建立有上限的連線池。連線在第一次使用時才建立，
// 資料庫暫時無法連線不會讓啟動失敗。
func NewPgxPool(ctx context.Context, opts PoolOptions) (DB, error) {
	cfg, err := poolConfig(opts)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpoolNewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("NewPgxPool: %w", err)
	}
	return newBoundedPool(pool, opts.AcquireTimeout), nil
}

func poolConfig(opts PoolOptions) (*pgxpool.Config, error) {
	cfg, err := pgxpoolParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("NewPgxPool: 解析 DATABASE_URL 失敗: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	if opts.IdleTimeout > 0 {
		cfg.MaxConnIdleTime = opts.IdleTimeout
	}
	if opts.MaxLifetime > 0 {
		cfg.MaxConnLifetime = opts.MaxLifetime
	}
	if opts.Tracer != nil {
		cfg.ConnConfig.Tracer = opts.Tracer
	}
	return cfg, nil
}
