package database

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pooledConn 是從連線池借出的單一連線，*pgxpool.Conn 直接實作
type pooledConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Release()
}

// boundedPool 限制等待空閒連線的時間；查詢本身仍使用呼叫端的 ctx
type boundedPool struct {
	acquireFn      func(ctx context.Context) (pooledConn, error)
	closeFn        func()
	acquireTimeout time.Duration
}

func newBoundedPool(pool *pgxpool.Pool, acquireTimeout time.Duration) *boundedPool {
	return &boundedPool{
		acquireFn: func(ctx context.Context) (pooledConn, error) {
			c, err := pool.Acquire(ctx)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		closeFn:        pool.Close,
		acquireTimeout: acquireTimeout,
	}
}

func (p *boundedPool) acquire(ctx context.Context) (pooledConn, error) {
	if p.acquireTimeout <= 0 {
		return p.acquireFn(ctx)
	}
	actx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()
	return p.acquireFn(actx)
}

func (p *boundedPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c, err := p.acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer c.Release()
	return c.Exec(ctx, sql, args...)
}

func (p *boundedPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	c, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := c.Query(ctx, sql, args...)
	if err != nil {
		c.Release()
		return nil, err
	}
	return &releasingRows{Rows: rows, conn: c}, nil
}

func (p *boundedPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	c, err := p.acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return &releasingRow{row: c.QueryRow(ctx, sql, args...), conn: c}
}

func (p *boundedPool) Ping(ctx context.Context) error {
	c, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	defer c.Release()
	return c.Ping(ctx)
}

func (p *boundedPool) Close() { p.closeFn() }

// releasingRows 在 Close 時歸還連線
type releasingRows struct {
	pgx.Rows
	conn pooledConn
	once sync.Once
}

func (r *releasingRows) Close() {
	r.Rows.Close()
	r.once.Do(r.conn.Release)
}

// releasingRow 在 Scan 後歸還連線
type releasingRow struct {
	row  pgx.Row
	conn pooledConn
}

func (r *releasingRow) Scan(dest ...any) error {
	defer r.conn.Release()
	return r.row.Scan(dest...)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
