package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConflict 表示違反唯一性限制 (例如 email 重複)
	ErrConflict = errors.New("store: conflict")

	// ErrStore 涵蓋其他所有後端失敗，包含連線錯誤
	ErrStore = errors.New("store: backend failure")
)

// Error 保留原始 driver 錯誤，同時可用 errors.Is 比對 ErrConflict / ErrStore
type Error struct {
	Kind  error
	Op    string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Cause)
}

func (e *Error) Is(target error) bool { return e.Kind == target }
func (e *Error) Unwrap() error        { return e.Cause }

// IsConflict 回報 err 是否為唯一性衝突
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	kind := ErrStore
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		kind = ErrConflict
	}
	return &Error{Kind: kind, Op: op, Cause: err}
}
