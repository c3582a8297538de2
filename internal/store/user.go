package store

import (
	"context"
	"errors"
	"math"

	"basic-api/internal/database"
	"basic-api/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = "id, name, email, created_at, updated_at"

const (
	sqlInsertUser = `INSERT INTO users (name, email)
		 VALUES ($1, $2)
		 RETURNING ` + userColumns

	sqlGetUserByID = `SELECT ` + userColumns + `
		 FROM users WHERE id = $1`

	sqlListUsers = `SELECT ` + userColumns + `
		 FROM users ORDER BY id ASC`

	sqlDeleteUser = `DELETE FROM users WHERE id = $1`
)

// UserRepository 是 HTTP 層存取使用者資料的唯一入口。
// 找不到資料時 GetByID / Update 回傳 (nil, nil)，不視為錯誤。
type UserRepository interface {
	Create(ctx context.Context, p model.CreateUserParams) (*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id int, p model.UpdateUserParams) (*model.User, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// UserStore 以 database.DB (通常是 pgx 連線池) 實作 UserRepository
type UserStore struct {
	db database.DB
}

func NewUserStore(db database.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, p model.CreateUserParams) (*model.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, sqlInsertUser, p.Name, p.Email))
	if err != nil {
		return nil, wrapErr("CreateUser", err)
	}
	return u, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int) (*model.User, error) {
	if !validID(id) {
		return nil, nil
	}
	u, err := scanUser(s.db.QueryRow(ctx, sqlGetUserByID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("GetUserByID", err)
	}
	return u, nil
}

func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.Query(ctx, sqlListUsers)
	if err != nil {
		return nil, wrapErr("ListUsers", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapErr("ListUsers", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListUsers", err)
	}
	return users, nil
}

// Update 先確認資料存在，再只更新有提供的欄位。
// 確認與更新之間資料被刪除時同樣回傳 (nil, nil)。
func (s *UserStore) Update(ctx context.Context, id int, p model.UpdateUserParams) (*model.User, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	query, args := userUpdate(id, p)
	u, err := scanUser(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("UpdateUser", err)
	}
	return u, nil
}

func (s *UserStore) Delete(ctx context.Context, id int) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	tag, err := s.db.Exec(ctx, sqlDeleteUser, id)
	if err != nil {
		return false, wrapErr("DeleteUser", err)
	}
	return tag.RowsAffected() > 0, nil
}

// validID 回報 id 是否落在 users.id (int4) 的範圍；範圍外的 id 不可能存在
func validID(id int) bool {
	return id > 0 && id <= math.MaxInt32
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}
