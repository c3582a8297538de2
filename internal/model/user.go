// File: internal/model/user.go
package model

import "time"

type User struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CreateUserParams 是寫入新使用者所需的欄位，呼叫前必須已通過驗證
type CreateUserParams struct {
	Name  string
	Email string
}

// UpdateUserParams 描述部分更新；nil 代表維持原值
type UpdateUserParams struct {
	Name  *string
	Email *string
}

// Empty 回報是否沒有任何欄位需要變更
func (p UpdateUserParams) Empty() bool {
	return p.Name == nil && p.Email == nil
}
