// File: internal/api/update_user_request.go
package api

import "strings"

// UpdateUserRequest 為部分更新；省略或 null 的欄位維持原值
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=255" example:"Alice Smith"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255" example:"alice.smith@example.com"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Email != nil {
		email := normalizeEmail(*r.Email)
		r.Email = &email
	}
}
