package api

import "strings"

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,max=255" example:"Alice"`
	Email string `json:"email" validate:"required,email,max=255" example:"alice@example.com"`
}

// Normalize 去除前後空白並將 Email 轉為小寫
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
