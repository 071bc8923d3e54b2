// File: internal/api/auth_request.go
package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50" example:"alice"`
	Email    string `json:"email" validate:"required,max=255,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"Secret123!"`
}

// swagger:model api.LoginRequest
// Email 與 Username 擇一即可
type LoginRequest struct {
	Username string `json:"username" validate:"omitempty,max=50" example:"alice"`
	Email    string `json:"email" validate:"omitempty,max=255" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}

// Identifier 回傳用來查詢帳號的值，email 優先
func (r LoginRequest) Identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// swagger:model api.ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required" example:"OldSecret123!"`
	NewPassword     string `json:"newPassword" validate:"required,min=6" example:"NewSecret456!"`
}
