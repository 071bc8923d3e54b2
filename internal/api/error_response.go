// File: internal/api/error_response.go
package api

// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message" example:"unauthenticated"`
}

// swagger:model api.SuccessResponse
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
	ID      int  `json:"id,omitempty" example:"1"`
}
