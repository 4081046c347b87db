package dto

import "time"

// CreateUserRequest alta de personal. La contraseña inicial es la configurada por defecto.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Position string `json:"position" validate:"max=100"`
	Type     string `json:"type" validate:"required,oneof=admin user"`
	BranchID int64  `json:"branch_id" validate:"required,gt=0"`
}

// UpdateUserRequest actualización parcial de personal.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Position *string `json:"position" validate:"omitempty,max=100"`
	Type     *string `json:"type" validate:"omitempty,oneof=admin user"`
	BranchID *int64  `json:"branch_id" validate:"omitempty,gt=0"`
	IsActive *bool   `json:"is_active"`
}

// UserResponse salida de un miembro del personal (sin hash de contraseña).
type UserResponse struct {
	ID         int64     `json:"id"`
	AuthUserID string    `json:"user_id"`
	OrgID      int64     `json:"org_id"`
	BranchID   int64     `json:"branch_id"`
	BranchName string    `json:"branch_name,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Position   string    `json:"position"`
	Type       string    `json:"type"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserListResponse lista paginada de personal.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
