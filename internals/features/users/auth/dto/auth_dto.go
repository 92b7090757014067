package dto

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	Role        string     `json:"role"`
	UserID      uuid.UUID  `json:"user_id"`
	MemberID    *uuid.UUID `json:"member_id,omitempty"`
}

// RegisterRequest: hanya admin yang membuat akun (sekalian data keanggotaan)
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=jamaah bendahara admin"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}
