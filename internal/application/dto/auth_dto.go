package dto

import "time"

// RegisterRequest entrada para registro (password em texto, hasheada no use case).
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Nome        string `json:"nome" validate:"omitempty,max=200"`
	FazendaNome string `json:"fazenda_nome" validate:"omitempty,max=200"`
}

// UserResponse saída de um usuário (sem password).
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Nome        string    `json:"nome"`
	FazendaNome string    `json:"fazenda_nome"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse saída com token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
