package entity

import "time"

// User conta de acesso ao sistema. Em contas de dono único o ID do usuário
// é também o ID da fazenda (tenant) que escopa todos os registros.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca plano depois de persistir
	Nome         string
	FazendaNome  string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
