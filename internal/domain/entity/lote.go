package entity

import "time"

// Lote grupo de manejo (por fase de lactação, alimentação, etc.).
// TotalAnimais é recontado integralmente após qualquer edição de lotação.
type Lote struct {
	ID           string
	FazendaID    string
	Nome         string
	Descricao    string
	TotalAnimais int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
