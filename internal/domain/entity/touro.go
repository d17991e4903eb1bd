package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Touro é o inventário de sêmen de um reprodutor.
// Invariante: DosesRestantes >= 0; debitado exatamente uma vez por IA bem
// sucedida que o referencie. Deployments antigos têm uma única coluna
// quantidade; o catálogo de esquema decide qual modelo está vivo e o
// repositório expõe os dois pelo mesmo contrato.
type Touro struct {
	ID              string
	FazendaID       string
	Nome            string
	Raca            string
	DosesAdquiridas int
	DosesRestantes  int
	PrecoPorDose    decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
