package repository

import (
	"github.com/shopspring/decimal"

	"github.com/agrodata/fazenda-api/internal/domain/entity"
)

// TouroRepository porta do inventário de sêmen. A implementação decide no
// boot (via catálogo de esquema) se o deployment usa o modelo moderno
// (doses_adquiridas/doses_restantes) ou o legado (quantidade única) e expõe
// os dois por este contrato.
type TouroRepository interface {
	// GetByID devolve nil quando o touro não existe ou não pertence à fazenda.
	GetByID(fazendaID, id string) (*entity.Touro, error)
	// GetForUpdate lê o touro bloqueando a linha (SELECT ... FOR UPDATE).
	// Só faz sentido dentro de uma transação.
	GetForUpdate(fazendaID, id string) (*entity.Touro, error)
	// DebitarDose subtrai exatamente uma dose do inventário.
	DebitarDose(id string) error
	// CreditarDoses compra: soma doses ao adquirido e ao restante.
	// preco, quando não nil, atualiza o preço por dose.
	CreditarDoses(id string, doses int, preco *decimal.Decimal) error
}
