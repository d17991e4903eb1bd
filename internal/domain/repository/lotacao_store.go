package repository

import "github.com/agrodata/fazenda-api/internal/domain/entity"

// LotacaoStore estratégia de persistência do vínculo animal→lote.
// Duas implementações: coluna dedicada no animal e documento embutido no
// histórico. A escolha acontece uma vez no boot, pelo catálogo de esquema;
// nenhum request decide estratégia por conta própria.
type LotacaoStore interface {
	// Fonte identifica a estratégia ("column" ou "historico").
	Fonte() string
	// Atribuir grava o vínculo; lote nil remove a atribuição.
	Atribuir(fazendaID, animalID string, lote *entity.Lote) error
	// Ler materializa a atribuição atual do animal.
	Ler(fazendaID, animalID string) (*entity.Lotacao, error)
	// RemoverLote apaga todas as atribuições que apontam para o lote.
	RemoverLote(fazendaID, loteID string) error
	// RecontarTotais recomputa integralmente o total de animais de cada lote
	// da fazenda (nunca incremental).
	RecontarTotais(fazendaID string) error
}
