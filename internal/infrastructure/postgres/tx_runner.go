package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrodata/fazenda-api/internal/application/reproducao"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
)

var _ reproducao.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	cat  *SchemaCatalog
}

// NewTxRunner constrói o runner com o pool e o catálogo (os repositórios
// atados à tx precisam dele para resolver colunas).
func NewTxRunner(pool *pgxpool.Pool, cat *SchemaCatalog) *TxRunner {
	return &TxRunner{pool: pool, cat: cat}
}

// Run inicia a transação, executa fn com repos atados à tx e faz Commit ou
// Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	eventos repository.EventoRepository,
	touros repository.TouroRepository,
	animais repository.AnimalRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	eventos := NewEventoRepository(tx)
	touros := NewTouroRepository(tx, r.cat)
	animais := NewAnimalRepository(tx, r.cat)

	if err := fn(eventos, touros, animais); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
