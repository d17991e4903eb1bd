package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo leitura de lotes para o resolver de lotação.
type LoteRepo struct {
	q   Querier
	cat *SchemaCatalog
}

func NewLoteRepository(q Querier, cat *SchemaCatalog) *LoteRepo {
	return &LoteRepo{q: q, cat: cat}
}

func (r *LoteRepo) GetByID(fazendaID, id string) (*entity.Lote, error) {
	args := []any{id}
	query := `SELECT * FROM lotes WHERE id = $1`
	if col, ok := colunaDonoDe(r.cat, "lotes"); ok && fazendaID != "" {
		args = append(args, fazendaID)
		query += fmt.Sprintf(" AND %s = $2", col)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("get lote: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get lote: %w", err)
		}
		return nil, nil
	}
	linha, err := rowToMap(rows)
	if err != nil {
		return nil, fmt.Errorf("scan lote: %w", err)
	}
	l := &entity.Lote{
		ID:           campoString(linha, "id"),
		FazendaID:    primeiraString(linha, "fazenda_id", "owner_id", "usuario_id"),
		Nome:         campoString(linha, "nome"),
		Descricao:    campoString(linha, "descricao"),
		TotalAnimais: campoInt(linha, "total_animais"),
	}
	if t := campoTempo(linha, "created_at"); t != nil {
		l.CreatedAt = *t
	}
	if t := campoTempo(linha, "updated_at"); t != nil {
		l.UpdatedAt = *t
	}
	return l, nil
}

// colunaDonoDe resolve a coluna de tenant de uma tabela pelos candidatos
// usuais, na ordem de preferência.
func colunaDonoDe(cat *SchemaCatalog, tabela string) (string, bool) {
	for _, c := range []string{"fazenda_id", "owner_id", "usuario_id"} {
		if col, ok := cat.FindColumn(tabela, c); ok {
			return col, true
		}
	}
	return "", false
}
