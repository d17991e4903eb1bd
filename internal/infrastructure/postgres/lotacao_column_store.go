package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
)

var _ repository.LotacaoStore = (*LotacaoColumnStore)(nil)

// LotacaoColumnStore vínculo animal→lote em colunas dedicadas (lote_id e,
// quando existir, lote_nome desnormalizado). Só deve ser construído quando o
// catálogo confirma a coluna lote_id em animais.
type LotacaoColumnStore struct {
	q   Querier
	cat *SchemaCatalog
}

func NewLotacaoColumnStore(q Querier, cat *SchemaCatalog) *LotacaoColumnStore {
	return &LotacaoColumnStore{q: q, cat: cat}
}

func (s *LotacaoColumnStore) Fonte() string { return entity.FonteColuna }

func (s *LotacaoColumnStore) Atribuir(fazendaID, animalID string, lote *entity.Lote) error {
	set := "lote_id = $1"
	args := []any{nilSeVazio(lote, func(l *entity.Lote) string { return l.ID })}
	if s.cat.HasColumn(tabelaAnimais, "lote_nome") {
		args = append(args, nilSeVazio(lote, func(l *entity.Lote) string { return l.Nome }))
		set += fmt.Sprintf(", lote_nome = $%d", len(args))
	}
	if s.cat.HasColumn(tabelaAnimais, "updated_at") {
		set += ", updated_at = now()"
	}
	args = append(args, animalID)
	query := fmt.Sprintf(`UPDATE animais SET %s WHERE id = $%d`, set, len(args))
	if col, ok := colunaDonoDe(s.cat, tabelaAnimais); ok && fazendaID != "" {
		args = append(args, fazendaID)
		query += fmt.Sprintf(" AND %s = $%d", col, len(args))
	}
	if _, err := s.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("atribuir lote (coluna): %w", err)
	}
	return nil
}

func (s *LotacaoColumnStore) Ler(fazendaID, animalID string) (*entity.Lotacao, error) {
	proj := "lote_id"
	if s.cat.HasColumn(tabelaAnimais, "lote_nome") {
		proj += ", lote_nome"
	} else {
		proj += ", NULL::text"
	}
	args := []any{animalID}
	query := fmt.Sprintf(`SELECT %s FROM animais WHERE id = $1`, proj)
	if col, ok := colunaDonoDe(s.cat, tabelaAnimais); ok && fazendaID != "" {
		args = append(args, fazendaID)
		query += fmt.Sprintf(" AND %s = $2", col)
	}

	var loteID, loteNome *string
	err := s.q.QueryRow(context.Background(), query, args...).Scan(&loteID, &loteNome)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ler lotação (coluna): %w", err)
	}
	if loteID == nil || *loteID == "" {
		return &entity.Lotacao{Fonte: entity.FonteNenhuma}, nil
	}
	lt := &entity.Lotacao{LoteID: *loteID, Fonte: entity.FonteColuna}
	if loteNome != nil {
		lt.LoteNome = *loteNome
	}
	return lt, nil
}

func (s *LotacaoColumnStore) RemoverLote(fazendaID, loteID string) error {
	set := "lote_id = NULL"
	if s.cat.HasColumn(tabelaAnimais, "lote_nome") {
		set += ", lote_nome = NULL"
	}
	if s.cat.HasColumn(tabelaAnimais, "updated_at") {
		set += ", updated_at = now()"
	}
	args := []any{loteID}
	query := fmt.Sprintf(`UPDATE animais SET %s WHERE lote_id = $1`, set)
	if col, ok := colunaDonoDe(s.cat, tabelaAnimais); ok && fazendaID != "" {
		args = append(args, fazendaID)
		query += fmt.Sprintf(" AND %s = $2", col)
	}
	if _, err := s.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("remover lote (coluna): %w", err)
	}
	return nil
}

// RecontarTotais recomputação integral por subconsulta: nunca soma ou subtrai
// incrementos, conta o estado real.
func (s *LotacaoColumnStore) RecontarTotais(fazendaID string) error {
	if !s.cat.HasColumn("lotes", "total_animais") {
		return nil
	}
	query := `
		UPDATE lotes l SET total_animais = (
			SELECT count(*) FROM animais a WHERE a.lote_id = l.id
		)`
	args := []any{}
	if col, ok := colunaDonoDe(s.cat, "lotes"); ok && fazendaID != "" {
		args = append(args, fazendaID)
		query += fmt.Sprintf(" WHERE l.%s = $1", col)
	}
	if _, err := s.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("recontar lotes (coluna): %w", err)
	}
	return nil
}

func nilSeVazio(lote *entity.Lote, campo func(*entity.Lote) string) any {
	if lote == nil {
		return nil
	}
	if v := campo(lote); v != "" {
		return v
	}
	return nil
}
