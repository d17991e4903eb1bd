package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
)

var _ repository.LotacaoStore = (*LotacaoDocumentStore)(nil)

// chaveLote chave do vínculo embutido no documento historico do animal.
const chaveLote = "lote"

// LotacaoDocumentStore vínculo animal→lote embutido no documento historico
// (historico.lote = {id, name, updatedAt}). Serve deployments sem a coluna
// lote_id e também de reserva quando a gravação em coluna falha.
type LotacaoDocumentStore struct {
	q   Querier
	cat *SchemaCatalog
}

func NewLotacaoDocumentStore(q Querier, cat *SchemaCatalog) *LotacaoDocumentStore {
	return &LotacaoDocumentStore{q: q, cat: cat}
}

func (s *LotacaoDocumentStore) Fonte() string { return entity.FonteHistorico }

func (s *LotacaoDocumentStore) Atribuir(fazendaID, animalID string, lote *entity.Lote) error {
	doc, err := s.lerDocumento(fazendaID, animalID)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("animal %s não encontrado", animalID)
	}
	if lote == nil {
		delete(doc, chaveLote)
	} else {
		doc[chaveLote] = map[string]any{
			"id":        lote.ID,
			"name":      lote.Nome,
			"updatedAt": time.Now().UTC().Format(time.RFC3339),
		}
	}
	return s.gravarDocumento(animalID, doc)
}

func (s *LotacaoDocumentStore) Ler(fazendaID, animalID string) (*entity.Lotacao, error) {
	doc, err := s.lerDocumento(fazendaID, animalID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return lotacaoDoDocumento(doc), nil
}

// RemoverLote varre os animais da fazenda e limpa o vínculo embutido dos que
// apontam para o lote. Operação rara (delete de lote), varredura aceitável.
func (s *LotacaoDocumentStore) RemoverLote(fazendaID, loteID string) error {
	animais, err := s.documentosDaFazenda(fazendaID)
	if err != nil {
		return err
	}
	for id, doc := range animais {
		lt := lotacaoDoDocumento(doc)
		if lt.Fonte == entity.FonteNenhuma || lt.LoteID != loteID {
			continue
		}
		delete(doc, chaveLote)
		if err := s.gravarDocumento(id, doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *LotacaoDocumentStore) RecontarTotais(fazendaID string) error {
	if !s.cat.HasColumn("lotes", "total_animais") {
		return nil
	}
	animais, err := s.documentosDaFazenda(fazendaID)
	if err != nil {
		return err
	}
	totais := map[string]int{}
	for _, doc := range animais {
		if lt := lotacaoDoDocumento(doc); lt.Fonte != entity.FonteNenhuma {
			totais[lt.LoteID]++
		}
	}

	zera := `UPDATE lotes SET total_animais = 0`
	args := []any{}
	if col, ok := colunaDonoDe(s.cat, "lotes"); ok && fazendaID != "" {
		args = append(args, fazendaID)
		zera += fmt.Sprintf(" WHERE %s = $1", col)
	}
	if _, err := s.q.Exec(context.Background(), zera, args...); err != nil {
		return fmt.Errorf("recontar lotes (documento): %w", err)
	}
	for loteID, total := range totais {
		_, err := s.q.Exec(context.Background(),
			`UPDATE lotes SET total_animais = $2 WHERE id = $1`, loteID, total)
		if err != nil {
			return fmt.Errorf("recontar lotes (documento): %w", err)
		}
	}
	return nil
}

func (s *LotacaoDocumentStore) lerDocumento(fazendaID, animalID string) (map[string]any, error) {
	if !s.cat.HasColumn(tabelaAnimais, "historico") {
		return nil, fmt.Errorf("tabela animais sem coluna historico")
	}
	args := []any{animalID}
	query := `SELECT historico FROM animais WHERE id = $1`
	if col, ok := colunaDonoDe(s.cat, tabelaAnimais); ok && fazendaID != "" {
		args = append(args, fazendaID)
		query += fmt.Sprintf(" AND %s = $2", col)
	}
	var doc map[string]any
	err := s.q.QueryRow(context.Background(), query, args...).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ler documento: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func (s *LotacaoDocumentStore) gravarDocumento(animalID string, doc map[string]any) error {
	set := "historico = $1"
	if s.cat.HasColumn(tabelaAnimais, "updated_at") {
		set += ", updated_at = now()"
	}
	query := fmt.Sprintf(`UPDATE animais SET %s WHERE id = $2`, set)
	if _, err := s.q.Exec(context.Background(), query, doc, animalID); err != nil {
		return fmt.Errorf("gravar documento: %w", err)
	}
	return nil
}

func (s *LotacaoDocumentStore) documentosDaFazenda(fazendaID string) (map[string]map[string]any, error) {
	if !s.cat.HasColumn(tabelaAnimais, "historico") {
		return nil, fmt.Errorf("tabela animais sem coluna historico")
	}
	args := []any{}
	query := `SELECT id, historico FROM animais`
	if col, ok := colunaDonoDe(s.cat, tabelaAnimais); ok && fazendaID != "" {
		args = append(args, fazendaID)
		query += fmt.Sprintf(" WHERE %s = $1", col)
	}
	rows, err := s.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("varrer animais: %w", err)
	}
	defer rows.Close()

	docs := map[string]map[string]any{}
	for rows.Next() {
		var id string
		var doc map[string]any
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("varrer animais: %w", err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		docs[id] = doc
	}
	return docs, rows.Err()
}

func lotacaoDoDocumento(doc map[string]any) *entity.Lotacao {
	emb, ok := doc[chaveLote].(map[string]any)
	if !ok {
		return &entity.Lotacao{Fonte: entity.FonteNenhuma}
	}
	id, _ := emb["id"].(string)
	if id == "" {
		return &entity.Lotacao{Fonte: entity.FonteNenhuma}
	}
	lt := &entity.Lotacao{LoteID: id, Fonte: entity.FonteHistorico}
	if nome, ok := emb["name"].(string); ok {
		lt.LoteNome = nome
	}
	if bruto, ok := emb["updatedAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, bruto); err == nil {
			lt.UpdatedAt = &t
		}
	}
	return lt
}
