package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
)

const tabelaAnimais = "animais"

var _ repository.AnimalRepository = (*AnimalRepo)(nil)

// AnimalRepo persistência do animal consultada pelo fluxo de reprodução e
// pelos subsistemas de histórico/lotação. Resolve colunas opcionais via
// catálogo de schema em vez de assumir um layout fixo.
type AnimalRepo struct {
	q   Querier
	cat *SchemaCatalog
}

func NewAnimalRepository(q Querier, cat *SchemaCatalog) *AnimalRepo {
	return &AnimalRepo{q: q, cat: cat}
}

func (r *AnimalRepo) GetByID(fazendaID, id string) (*entity.Animal, error) {
	args := []any{id}
	where := " WHERE id = $1"
	if col, ok := r.colunaDono(); ok && fazendaID != "" {
		args = append(args, fazendaID)
		where += fmt.Sprintf(" AND %s = $2", col)
	}

	rows, err := r.q.Query(context.Background(), `SELECT * FROM animais`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("get animal: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get animal: %w", err)
		}
		return nil, nil
	}
	linha, err := rowToMap(rows)
	if err != nil {
		return nil, fmt.Errorf("scan animal: %w", err)
	}
	return animalDeLinha(linha), nil
}

// AtualizarCampos SET dinâmico restrito às colunas presentes no deployment.
// Campos sem coluna correspondente são descartados; sem nada aplicável o
// update vira no-op.
func (r *AnimalRepo) AtualizarCampos(id string, campos map[string]any) error {
	chaves := make([]string, 0, len(campos))
	for k := range campos {
		chaves = append(chaves, k)
	}
	sort.Strings(chaves)

	var partes []string
	var args []any
	for _, k := range chaves {
		col, ok := r.cat.FindColumn(tabelaAnimais, k)
		if !ok {
			continue
		}
		args = append(args, campos[k])
		partes = append(partes, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(partes) == 0 {
		return nil
	}
	if r.cat.HasColumn(tabelaAnimais, "updated_at") {
		partes = append(partes, "updated_at = now()")
	}
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE animais SET %s WHERE id = $%d`,
		strings.Join(partes, ", "), len(args),
	)
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("atualizar campos do animal: %w", err)
	}
	return nil
}

func (r *AnimalRepo) GetHistorico(fazendaID, id string) (map[string]any, error) {
	if !r.cat.HasColumn(tabelaAnimais, "historico") {
		return nil, fmt.Errorf("tabela animais sem coluna historico")
	}
	args := []any{id}
	where := " WHERE id = $1"
	if col, ok := r.colunaDono(); ok && fazendaID != "" {
		args = append(args, fazendaID)
		where += fmt.Sprintf(" AND %s = $2", col)
	}
	var doc map[string]any
	err := r.q.QueryRow(context.Background(), `SELECT historico FROM animais`+where, args...).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("animal %s não encontrado", id)
		}
		return nil, fmt.Errorf("ler historico: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func (r *AnimalRepo) SetHistorico(id string, doc map[string]any) error {
	if !r.cat.HasColumn(tabelaAnimais, "historico") {
		return fmt.Errorf("tabela animais sem coluna historico")
	}
	set := "historico = $1"
	if r.cat.HasColumn(tabelaAnimais, "updated_at") {
		set += ", updated_at = now()"
	}
	query := fmt.Sprintf(`UPDATE animais SET %s WHERE id = $2`, set)
	if _, err := r.q.Exec(context.Background(), query, doc, id); err != nil {
		return fmt.Errorf("gravar historico: %w", err)
	}
	return nil
}

func (r *AnimalRepo) colunaDono() (string, bool) {
	return colunaDonoDe(r.cat, tabelaAnimais)
}

// animalDeLinha projeta a linha dinâmica na entidade, tolerando colunas
// ausentes em schemas antigos.
func animalDeLinha(linha map[string]any) *entity.Animal {
	a := &entity.Animal{
		ID:                  campoString(linha, "id"),
		FazendaID:           primeiraString(linha, "fazenda_id", "owner_id", "usuario_id"),
		Brinco:              campoString(linha, "brinco"),
		Nome:                campoString(linha, "nome"),
		Raca:                campoString(linha, "raca"),
		Sexo:                campoString(linha, "sexo"),
		Nascimento:          campoTempo(linha, "nascimento"),
		MaeID:               campoStringPtr(linha, "mae_id"),
		PaiID:               campoStringPtr(linha, "pai_id"),
		SituacaoReprodutiva: campoStringPtr(linha, "situacao_reprodutiva"),
		PrevisaoParto:       campoTempo(linha, "previsao_parto"),
		UltimaIA:            campoTempo(linha, "ultima_ia"),
		Decisao:             campoStringPtr(linha, "decisao"),
		EstadoProdutivo:     campoStringPtr(linha, "estado_produtivo"),
		LoteID:              campoStringPtr(linha, "lote_id"),
		LoteNome:            campoStringPtr(linha, "lote_nome"),
	}
	if doc, ok := linha["historico"].(map[string]any); ok {
		a.Historico = doc
	}
	if t := campoTempo(linha, "created_at"); t != nil {
		a.CreatedAt = *t
	}
	if t := campoTempo(linha, "updated_at"); t != nil {
		a.UpdatedAt = *t
	}
	return a
}

func campoString(linha map[string]any, col string) string {
	if s, ok := linha[col].(string); ok {
		return s
	}
	return ""
}

func primeiraString(linha map[string]any, cols ...string) string {
	for _, c := range cols {
		if s := campoString(linha, c); s != "" {
			return s
		}
	}
	return ""
}

func campoStringPtr(linha map[string]any, col string) *string {
	if s, ok := linha[col].(string); ok && s != "" {
		return &s
	}
	return nil
}

func campoTempo(linha map[string]any, col string) *time.Time {
	if t, ok := linha[col].(time.Time); ok {
		return &t
	}
	return nil
}
