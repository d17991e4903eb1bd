package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
)

const tabelaTouros = "touros"

var _ repository.TouroRepository = (*TouroRepo)(nil)

// TouroRepo inventário de sêmen. O modelo de doses é decidido uma vez, na
// construção: moderno quando a tabela tem doses_restantes, legado (coluna
// quantidade única) caso contrário.
type TouroRepo struct {
	q       Querier
	cat     *SchemaCatalog
	moderno bool
}

func NewTouroRepository(q Querier, cat *SchemaCatalog) *TouroRepo {
	return &TouroRepo{
		q:       q,
		cat:     cat,
		moderno: cat.HasColumn(tabelaTouros, "doses_restantes"),
	}
}

// Moderno indica se o deployment usa o modelo doses_adquiridas/doses_restantes.
func (r *TouroRepo) Moderno() bool { return r.moderno }

func (r *TouroRepo) GetByID(fazendaID, id string) (*entity.Touro, error) {
	return r.buscar(fazendaID, id, false)
}

func (r *TouroRepo) GetForUpdate(fazendaID, id string) (*entity.Touro, error) {
	return r.buscar(fazendaID, id, true)
}

func (r *TouroRepo) buscar(fazendaID, id string, trava bool) (*entity.Touro, error) {
	args := []any{id}
	query := `SELECT * FROM touros WHERE id = $1`
	if col, ok := r.colunaDono(); ok && fazendaID != "" {
		args = append(args, fazendaID)
		query += fmt.Sprintf(" AND %s = $2", col)
	}
	if trava {
		query += " FOR UPDATE"
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("get touro: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get touro: %w", err)
		}
		return nil, nil
	}
	linha, err := rowToMap(rows)
	if err != nil {
		return nil, fmt.Errorf("scan touro: %w", err)
	}
	return r.touroDeLinha(linha), nil
}

func (r *TouroRepo) DebitarDose(id string) error {
	query := `UPDATE touros SET doses_restantes = doses_restantes - 1 WHERE id = $1`
	if !r.moderno {
		query = `UPDATE touros SET quantidade = quantidade - 1 WHERE id = $1`
	}
	if _, err := r.q.Exec(context.Background(), query, id); err != nil {
		return fmt.Errorf("debitar dose: %w", err)
	}
	return nil
}

func (r *TouroRepo) CreditarDoses(id string, doses int, preco *decimal.Decimal) error {
	ctx := context.Background()
	if !r.moderno {
		_, err := r.q.Exec(ctx, `UPDATE touros SET quantidade = quantidade + $2 WHERE id = $1`, id, doses)
		if err != nil {
			return fmt.Errorf("creditar doses: %w", err)
		}
		return nil
	}

	set := "doses_adquiridas = doses_adquiridas + $2, doses_restantes = doses_restantes + $2"
	args := []any{id, doses}
	if preco != nil && r.cat.HasColumn(tabelaTouros, "preco_por_dose") {
		args = append(args, *preco)
		set += fmt.Sprintf(", preco_por_dose = $%d", len(args))
	}
	if r.cat.HasColumn(tabelaTouros, "updated_at") {
		set += ", updated_at = now()"
	}
	query := fmt.Sprintf(`UPDATE touros SET %s WHERE id = $1`, set)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("creditar doses: %w", err)
	}
	return nil
}

func (r *TouroRepo) colunaDono() (string, bool) {
	return colunaDonoDe(r.cat, tabelaTouros)
}

// touroDeLinha projeta a linha no modelo da entidade. No legado a quantidade
// única alimenta tanto adquirido quanto restante.
func (r *TouroRepo) touroDeLinha(linha map[string]any) *entity.Touro {
	t := &entity.Touro{
		ID:        campoString(linha, "id"),
		FazendaID: primeiraString(linha, "fazenda_id", "owner_id", "usuario_id"),
		Nome:      campoString(linha, "nome"),
		Raca:      campoString(linha, "raca"),
	}
	if r.moderno {
		t.DosesAdquiridas = campoInt(linha, "doses_adquiridas")
		t.DosesRestantes = campoInt(linha, "doses_restantes")
	} else {
		qtd := campoInt(linha, "quantidade")
		t.DosesAdquiridas = qtd
		t.DosesRestantes = qtd
	}
	if d, ok := linha["preco_por_dose"].(decimal.Decimal); ok {
		t.PrecoPorDose = d
	}
	if ts := campoTempo(linha, "created_at"); ts != nil {
		t.CreatedAt = *ts
	}
	if ts := campoTempo(linha, "updated_at"); ts != nil {
		t.UpdatedAt = *ts
	}
	return t
}

func campoInt(linha map[string]any, col string) int {
	switch v := linha[col].(type) {
	case int64:
		return int(v)
	case int32:
		return int(v)
	case int:
		return v
	case decimal.Decimal:
		return int(v.IntPart())
	}
	return 0
}
