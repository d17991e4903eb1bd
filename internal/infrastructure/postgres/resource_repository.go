package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/agrodata/fazenda-api/internal/application/resource"
	"github.com/agrodata/fazenda-api/internal/domain"
)

var _ resource.Repo = (*ResourceRepo)(nil)

// ResourceRepo persistência do motor genérico de recursos. Todo SQL é montado
// a partir do Bound (colunas resolvidas no boot contra o catálogo) com
// valores sempre parametrizados; nada vindo do cliente entra como identificador.
type ResourceRepo struct {
	q Querier
}

// NewResourceRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewResourceRepository(q Querier) *ResourceRepo {
	return &ResourceRepo{q: q}
}

// List listagem paginada com busca ILIKE e ordenação whitelisted.
func (r *ResourceRepo) List(b resource.Bound, p resource.ListParams) ([]map[string]any, int, error) {
	where, args := r.filtros(b, p.OwnerID, p.Q)

	var total int
	count := fmt.Sprintf(`SELECT count(*) FROM %s%s`, b.Table, where)
	if err := r.q.QueryRow(context.Background(), count, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", b.Table, err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM %s%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		r.projecao(b), b.Table, where, p.Sort, strings.ToUpper(p.Order),
		len(args)+1, len(args)+2,
	)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", b.Table, err)
	}
	defer rows.Close()

	var items []map[string]any
	for rows.Next() {
		item, err := rowToMap(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", b.Table, err)
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

// GetByID leitura por id dentro do escopo; nil quando não há linha.
func (r *ResourceRepo) GetByID(b resource.Bound, ownerID, id string) (map[string]any, error) {
	args := []any{id}
	where := fmt.Sprintf(" WHERE %s = $1", b.IDColumn)
	if b.OwnerColumn != "" && ownerID != "" {
		args = append(args, ownerID)
		where += fmt.Sprintf(" AND %s = $2", b.OwnerColumn)
	}
	query := fmt.Sprintf(`SELECT %s FROM %s%s`, r.projecao(b), b.Table, where)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", b.Table, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get %s: %w", b.Table, err)
		}
		return nil, nil
	}
	item, err := rowToMap(rows)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", b.Table, err)
	}
	return item, nil
}

// Insert monta colunas e placeholders a partir das chaves da linha (já
// whitelisted pelo motor) em ordem determinística.
func (r *ResourceRepo) Insert(b resource.Bound, row map[string]any) error {
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	marcas := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		marcas[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[c]
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s)`,
		b.Table, strings.Join(cols, ", "), strings.Join(marcas, ", "),
	)
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", b.Table, err)
	}
	return nil
}

// Update SET dinâmico restrito às chaves enviadas; escopo de dono na WHERE.
func (r *ResourceRepo) Update(b resource.Bound, ownerID, id string, set map[string]any) (int64, error) {
	cols := make([]string, 0, len(set))
	for k := range set {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	partes := make([]string, len(cols))
	args := make([]any, 0, len(cols)+2)
	for i, c := range cols {
		args = append(args, set[c])
		partes[i] = fmt.Sprintf("%s = $%d", c, len(args))
	}
	args = append(args, id)
	where := fmt.Sprintf(" WHERE %s = $%d", b.IDColumn, len(args))
	if b.OwnerColumn != "" && ownerID != "" {
		args = append(args, ownerID)
		where += fmt.Sprintf(" AND %s = $%d", b.OwnerColumn, len(args))
	}
	query := fmt.Sprintf(`UPDATE %s SET %s%s`, b.Table, strings.Join(partes, ", "), where)

	cmd, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("update %s: %w", b.Table, err)
	}
	return cmd.RowsAffected(), nil
}

// Delete remoção física dentro do escopo do dono.
func (r *ResourceRepo) Delete(b resource.Bound, ownerID, id string) (int64, error) {
	args := []any{id}
	where := fmt.Sprintf(" WHERE %s = $1", b.IDColumn)
	if b.OwnerColumn != "" && ownerID != "" {
		args = append(args, ownerID)
		where += fmt.Sprintf(" AND %s = $2", b.OwnerColumn)
	}
	cmd, err := r.q.Exec(context.Background(), fmt.Sprintf(`DELETE FROM %s%s`, b.Table, where), args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", b.Table, err)
	}
	return cmd.RowsAffected(), nil
}

// GetDocument lê a coluna de documento para servir de base ao deep-merge.
func (r *ResourceRepo) GetDocument(b resource.Bound, ownerID, id string) (map[string]any, error) {
	if b.DocumentColumn == "" {
		return map[string]any{}, nil
	}
	args := []any{id}
	where := fmt.Sprintf(" WHERE %s = $1", b.IDColumn)
	if b.OwnerColumn != "" && ownerID != "" {
		args = append(args, ownerID)
		where += fmt.Sprintf(" AND %s = $2", b.OwnerColumn)
	}
	var doc map[string]any
	query := fmt.Sprintf(`SELECT %s FROM %s%s`, b.DocumentColumn, b.Table, where)
	err := r.q.QueryRow(context.Background(), query, args...).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("get document %s: %w", b.Table, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func (r *ResourceRepo) projecao(b resource.Bound) string {
	if len(b.ListFields) == 0 {
		return b.IDColumn
	}
	return strings.Join(b.ListFields, ", ")
}

// filtros monta a WHERE comum de listagem: escopo de dono e busca ILIKE
// unida por OR sobre os campos de busca do descritor.
func (r *ResourceRepo) filtros(b resource.Bound, ownerID, q string) (string, []any) {
	var clausulas []string
	var args []any
	if b.OwnerColumn != "" && ownerID != "" {
		args = append(args, ownerID)
		clausulas = append(clausulas, fmt.Sprintf("%s = $%d", b.OwnerColumn, len(args)))
	}
	if q != "" && len(b.SearchFields) > 0 {
		args = append(args, "%"+q+"%")
		n := len(args)
		ors := make([]string, len(b.SearchFields))
		for i, f := range b.SearchFields {
			ors[i] = fmt.Sprintf("%s ILIKE $%d", f, n)
		}
		clausulas = append(clausulas, "("+strings.Join(ors, " OR ")+")")
	}
	if len(clausulas) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clausulas, " AND "), args
}
