package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica se um erro é violação de constraint única (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// rowToMap materializa a linha corrente de rows como mapa coluna -> valor.
// Valores JSONB chegam decodificados (map/slice) pelo codec do pgx.
func rowToMap(rows pgx.Rows) (map[string]any, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}
	fields := rows.FieldDescriptions()
	m := make(map[string]any, len(fields))
	for i, f := range fields {
		m[f.Name] = values[i]
	}
	return m, nil
}
