package postgres

import (
	"context"
	"strings"

	"github.com/agrodata/fazenda-api/pkg/logger"
)

// SchemaCatalog sabe quais colunas opcionais existem em cada tabela lógica.
// É construído uma vez no boot a partir de information_schema e imutável
// depois disso; todos os componentes o consultam em vez de assumir um
// esquema fixo, o que deixa o sistema rodar sem alteração em deployments
// onde uma coluna foi renomeada ou nunca chegou a ser criada.
type SchemaCatalog struct {
	// tabela -> coluna minúscula -> nome real da coluna
	cols map[string]map[string]string
}

// LoadCatalog introspecta as tabelas indicadas. Falha de metadados degrada
// para "nenhuma coluna opcional presente" (esquema legado mínimo) com warn,
// nunca derruba o boot nem uma requisição.
func LoadCatalog(ctx context.Context, q Querier, log *logger.Logger, tabelas ...string) *SchemaCatalog {
	cat := &SchemaCatalog{cols: make(map[string]map[string]string, len(tabelas))}
	for _, t := range tabelas {
		cat.cols[strings.ToLower(t)] = map[string]string{}
	}

	rows, err := q.Query(ctx, `
		SELECT table_name, column_name
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = ANY($1)`,
		tabelas,
	)
	if err != nil {
		log.Warn().Err(err).Msg("introspecção de esquema falhou; assumindo esquema legado mínimo")
		return cat
	}
	defer rows.Close()

	for rows.Next() {
		var tabela, coluna string
		if err := rows.Scan(&tabela, &coluna); err != nil {
			log.Warn().Err(err).Msg("scan de metadados falhou; assumindo esquema legado mínimo")
			return &SchemaCatalog{cols: vazio(tabelas)}
		}
		cat.cols[strings.ToLower(tabela)][strings.ToLower(coluna)] = coluna
	}
	if err := rows.Err(); err != nil {
		log.Warn().Err(err).Msg("leitura de metadados falhou; assumindo esquema legado mínimo")
		return &SchemaCatalog{cols: vazio(tabelas)}
	}

	for t, cs := range cat.cols {
		log.Debug().Str("tabela", t).Int("colunas", len(cs)).Msg("catálogo de esquema carregado")
	}
	return cat
}

func vazio(tabelas []string) map[string]map[string]string {
	m := make(map[string]map[string]string, len(tabelas))
	for _, t := range tabelas {
		m[strings.ToLower(t)] = map[string]string{}
	}
	return m
}

// NewCatalogFromColumns constrói um catálogo fixo; usado em testes.
func NewCatalogFromColumns(colunas map[string][]string) *SchemaCatalog {
	cat := &SchemaCatalog{cols: make(map[string]map[string]string, len(colunas))}
	for t, cs := range colunas {
		m := make(map[string]string, len(cs))
		for _, c := range cs {
			m[strings.ToLower(c)] = c
		}
		cat.cols[strings.ToLower(t)] = m
	}
	return cat
}

// HasColumn informa se a coluna existe na tabela (case-insensitive).
func (c *SchemaCatalog) HasColumn(tabela, coluna string) bool {
	_, ok := c.cols[strings.ToLower(tabela)][strings.ToLower(coluna)]
	return ok
}

// FindColumn devolve o primeiro candidato presente na tabela, com o nome real
// da coluna. Permite conviver com deployments que renomearam a coluna.
func (c *SchemaCatalog) FindColumn(tabela string, candidatos ...string) (string, bool) {
	m := c.cols[strings.ToLower(tabela)]
	for _, cand := range candidatos {
		if real, ok := m[strings.ToLower(cand)]; ok {
			return real, true
		}
	}
	return "", false
}
