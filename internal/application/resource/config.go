// Package resource implementa o motor genérico de recursos: CRUD/listagem
// parametrizados por uma configuração por entidade, com SQL montado apenas a
// partir do descritor de capacidades resolvido no boot, nunca de entrada do
// cliente.
package resource

import (
	"context"
	"strings"

	"github.com/agrodata/fazenda-api/internal/application/dto"
)

// Catalog fatos de esquema consultados uma única vez no Bind.
// Satisfeito por postgres.SchemaCatalog.
type Catalog interface {
	HasColumn(tabela, coluna string) bool
	FindColumn(tabela string, candidatos ...string) (string, bool)
}

// Validator valida e sanitiza um payload cru. Devolve o payload saneado ou a
// lista de problemas por campo; funções puras, sem acesso a storage.
type Validator func(payload map[string]any) (map[string]any, []dto.FieldIssue)

// Scope política de escopo de tenant da entidade.
type Scope struct {
	// ColumnCandidates candidatos ao nome da coluna de dono, em ordem de
	// preferência; o primeiro presente no deployment vence.
	ColumnCandidates []string
	// Required operação falha com 401 sem identidade resolvível.
	Required bool
}

// Config configuração declarativa de uma entidade do motor genérico.
type Config struct {
	Name          string // nome do recurso na URL
	Table         string
	IDColumn      string
	ListFields    []string // projeção dos listados e leituras
	SearchFields  []string // busca por substring case-insensitive, unidas por OR
	SortFields    []string // whitelist; chave fora dela cai no IDColumn
	DocumentField string   // coluna JSONB que recebe deep-merge em updates parciais
	Scope         *Scope
	// Defaults provê valores computados na criação; o payload vence onde
	// falar, exceto a coluna de dono, sempre forçada por último.
	Defaults       func(ownerID string) map[string]any
	ValidateCreate Validator
	ValidateUpdate Validator
	// AfterDelete gancho pós-remoção (ex.: limpar lotações de um lote).
	AfterDelete func(ctx context.Context, ownerID, id string) error
}

// Bound é o descritor de capacidades: a Config projetada sobre as colunas que
// de fato existem no deployment. Resolvido uma vez no boot e imutável; os
// repositórios só enxergam Bounds.
type Bound struct {
	Name           string
	Table          string
	IDColumn       string
	ListFields     []string
	SearchFields   []string
	SortFields     []string
	OwnerColumn    string // vazio = entidade sem escopo neste deployment
	ScopeRequired  bool
	DocumentColumn string
	Defaults       func(ownerID string) map[string]any
	ValidateCreate Validator
	ValidateUpdate Validator
	AfterDelete    func(ctx context.Context, ownerID, id string) error

	fields map[string]struct{}
}

// Bind resolve a Config contra o catálogo: filtra as listas de campos para
// colunas existentes e resolve as colunas de dono e de documento.
func (c Config) Bind(cat Catalog) Bound {
	b := Bound{
		Name:           c.Name,
		Table:          c.Table,
		IDColumn:       c.IDColumn,
		Defaults:       c.Defaults,
		ValidateCreate: c.ValidateCreate,
		ValidateUpdate: c.ValidateUpdate,
		AfterDelete:    c.AfterDelete,
		fields:         map[string]struct{}{},
	}
	if b.IDColumn == "" {
		b.IDColumn = "id"
	}

	b.ListFields = filtraColunas(cat, c.Table, c.ListFields)
	b.SearchFields = filtraColunas(cat, c.Table, c.SearchFields)
	b.SortFields = filtraColunas(cat, c.Table, c.SortFields)
	for _, f := range b.ListFields {
		b.fields[strings.ToLower(f)] = struct{}{}
	}
	b.fields[strings.ToLower(b.IDColumn)] = struct{}{}

	if c.Scope != nil {
		b.ScopeRequired = c.Scope.Required
		if col, ok := cat.FindColumn(c.Table, c.Scope.ColumnCandidates...); ok {
			b.OwnerColumn = col
		}
	}
	if c.DocumentField != "" && cat.HasColumn(c.Table, c.DocumentField) {
		b.DocumentColumn = c.DocumentField
	}
	return b
}

// HasField informa se o campo faz parte da projeção ligada da entidade.
func (b *Bound) HasField(f string) bool {
	_, ok := b.fields[strings.ToLower(f)]
	return ok
}

// SortColumn aplica a whitelist de ordenação: chave fora dela cai no id.
func (b *Bound) SortColumn(pedido string) string {
	for _, f := range b.SortFields {
		if strings.EqualFold(f, pedido) {
			return f
		}
	}
	return b.IDColumn
}

func filtraColunas(cat Catalog, tabela string, campos []string) []string {
	saida := make([]string, 0, len(campos))
	for _, f := range campos {
		if cat.HasColumn(tabela, f) {
			saida = append(saida, f)
		}
	}
	return saida
}
