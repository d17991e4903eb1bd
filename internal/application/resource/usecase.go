package resource

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/domain"
	"github.com/agrodata/fazenda-api/internal/domain/historico"
	"github.com/agrodata/fazenda-api/pkg/logger"
)

// Limites de paginação do listado genérico.
const (
	LimitePadrao = 20
	LimiteMax    = 200
)

// ValidationError payload rejeitado pelos validadores, com problemas por campo.
type ValidationError struct {
	Issues []dto.FieldIssue
}

func (e *ValidationError) Error() string { return "payload inválido" }

// ListQuery parâmetros de listagem vindos da query string.
type ListQuery struct {
	Page  int
	Limit int
	Q     string
	Sort  string
	Order string
}

// ListParams parâmetros já saneados entregues ao repositório.
type ListParams struct {
	OwnerID string
	Limit   int
	Offset  int
	Q       string
	Sort    string
	Order   string
}

// Repo porta de persistência do motor genérico. A implementação só monta SQL
// a partir do Bound (colunas whitelisted), com valores sempre parametrizados.
type Repo interface {
	List(b Bound, p ListParams) (items []map[string]any, total int, err error)
	// GetByID devolve nil quando não há linha (inexistente ou de outro dono).
	GetByID(b Bound, ownerID, id string) (map[string]any, error)
	Insert(b Bound, row map[string]any) error
	// Update devolve o número de linhas afetadas.
	Update(b Bound, ownerID, id string, set map[string]any) (int64, error)
	Delete(b Bound, ownerID, id string) (int64, error)
	// GetDocument lê a coluna de documento para servir de base ao deep-merge.
	GetDocument(b Bound, ownerID, id string) (map[string]any, error)
}

// Engine operações CRUD/listagem de uma entidade ligada.
type Engine struct {
	b    Bound
	repo Repo
	log  *logger.Logger
}

// NewEngine constrói o motor para uma entidade já ligada ao catálogo.
func NewEngine(b Bound, repo Repo, log *logger.Logger) *Engine {
	return &Engine{b: b, repo: repo, log: log}
}

// Bound expõe o descritor (para registro de rotas e testes).
func (e *Engine) Bound() Bound { return e.b }

// List listagem paginada com busca e ordenação whitelisted.
func (e *Engine) List(ctx context.Context, ownerID string, q ListQuery) (*dto.ListResponse, error) {
	if err := e.exigirIdentidade(ownerID); err != nil {
		return nil, err
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = LimitePadrao
	}
	if limit > LimiteMax {
		limit = LimiteMax
	}
	order := strings.ToLower(q.Order)
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	sort := e.b.SortColumn(q.Sort)

	p := ListParams{
		OwnerID: e.ownerPara(ownerID),
		Limit:   limit,
		Offset:  (page - 1) * limit,
		Q:       strings.TrimSpace(q.Q),
		Sort:    sort,
		Order:   order,
	}
	items, total, err := e.repo.List(e.b, p)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []map[string]any{}
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return &dto.ListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
		Sort:  sort,
		Order: order,
		Q:     p.Q,
	}, nil
}

// Get leitura por id dentro do escopo do dono; ErrNotFound cobre tanto o id
// inexistente quanto o de outro tenant, indistinguíveis de propósito.
func (e *Engine) Get(ctx context.Context, ownerID, id string) (map[string]any, error) {
	if err := e.exigirIdentidade(ownerID); err != nil {
		return nil, err
	}
	item, err := e.repo.GetByID(e.b, e.ownerPara(ownerID), id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// Create valida, aplica defaults (payload vence onde falar), força a coluna
// de dono por último e relê a linha pela projeção para refletir colunas
// computadas no servidor.
func (e *Engine) Create(ctx context.Context, ownerID string, payload map[string]any) (map[string]any, error) {
	if err := e.exigirIdentidade(ownerID); err != nil {
		return nil, err
	}
	saneado, issues := e.b.ValidateCreate(payload)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	row := map[string]any{}
	if e.b.Defaults != nil {
		for k, v := range e.b.Defaults(ownerID) {
			if e.b.HasField(k) {
				row[k] = v
			}
		}
	}
	for k, v := range saneado {
		if e.b.HasField(k) {
			row[k] = v
		}
	}
	id, _ := row[e.b.IDColumn].(string)
	if id == "" {
		id = uuid.New().String()
		row[e.b.IDColumn] = id
	}
	// A coluna de dono nunca vem do cliente: injetada sempre por último.
	if e.b.OwnerColumn != "" {
		row[e.b.OwnerColumn] = ownerID
	}

	if err := e.repo.Insert(e.b, row); err != nil {
		return nil, err
	}
	criado, err := e.repo.GetByID(e.b, e.ownerPara(ownerID), id)
	if err != nil {
		return nil, err
	}
	if criado == nil {
		return nil, domain.ErrNotFound
	}
	return criado, nil
}

// Update monta um SET dinâmico restrito às chaves enviadas (menos o id).
// Payload validado vazio é rejeitado; a coluna de documento passa pelo
// deep-merge com o documento guardado antes de persistir.
func (e *Engine) Update(ctx context.Context, ownerID, id string, payload map[string]any) (map[string]any, error) {
	if err := e.exigirIdentidade(ownerID); err != nil {
		return nil, err
	}
	saneado, issues := e.b.ValidateUpdate(payload)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	set := map[string]any{}
	for k, v := range saneado {
		if strings.EqualFold(k, e.b.IDColumn) {
			continue // id nunca muda por update
		}
		if e.b.OwnerColumn != "" && strings.EqualFold(k, e.b.OwnerColumn) {
			continue
		}
		if e.b.HasField(k) {
			set[k] = v
		}
	}
	if len(set) == 0 {
		return nil, domain.ErrNadaParaAtualizar
	}

	if e.b.DocumentColumn != "" {
		if fragmento, ok := set[e.b.DocumentColumn].(map[string]any); ok {
			base, err := e.repo.GetDocument(e.b, e.ownerPara(ownerID), id)
			if err != nil {
				return nil, err
			}
			set[e.b.DocumentColumn] = historico.DeepMerge(base, fragmento)
		}
	}
	if e.b.HasField("updated_at") {
		set["updated_at"] = time.Now()
	}

	afetadas, err := e.repo.Update(e.b, e.ownerPara(ownerID), id, set)
	if err != nil {
		return nil, err
	}
	if afetadas == 0 {
		return nil, domain.ErrNotFound
	}
	return e.Get(ctx, ownerID, id)
}

// Delete remoção física dentro do escopo do dono.
func (e *Engine) Delete(ctx context.Context, ownerID, id string) error {
	if err := e.exigirIdentidade(ownerID); err != nil {
		return err
	}
	afetadas, err := e.repo.Delete(e.b, e.ownerPara(ownerID), id)
	if err != nil {
		return err
	}
	if afetadas == 0 {
		return domain.ErrNotFound
	}
	if e.b.AfterDelete != nil {
		// Efeito secundário best-effort: a remoção já aconteceu.
		if err := e.b.AfterDelete(ctx, ownerID, id); err != nil {
			e.log.Warn().Err(err).Str("recurso", e.b.Name).Str("id", id).Msg("gancho pós-remoção falhou")
		}
	}
	return nil
}

func (e *Engine) exigirIdentidade(ownerID string) error {
	if e.b.ScopeRequired && ownerID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// ownerPara devolve o dono a aplicar nas cláusulas; vazio desliga o escopo
// (entidade legada sem coluna de dono).
func (e *Engine) ownerPara(ownerID string) string {
	if e.b.OwnerColumn == "" {
		return ""
	}
	return ownerID
}
