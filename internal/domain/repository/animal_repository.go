package repository

import "github.com/agrodata/fazenda-api/internal/domain/entity"

// AnimalRepository porta de persistência do animal para o fluxo de reprodução
// e para os subsistemas de histórico/lotação. O CRUD de cadastro passa pelo
// motor genérico de recursos, não por aqui.
type AnimalRepository interface {
	// GetByID devolve nil quando o animal não existe ou não pertence à fazenda.
	GetByID(fazendaID, id string) (*entity.Animal, error)
	// AtualizarCampos aplica um SET dinâmico restrito às colunas que existem
	// no deployment (campos derivados do fluxo: situacao_reprodutiva,
	// previsao_parto, ultima_ia, decisao, estado_produtivo).
	// Campos sem coluna correspondente são ignorados em silêncio.
	AtualizarCampos(id string, campos map[string]any) error
	// GetHistorico devolve o documento JSONB do animal (nunca nil em sucesso).
	GetHistorico(fazendaID, id string) (map[string]any, error)
	// SetHistorico substitui o documento JSONB do animal.
	SetHistorico(id string, doc map[string]any) error
}
