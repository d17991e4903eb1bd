package entity

import "time"

// Situações reprodutivas do animal. Informativas, não um autômato estrito:
// colunas opcionais podem acompanhar aspectos sobrepostos do mesmo ciclo.
const (
	SituacaoVazia                 = "vazia"
	SituacaoAguardandoDiagnostico = "aguardando_diagnostico"
	SituacaoInseminada            = "inseminada"
	SituacaoPrenhe                = "prenhe"
	SituacaoPreParto              = "pre-parto"
	SituacaoPosParto              = "pos-parto"
)

// EstadoProdutivoSeca estado produtivo aplicado na secagem.
const EstadoProdutivoSeca = "seca"

// Animal representa uma vaca ou novilha do rebanho.
//
// SituacaoReprodutiva, PrevisaoParto, UltimaIA e Decisao são campos derivados:
// mutam apenas como efeito de transições do fluxo de reprodução, nunca por
// edição direta no CRUD genérico. São cache do log de eventos e podem ser
// recomputados a partir dele.
//
// Campos ponteiro correspondem a colunas opcionais: nem todo deployment as tem.
type Animal struct {
	ID                  string
	FazendaID           string
	Brinco              string // identificação visual/eletrônica
	Nome                string
	Raca                string
	Sexo                string
	Nascimento          *time.Time
	MaeID               *string
	PaiID               *string
	SituacaoReprodutiva *string
	PrevisaoParto       *time.Time
	UltimaIA            *time.Time
	Decisao             *string
	EstadoProdutivo     *string
	LoteID              *string
	LoteNome            *string
	Historico           map[string]any // documento JSONB: séries de leite/ccs/cmt, lote embutido, etc.
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
