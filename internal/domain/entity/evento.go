package entity

import "time"

// Tipos de evento de reprodução.
const (
	EventoIA               = "IA"
	EventoDiagnostico      = "DIAGNOSTICO"
	EventoParto            = "PARTO"
	EventoPreParto         = "PRE_PARTO"
	EventoSecagem          = "SECAGEM"
	EventoPerdaReprodutiva = "PERDA_REPRODUTIVA"
	EventoProtocoloEtapa   = "PROTOCOLO_ETAPA"
	EventoTratamento       = "TRATAMENTO"
	EventoDecisao          = "DECISAO"
)

// Resultados aceitos para DIAGNOSTICO.
const (
	ResultadoPrenhe        = "prenhe"
	ResultadoVazia         = "vazia"
	ResultadoIndeterminado = "indeterminado"
)

// EventoReproducao é um fato imutável depois de criado (append-mostly).
// A relação com Animal é muitos-para-um. O fluxo nunca apaga eventos;
// apenas o endpoint genérico de delete o faz, para correção manual.
type EventoReproducao struct {
	ID          string
	FazendaID   string
	AnimalID    string
	Data        time.Time // data de calendário, sem hora
	Tipo        string
	Detalhes    map[string]any
	Resultado   *string
	ProtocoloID *string
	AplicacaoID *string // agrupa as etapas de uma mesma aplicação de protocolo
	CreatedAt   time.Time
}
