package dto

import "time"

// IARequest entrada para registrar inseminação artificial.
// Detalhes.touro_id, quando presente, debita uma dose do inventário na mesma
// transação do evento.
type IARequest struct {
	AnimalID    string         `json:"animal_id"`
	Data        string         `json:"data"`
	Detalhes    map[string]any `json:"detalhes"`
	ProtocoloID string         `json:"protocolo_id,omitempty"`
}

// DiagnosticoRequest entrada para diagnóstico de gestação.
type DiagnosticoRequest struct {
	AnimalID  string         `json:"animal_id"`
	Data      string         `json:"data"`
	Resultado string         `json:"resultado"` // prenhe | vazia | indeterminado
	Detalhes  map[string]any `json:"detalhes,omitempty"`
}

// EventoSimplesRequest entrada para parto, pré-parto e secagem.
type EventoSimplesRequest struct {
	AnimalID string         `json:"animal_id"`
	Data     string         `json:"data"`
	Detalhes map[string]any `json:"detalhes,omitempty"`
}

// DecisaoRequest define ou limpa a etiqueta de decisão do animal.
// Decisao vazia ou ausente limpa a etiqueta; o evento registra o caso
// "limpo" explicitamente.
type DecisaoRequest struct {
	AnimalID string `json:"animal_id"`
	Data     string `json:"data"`
	Decisao  string `json:"decisao"`
}

// AplicarProtocoloRequest projeta as etapas do protocolo a partir do início.
type AplicarProtocoloRequest struct {
	AnimalID string `json:"animal_id"`
	Inicio   string `json:"inicio"`
}

// EventoResponse representação JSON de um evento de reprodução.
type EventoResponse struct {
	ID          string         `json:"id"`
	AnimalID    string         `json:"animal_id"`
	Data        string         `json:"data"`
	Tipo        string         `json:"tipo"`
	Detalhes    map[string]any `json:"detalhes,omitempty"`
	Resultado   *string        `json:"resultado,omitempty"`
	ProtocoloID *string        `json:"protocolo_id,omitempty"`
	AplicacaoID *string        `json:"aplicacao_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// EventosResponse lista de eventos de um animal.
type EventosResponse struct {
	Items []EventoResponse `json:"items"`
}

// SituacaoResponse retrato dos campos derivados após recomputação.
type SituacaoResponse struct {
	AnimalID            string  `json:"animal_id"`
	SituacaoReprodutiva *string `json:"situacao_reprodutiva"`
	PrevisaoParto       *string `json:"previsao_parto"`
	UltimaIA            *string `json:"ultima_ia"`
	Decisao             *string `json:"decisao"`
	EstadoProdutivo     *string `json:"estado_produtivo"`
}
