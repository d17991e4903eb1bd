package entity

import "time"

// EtapaProtocolo um passo do protocolo hormonal, relativo à data de início.
type EtapaProtocolo struct {
	OffsetDias int    `json:"offset_dias"`
	Hormonio   string `json:"hormonio"`
	Acao       string `json:"acao"`
	Dose       string `json:"dose"`
	Via        string `json:"via"`
}

// Protocolo sequência ordenada de etapas usada como gabarito para projetar
// a agenda de eventos a partir de uma data de início. Versões não são
// retidas: editar o protocolo muda as aplicações futuras, não as passadas.
type Protocolo struct {
	ID        string
	FazendaID string
	Nome      string
	Descricao string
	Etapas    []EtapaProtocolo
	CreatedAt time.Time
	UpdatedAt time.Time
}
