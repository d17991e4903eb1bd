package dto

import "github.com/shopspring/decimal"

// AtribuirLoteRequest atribui (ou remove, com lote_id vazio/null) o lote do animal.
type AtribuirLoteRequest struct {
	LoteID string `json:"lote_id"`
}

// LotacaoResponse lotação materializada, venha ela de coluna dedicada ou do
// documento de histórico.
type LotacaoResponse struct {
	LotID   string `json:"lotId"`
	LotName string `json:"lotName"`
	Source  string `json:"source"` // column | historico | none
}

// SerieResponse série temporal resultante de um append com merge por data.
type SerieResponse struct {
	Ok    bool             `json:"ok"`
	Serie []map[string]any `json:"series"`
}

// CompraDosesRequest compra de doses de sêmen (aditiva).
type CompraDosesRequest struct {
	Doses        int              `json:"doses"`
	PrecoPorDose *decimal.Decimal `json:"preco_por_dose,omitempty"`
}

// TouroResponse inventário do touro após uma compra.
type TouroResponse struct {
	ID              string          `json:"id"`
	Nome            string          `json:"nome"`
	Raca            string          `json:"raca,omitempty"`
	DosesAdquiridas int             `json:"doses_adquiridas"`
	DosesRestantes  int             `json:"doses_restantes"`
	PrecoPorDose    decimal.Decimal `json:"preco_por_dose"`
}
