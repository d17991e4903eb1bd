package entity

import "time"

// Fontes possíveis da lotação materializada.
const (
	FonteColuna    = "column"
	FonteHistorico = "historico"
	FonteNenhuma   = "none"
)

// Lotacao vínculo animal→lote materializado, venha de coluna dedicada ou do
// documento de histórico. Exatamente uma representação é autoritativa por
// deployment, decidida no boot pela presença das colunas, nunca misturada
// por linha.
type Lotacao struct {
	LoteID    string
	LoteNome  string
	Fonte     string
	UpdatedAt *time.Time
}
