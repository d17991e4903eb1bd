package reproducao

import (
	"fmt"
	"time"
)

// GestacaoDias duração canônica da gestação bovina usada em todo o sistema.
const GestacaoDias = 283

// Janelas aceitas para diagnóstico de gestação, em dias após a IA.
const (
	DG30Min = 28
	DG30Max = 40
	DG60Min = 56
	DG60Max = 70
)

// Etiquetas das janelas de diagnóstico.
const (
	JanelaDG30 = "DG30"
	JanelaDG60 = "DG60"
)

// JanelaInvalidaError diagnóstico fora das janelas DG30 e DG60.
type JanelaInvalidaError struct {
	DiffDias int
}

func (e *JanelaInvalidaError) Error() string {
	return fmt.Sprintf(
		"diagnóstico a %d dias da última IA: aceito apenas em %d a %d (DG30) ou %d a %d (DG60) dias",
		e.DiffDias, DG30Min, DG30Max, DG60Min, DG60Max,
	)
}

// ClassificarJanela devolve a etiqueta da janela em que diffDias cai,
// ou ok=false quando o diagnóstico deve ser rejeitado.
func ClassificarJanela(diffDias int) (janela string, ok bool) {
	switch {
	case diffDias >= DG30Min && diffDias <= DG30Max:
		return JanelaDG30, true
	case diffDias >= DG60Min && diffDias <= DG60Max:
		return JanelaDG60, true
	default:
		return "", false
	}
}

// PrevisaoParto projeta a data prevista de parto a partir da IA de referência.
func PrevisaoParto(ia time.Time) time.Time {
	return ia.AddDate(0, 0, GestacaoDias)
}
