package reproducao

import (
	"fmt"
	"strings"
	"time"
)

// Formatos de data aceitos na entrada: ISO e dia/mês/ano (uso corrente no campo).
const (
	FormatoISO = "2006-01-02"
	FormatoBR  = "02/01/2006"
)

// DataInvalidaError data de evento fora dos formatos aceitos.
// Rejeitada antes de qualquer escrita.
type DataInvalidaError struct {
	Valor string
}

func (e *DataInvalidaError) Error() string {
	return fmt.Sprintf("data inválida %q: use YYYY-MM-DD ou DD/MM/YYYY", e.Valor)
}

// ParseData normaliza uma data de evento para meia-noite UTC.
// Aceita "YYYY-MM-DD" ou "DD/MM/YYYY"; qualquer outro formato é DataInvalidaError.
func ParseData(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, &DataInvalidaError{Valor: s}
	}
	// Entradas ISO com hora (ex.: vindas de um date picker) são truncadas ao dia.
	if len(v) > len(FormatoISO) && strings.ContainsAny(v, "T ") {
		v = v[:len(FormatoISO)]
	}
	if t, err := time.ParseInLocation(FormatoISO, v, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(FormatoBR, v, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, &DataInvalidaError{Valor: s}
}

// FormatData devolve a representação canônica (ISO) de uma data de evento.
func FormatData(t time.Time) string {
	return t.Format(FormatoISO)
}

// DiasEntre diferença em dias de calendário entre duas datas normalizadas.
func DiasEntre(de, ate time.Time) int {
	return int(ate.Sub(de).Hours() / 24)
}
