package reproducao_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrodata/fazenda-api/internal/domain/reproducao"
)

func TestClassificarJanela(t *testing.T) {
	casos := []struct {
		nome   string
		dias   int
		janela string
		ok     bool
	}{
		{"abaixo de DG30", 19, "", false},
		{"borda inferior DG30", 28, reproducao.JanelaDG30, true},
		{"dentro de DG30", 29, reproducao.JanelaDG30, true},
		{"borda superior DG30", 40, reproducao.JanelaDG30, true},
		{"vale entre janelas", 47, "", false},
		{"borda inferior DG60", 56, reproducao.JanelaDG60, true},
		{"dentro de DG60", 63, reproducao.JanelaDG60, true},
		{"borda superior DG60", 70, reproducao.JanelaDG60, true},
		{"acima de DG60", 71, "", false},
		{"diagnóstico no dia da IA", 0, "", false},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			janela, ok := reproducao.ClassificarJanela(c.dias)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.janela, janela)
		})
	}
}

func TestPrevisaoParto_283Dias(t *testing.T) {
	ia := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC), reproducao.PrevisaoParto(ia))
}

func TestParseData_Formatos(t *testing.T) {
	esperado := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("ISO", func(t *testing.T) {
		got, err := reproducao.ParseData("2025-03-01")
		require.NoError(t, err)
		assert.Equal(t, esperado, got)
	})
	t.Run("brasileiro", func(t *testing.T) {
		got, err := reproducao.ParseData("01/03/2025")
		require.NoError(t, err)
		assert.Equal(t, esperado, got)
	})
	t.Run("ISO com hora truncada ao dia", func(t *testing.T) {
		got, err := reproducao.ParseData("2025-03-01T14:35:00Z")
		require.NoError(t, err)
		assert.Equal(t, esperado, got)
	})
	t.Run("espaços nas bordas", func(t *testing.T) {
		got, err := reproducao.ParseData("  2025-03-01  ")
		require.NoError(t, err)
		assert.Equal(t, esperado, got)
	})
}

func TestParseData_Invalidas(t *testing.T) {
	for _, valor := range []string{"", "ontem", "2025/03/01", "31/02/2025", "2025-13-01"} {
		_, err := reproducao.ParseData(valor)
		require.Error(t, err, "valor %q", valor)
		var dataErr *reproducao.DataInvalidaError
		assert.ErrorAs(t, err, &dataErr)
	}
}

func TestDiasEntre(t *testing.T) {
	ia, _ := reproducao.ParseData("2025-03-01")
	diag, _ := reproducao.ParseData("2025-03-30")
	assert.Equal(t, 29, reproducao.DiasEntre(ia, diag))
	assert.Equal(t, 0, reproducao.DiasEntre(ia, ia))
}
