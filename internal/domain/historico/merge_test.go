package historico_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrodata/fazenda-api/internal/domain/historico"
)

// ──────────────────────────────────────────────────────────────────────────────
// MergeSeries
// ──────────────────────────────────────────────────────────────────────────────

// Caso central: enviar só a leitura de hoje nunca apaga a de ontem.
func TestMergeSeries_NaoDestroiEntradasAntigas(t *testing.T) {
	antiga := []map[string]any{
		{"date": "2025-03-01", "litros": 18.5},
		{"date": "2025-03-02", "litros": 19.0},
	}
	nova := []map[string]any{
		{"date": "2025-03-03", "litros": 20.2},
	}

	saida := historico.MergeSeries(antiga, nova)

	require.Len(t, saida, 3, "as duas entradas antigas devem sobreviver")
	assert.Equal(t, "2025-03-01", saida[0]["date"])
	assert.Equal(t, "2025-03-02", saida[1]["date"])
	assert.Equal(t, "2025-03-03", saida[2]["date"])
}

// Mesma data: união de campos com precedência da entrada nova, nunca duplicata.
func TestMergeSeries_MesmaDataFundeCampos(t *testing.T) {
	antiga := []map[string]any{
		{"date": "2025-03-01", "litros": 18.5, "turno": "manha"},
	}
	nova := []map[string]any{
		{"date": "2025-03-01", "litros": 21.0, "obs": "pico"},
	}

	saida := historico.MergeSeries(antiga, nova)

	require.Len(t, saida, 1, "entrada com a mesma data não pode duplicar")
	assert.Equal(t, 21.0, saida[0]["litros"], "a entrada nova vence no campo em conflito")
	assert.Equal(t, "manha", saida[0]["turno"], "campo só da antiga sobrevive")
	assert.Equal(t, "pico", saida[0]["obs"], "campo só da nova entra")
}

// Data em formato brasileiro casa com a mesma data em ISO.
func TestMergeSeries_DataBRCasaComISO(t *testing.T) {
	antiga := []map[string]any{{"date": "2025-03-01", "litros": 18.5}}
	nova := []map[string]any{{"date": "01/03/2025", "litros": 19.9}}

	saida := historico.MergeSeries(antiga, nova)

	require.Len(t, saida, 1)
	assert.Equal(t, 19.9, saida[0]["litros"])
}

// Resultado sai ordenado por data crescente mesmo com entrada fora de ordem.
func TestMergeSeries_OrdenaPorData(t *testing.T) {
	antiga := []map[string]any{{"date": "2025-03-05", "litros": 17.0}}
	nova := []map[string]any{
		{"date": "2025-03-01", "litros": 18.0},
		{"date": "2025-03-03", "litros": 19.0},
	}

	saida := historico.MergeSeries(antiga, nova)

	require.Len(t, saida, 3)
	assert.Equal(t, "2025-03-01", saida[0]["date"])
	assert.Equal(t, "2025-03-03", saida[1]["date"])
	assert.Equal(t, "2025-03-05", saida[2]["date"])
}

// Reaplicar o mesmo merge não muda nada (idempotência).
func TestMergeSeries_Idempotente(t *testing.T) {
	antiga := []map[string]any{{"date": "2025-03-01", "litros": 18.5}}
	nova := []map[string]any{{"date": "2025-03-02", "litros": 19.0}}

	uma := historico.MergeSeries(antiga, nova)
	duas := historico.MergeSeries(uma, nova)

	assert.Equal(t, uma, duas)
}

// O merge não pode mutar os slices de entrada.
func TestMergeSeries_NaoMutaEntrada(t *testing.T) {
	antiga := []map[string]any{{"date": "2025-03-01", "litros": 18.5}}
	nova := []map[string]any{{"date": "2025-03-01", "litros": 21.0}}

	_ = historico.MergeSeries(antiga, nova)

	assert.Equal(t, 18.5, antiga[0]["litros"], "a série antiga original não muda")
}

// ──────────────────────────────────────────────────────────────────────────────
// DeepMerge
// ──────────────────────────────────────────────────────────────────────────────

func TestDeepMerge_ObjetosFundemRecursivamente(t *testing.T) {
	base := map[string]any{
		"saude": map[string]any{"vacinas": "em dia", "peso": 520},
		"notas": "x",
	}
	entrada := map[string]any{
		"saude": map[string]any{"peso": 540},
	}

	saida := historico.DeepMerge(base, entrada)

	saude, ok := saida["saude"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 540, saude["peso"], "entrada vence no campo em conflito")
	assert.Equal(t, "em dia", saude["vacinas"], "campo só da base sobrevive")
	assert.Equal(t, "x", saida["notas"])
}

// Arrays de série datada dos dois lados passam pelo MergeSeries.
func TestDeepMerge_SeriesDatadasFundem(t *testing.T) {
	base := map[string]any{
		"leite": []any{map[string]any{"date": "2025-03-01", "litros": 18.5}},
	}
	entrada := map[string]any{
		"leite": []any{map[string]any{"date": "2025-03-02", "litros": 19.0}},
	}

	saida := historico.DeepMerge(base, entrada)

	serie, ok := saida["leite"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, serie, 2, "as duas datas devem sobreviver")
}

// Array que não é série datada: a entrada substitui por inteiro.
func TestDeepMerge_ArrayComumEntradaVence(t *testing.T) {
	base := map[string]any{"tags": []any{"a", "b"}}
	entrada := map[string]any{"tags": []any{"c"}}

	saida := historico.DeepMerge(base, entrada)

	assert.Equal(t, []any{"c"}, saida["tags"])
}

// Tipos diferentes: a entrada vence.
func TestDeepMerge_TiposDiferentesEntradaVence(t *testing.T) {
	base := map[string]any{"obs": map[string]any{"x": 1}}
	entrada := map[string]any{"obs": "texto"}

	saida := historico.DeepMerge(base, entrada)

	assert.Equal(t, "texto", saida["obs"])
}

func TestDeepMerge_BaseNil(t *testing.T) {
	saida := historico.DeepMerge(nil, map[string]any{"a": 1})
	assert.Equal(t, 1, saida["a"])
}
