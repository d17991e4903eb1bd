package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrodata/fazenda-api/internal/application/usecase"
	"github.com/agrodata/fazenda-api/internal/domain"
	"github.com/agrodata/fazenda-api/internal/domain/entity"
	domrep "github.com/agrodata/fazenda-api/internal/domain/reproducao"
)

func cenarioHistorico() (*usecase.HistoricoUseCase, *fakeAnimais) {
	animais := &fakeAnimais{animais: map[string]*entity.Animal{
		animalTeste: {ID: animalTeste, FazendaID: fazendaTeste},
	}}
	return usecase.NewHistoricoUseCase(animais), animais
}

func TestRegistrarEntradas_SerieDesconhecida(t *testing.T) {
	uc, _ := cenarioHistorico()
	_, err := uc.RegistrarEntradas(context.Background(), fazendaTeste, animalTeste, "pesagem",
		[]map[string]any{{"date": "2025-03-01", "valor": 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarEntradas_SemEntradas(t *testing.T) {
	uc, _ := cenarioHistorico()
	_, err := uc.RegistrarEntradas(context.Background(), fazendaTeste, animalTeste, usecase.SerieLeite, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Toda entrada precisa de data válida; uma inválida rejeita o lote inteiro
// antes de qualquer escrita.
func TestRegistrarEntradas_DataInvalidaRejeitaOLote(t *testing.T) {
	uc, animais := cenarioHistorico()
	_, err := uc.RegistrarEntradas(context.Background(), fazendaTeste, animalTeste, usecase.SerieLeite,
		[]map[string]any{
			{"date": "2025-03-01", "liters": 18.5},
			{"date": "ontem", "liters": 20.0},
		})
	var dataErr *domrep.DataInvalidaError
	require.ErrorAs(t, err, &dataErr)
	assert.Nil(t, animais.animais[animalTeste].Historico)
}

func TestRegistrarEntradas_CriaASerieNoDocumento(t *testing.T) {
	uc, animais := cenarioHistorico()

	out, err := uc.RegistrarEntradas(context.Background(), fazendaTeste, animalTeste, usecase.SerieLeite,
		[]map[string]any{{"date": "2025-03-01", "liters": 18.5}})
	require.NoError(t, err)

	assert.True(t, out.Ok)
	require.Len(t, out.Serie, 1)
	doc := animais.animais[animalTeste].Historico
	require.NotNil(t, doc)
	assert.Contains(t, doc, usecase.SerieLeite)
}

// Entrada para data já existente funde campo a campo: a leitura de hoje
// nunca apaga a de ontem.
func TestRegistrarEntradas_FundePorData(t *testing.T) {
	uc, animais := cenarioHistorico()
	animais.animais[animalTeste].Historico = map[string]any{
		usecase.SerieCCS: []any{
			map[string]any{"date": "2025-03-01", "valor": 200.0, "lab": "A"},
		},
	}

	out, err := uc.RegistrarEntradas(context.Background(), fazendaTeste, animalTeste, usecase.SerieCCS,
		[]map[string]any{
			{"date": "01/03/2025", "valor": 250.0},
			{"date": "2025-03-05", "valor": 180.0},
		})
	require.NoError(t, err)

	require.Len(t, out.Serie, 2, "formatos BR e ISO casam na mesma data")
	assert.Equal(t, 250.0, out.Serie[0]["valor"], "entrada nova vence no conflito")
	assert.Equal(t, "A", out.Serie[0]["lab"], "campo não enviado sobrevive")
	assert.Equal(t, "2025-03-05", out.Serie[1]["date"], "ordenada por data crescente")
}

func TestRegistrarEntradas_AnimalInexistente(t *testing.T) {
	uc, _ := cenarioHistorico()
	_, err := uc.RegistrarEntradas(context.Background(), fazendaTeste, "fantasma", usecase.SerieCMT,
		[]map[string]any{{"date": "2025-03-01", "resultado": "negativo"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
