package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/application/usecase"
	"github.com/agrodata/fazenda-api/internal/domain"
	"github.com/agrodata/fazenda-api/internal/domain/entity"
)

const touroTeste = "touro-1"

type fakeTouros struct{ touros map[string]*entity.Touro }

func (f *fakeTouros) GetByID(fazendaID, id string) (*entity.Touro, error) {
	return f.touros[id], nil
}

func (f *fakeTouros) GetForUpdate(fazendaID, id string) (*entity.Touro, error) {
	return f.GetByID(fazendaID, id)
}

func (f *fakeTouros) DebitarDose(id string) error {
	f.touros[id].DosesRestantes--
	return nil
}

func (f *fakeTouros) CreditarDoses(id string, doses int, preco *decimal.Decimal) error {
	t := f.touros[id]
	t.DosesAdquiridas += doses
	t.DosesRestantes += doses
	if preco != nil {
		t.PrecoPorDose = *preco
	}
	return nil
}

func cenarioTouro() (*usecase.TouroUseCase, *fakeTouros) {
	touros := &fakeTouros{touros: map[string]*entity.Touro{
		touroTeste: {
			ID: touroTeste, FazendaID: fazendaTeste, Nome: "Sultão",
			DosesAdquiridas: 10, DosesRestantes: 3,
			PrecoPorDose: decimal.NewFromFloat(45.0),
		},
	}}
	return usecase.NewTouroUseCase(touros), touros
}

func TestComprar_SomaDosesAoInventario(t *testing.T) {
	uc, _ := cenarioTouro()

	out, err := uc.Comprar(context.Background(), fazendaTeste, touroTeste, dto.CompraDosesRequest{Doses: 20})
	require.NoError(t, err)

	assert.Equal(t, 30, out.DosesAdquiridas, "compra é aditiva")
	assert.Equal(t, 23, out.DosesRestantes)
	assert.True(t, out.PrecoPorDose.Equal(decimal.NewFromFloat(45.0)), "sem preço informado, o anterior fica")
}

func TestComprar_AtualizaOPrecoQuandoInformado(t *testing.T) {
	uc, _ := cenarioTouro()
	preco := decimal.NewFromFloat(52.5)

	out, err := uc.Comprar(context.Background(), fazendaTeste, touroTeste, dto.CompraDosesRequest{
		Doses: 5, PrecoPorDose: &preco,
	})
	require.NoError(t, err)
	assert.True(t, out.PrecoPorDose.Equal(preco))
}

func TestComprar_QuantidadeInvalida(t *testing.T) {
	uc, touros := cenarioTouro()

	for _, doses := range []int{0, -3} {
		_, err := uc.Comprar(context.Background(), fazendaTeste, touroTeste, dto.CompraDosesRequest{Doses: doses})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, 10, touros.touros[touroTeste].DosesAdquiridas, "inventário intocado")
}

func TestComprar_PrecoNegativo(t *testing.T) {
	uc, _ := cenarioTouro()
	preco := decimal.NewFromInt(-1)

	_, err := uc.Comprar(context.Background(), fazendaTeste, touroTeste, dto.CompraDosesRequest{
		Doses: 5, PrecoPorDose: &preco,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComprar_TouroInexistente(t *testing.T) {
	uc, _ := cenarioTouro()
	_, err := uc.Comprar(context.Background(), fazendaTeste, "fantasma", dto.CompraDosesRequest{Doses: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
