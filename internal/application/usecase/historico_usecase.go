package usecase

import (
	"context"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/domain"
	"github.com/agrodata/fazenda-api/internal/domain/historico"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
	domrep "github.com/agrodata/fazenda-api/internal/domain/reproducao"
)

// Séries aceitas no documento de histórico do animal.
const (
	SerieLeite = "leite"
	SerieCCS   = "ccs"
	SerieCMT   = "cmt"
)

// HistoricoUseCase append com merge-por-data nas séries do animal
// (litros de leite, contagem de células somáticas, teste de mastite).
// Uma entrada para data já existente é fundida campo a campo; o cliente que
// manda só a leitura de hoje nunca apaga a de ontem.
type HistoricoUseCase struct {
	animais repository.AnimalRepository
}

// NewHistoricoUseCase constrói o caso de uso.
func NewHistoricoUseCase(animais repository.AnimalRepository) *HistoricoUseCase {
	return &HistoricoUseCase{animais: animais}
}

// RegistrarEntradas funde as entradas na série indicada e devolve a série
// resultante, ordenada por data crescente.
func (uc *HistoricoUseCase) RegistrarEntradas(ctx context.Context, fazendaID, animalID, serie string, entradas []map[string]any) (*dto.SerieResponse, error) {
	if serie != SerieLeite && serie != SerieCCS && serie != SerieCMT {
		return nil, domain.ErrInvalidInput
	}
	if len(entradas) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, e := range entradas {
		data, _ := e["date"].(string)
		if _, err := domrep.ParseData(data); err != nil {
			return nil, err
		}
	}

	animal, err := uc.animais.GetByID(fazendaID, animalID)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}

	doc, err := uc.animais.GetHistorico(fazendaID, animalID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}

	atual := serieDoDocumento(doc, serie)
	fundida := historico.MergeSeries(atual, entradas)
	doc[serie] = fundida
	if err := uc.animais.SetHistorico(animalID, doc); err != nil {
		return nil, err
	}
	return &dto.SerieResponse{Ok: true, Serie: fundida}, nil
}

func serieDoDocumento(doc map[string]any, serie string) []map[string]any {
	bruto, ok := doc[serie].([]any)
	if !ok {
		if pronta, ok := doc[serie].([]map[string]any); ok {
			return pronta
		}
		return nil
	}
	saida := make([]map[string]any, 0, len(bruto))
	for _, e := range bruto {
		if m, ok := e.(map[string]any); ok {
			saida = append(saida, m)
		}
	}
	return saida
}
