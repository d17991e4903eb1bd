package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/domain"
	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
)

// TouroUseCase operações de inventário de sêmen fora do fluxo de IA.
type TouroUseCase struct {
	touros repository.TouroRepository
}

// NewTouroUseCase constrói o caso de uso.
func NewTouroUseCase(touros repository.TouroRepository) *TouroUseCase {
	return &TouroUseCase{touros: touros}
}

// Comprar soma doses ao inventário do touro (aditivo) e, quando informado,
// atualiza o preço por dose. O débito fica a cargo do fluxo de IA.
func (uc *TouroUseCase) Comprar(ctx context.Context, fazendaID, touroID string, in dto.CompraDosesRequest) (*entity.Touro, error) {
	if in.Doses <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PrecoPorDose != nil && in.PrecoPorDose.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	touro, err := uc.touros.GetByID(fazendaID, touroID)
	if err != nil {
		return nil, err
	}
	if touro == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.touros.CreditarDoses(touroID, in.Doses, in.PrecoPorDose); err != nil {
		return nil, err
	}
	return uc.touros.GetByID(fazendaID, touroID)
}
