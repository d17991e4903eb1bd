package usecase

import (
	"context"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/domain"
	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
	"github.com/agrodata/fazenda-api/pkg/logger"
)

// LotacaoUseCase atribuição e leitura de lote do animal.
//
// A estratégia primária vem do boot (coluna dedicada quando o deployment a
// tem); se a escrita em coluna falhar, cai para a estratégia de documento em
// vez de devolver erro ao chamador. Toda edição dispara recontagem integral
// dos totais por lote.
type LotacaoUseCase struct {
	primario repository.LotacaoStore
	reserva  repository.LotacaoStore // nil quando o primário já é o de documento
	animais  repository.AnimalRepository
	lotes    repository.LoteRepository
	log      *logger.Logger
}

// NewLotacaoUseCase constrói o caso de uso. reserva pode ser nil.
func NewLotacaoUseCase(
	primario, reserva repository.LotacaoStore,
	animais repository.AnimalRepository,
	lotes repository.LoteRepository,
	log *logger.Logger,
) *LotacaoUseCase {
	return &LotacaoUseCase{primario: primario, reserva: reserva, animais: animais, lotes: lotes, log: log}
}

// Atribuir vincula o animal ao lote (loteID vazio remove o vínculo) e
// devolve a atribuição materializada.
func (uc *LotacaoUseCase) Atribuir(ctx context.Context, fazendaID, animalID, loteID string) (*dto.LotacaoResponse, error) {
	animal, err := uc.animais.GetByID(fazendaID, animalID)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}

	var lote *entity.Lote
	if loteID != "" {
		lote, err = uc.lotes.GetByID(fazendaID, loteID)
		if err != nil {
			return nil, err
		}
		if lote == nil {
			return nil, domain.ErrNotFound
		}
	}

	if err := uc.primario.Atribuir(fazendaID, animalID, lote); err != nil {
		if uc.reserva == nil {
			return nil, err
		}
		uc.log.Warn().Err(err).Str("animal_id", animalID).
			Msg("escrita de lote em coluna falhou; usando documento de histórico")
		if err := uc.reserva.Atribuir(fazendaID, animalID, lote); err != nil {
			return nil, err
		}
	}

	uc.recontar(fazendaID)
	return uc.Ler(ctx, fazendaID, animalID)
}

// Ler materializa a atribuição atual do animal.
func (uc *LotacaoUseCase) Ler(ctx context.Context, fazendaID, animalID string) (*dto.LotacaoResponse, error) {
	animal, err := uc.animais.GetByID(fazendaID, animalID)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}
	l, err := uc.primario.Ler(fazendaID, animalID)
	if err != nil {
		return nil, err
	}
	if (l == nil || l.LoteID == "") && uc.reserva != nil {
		if r, err := uc.reserva.Ler(fazendaID, animalID); err == nil && r != nil && r.LoteID != "" {
			l = r
		}
	}
	if l == nil || l.LoteID == "" {
		return &dto.LotacaoResponse{Source: entity.FonteNenhuma}, nil
	}
	return &dto.LotacaoResponse{LotID: l.LoteID, LotName: l.LoteNome, Source: l.Fonte}, nil
}

// LoteRemovido gancho do delete genérico de lotes: remove as atribuições que
// apontavam para o lote e reconta os totais restantes.
func (uc *LotacaoUseCase) LoteRemovido(ctx context.Context, fazendaID, loteID string) error {
	if err := uc.primario.RemoverLote(fazendaID, loteID); err != nil {
		return err
	}
	if uc.reserva != nil {
		if err := uc.reserva.RemoverLote(fazendaID, loteID); err != nil {
			uc.log.Warn().Err(err).Str("lote_id", loteID).Msg("limpeza de lotações no documento falhou")
		}
	}
	uc.recontar(fazendaID)
	return nil
}

// recontar recomputação integral dos totais, best-effort: contagem defasada
// não derruba a operação que a disparou.
func (uc *LotacaoUseCase) recontar(fazendaID string) {
	if err := uc.primario.RecontarTotais(fazendaID); err != nil {
		uc.log.Warn().Err(err).Str("fazenda_id", fazendaID).Msg("recontagem de lotes falhou")
	}
}
