package reproducao

import (
	"context"

	"github.com/agrodata/fazenda-api/internal/domain/repository"
)

// TxRunner executa fn com repositórios atados a uma transação do storage;
// Commit se fn devolver nil, Rollback caso contrário. É o limite de
// atomicidade da inseminação: débito de dose, evento e campos derivados
// entram ou saem juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		eventos repository.EventoRepository,
		touros repository.TouroRepository,
		animais repository.AnimalRepository,
	) error) error
}
