package repository

import (
	"time"

	"github.com/agrodata/fazenda-api/internal/domain/entity"
)

// EventoRepository porta do log de eventos de reprodução.
type EventoRepository interface {
	Create(ev *entity.EventoReproducao) error
	// UltimaIA devolve a IA mais recente do animal datada até `ate`
	// (inclusive), ou nil se não houver IA pareável.
	UltimaIA(animalID string, ate time.Time) (*entity.EventoReproducao, error)
	// ListByAnimal histórico do animal, mais recente primeiro.
	ListByAnimal(fazendaID, animalID string) ([]*entity.EventoReproducao, error)
	// ListByAnimalAsc histórico em ordem cronológica, para recomputação.
	ListByAnimalAsc(fazendaID, animalID string) ([]*entity.EventoReproducao, error)
}
