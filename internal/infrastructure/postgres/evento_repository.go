package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
)

var _ repository.EventoRepository = (*EventoRepo)(nil)

// EventoRepo log de eventos de reprodução (tabela eventos_reproducao).
// Diferente das tabelas de cadastro, o layout aqui é fixo: a tabela pertence
// ao próprio fluxo e nasce com ele.
type EventoRepo struct {
	q Querier
}

func NewEventoRepository(q Querier) *EventoRepo {
	return &EventoRepo{q: q}
}

const colunasEvento = `id, fazenda_id, animal_id, data, tipo, detalhes, resultado, protocolo_id, aplicacao_id, created_at`

func (r *EventoRepo) Create(ev *entity.EventoReproducao) error {
	query := fmt.Sprintf(`
		INSERT INTO eventos_reproducao (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`, colunasEvento)
	_, err := r.q.Exec(context.Background(), query,
		ev.ID, ev.FazendaID, ev.AnimalID, ev.Data, ev.Tipo,
		ev.Detalhes, ev.Resultado, ev.ProtocoloID, ev.AplicacaoID,
	)
	if err != nil {
		return fmt.Errorf("criar evento: %w", err)
	}
	return nil
}

func (r *EventoRepo) UltimaIA(animalID string, ate time.Time) (*entity.EventoReproducao, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM eventos_reproducao
		WHERE animal_id = $1 AND tipo = $2 AND data <= $3
		ORDER BY data DESC, created_at DESC
		LIMIT 1`, colunasEvento)
	row := r.q.QueryRow(context.Background(), query, animalID, entity.EventoIA, ate)
	ev, err := scanEvento(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ultima IA: %w", err)
	}
	return ev, nil
}

func (r *EventoRepo) ListByAnimal(fazendaID, animalID string) ([]*entity.EventoReproducao, error) {
	return r.listar(fazendaID, animalID, "DESC")
}

func (r *EventoRepo) ListByAnimalAsc(fazendaID, animalID string) ([]*entity.EventoReproducao, error) {
	return r.listar(fazendaID, animalID, "ASC")
}

func (r *EventoRepo) listar(fazendaID, animalID, ordem string) ([]*entity.EventoReproducao, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM eventos_reproducao
		WHERE fazenda_id = $1 AND animal_id = $2
		ORDER BY data %s, created_at %s`, colunasEvento, ordem, ordem)
	rows, err := r.q.Query(context.Background(), query, fazendaID, animalID)
	if err != nil {
		return nil, fmt.Errorf("listar eventos: %w", err)
	}
	defer rows.Close()

	var eventos []*entity.EventoReproducao
	for rows.Next() {
		ev, err := scanEvento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evento: %w", err)
		}
		eventos = append(eventos, ev)
	}
	return eventos, rows.Err()
}

func scanEvento(row pgx.Row) (*entity.EventoReproducao, error) {
	var ev entity.EventoReproducao
	err := row.Scan(
		&ev.ID, &ev.FazendaID, &ev.AnimalID, &ev.Data, &ev.Tipo,
		&ev.Detalhes, &ev.Resultado, &ev.ProtocoloID, &ev.AplicacaoID,
		&ev.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
