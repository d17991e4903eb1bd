package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
)

var _ repository.ProtocoloRepository = (*ProtocoloRepo)(nil)

// ProtocoloRepo leitura de protocolos hormonais para aplicação de etapas.
type ProtocoloRepo struct {
	q   Querier
	cat *SchemaCatalog
}

func NewProtocoloRepository(q Querier, cat *SchemaCatalog) *ProtocoloRepo {
	return &ProtocoloRepo{q: q, cat: cat}
}

func (r *ProtocoloRepo) GetByID(fazendaID, id string) (*entity.Protocolo, error) {
	args := []any{id}
	query := `SELECT * FROM protocolos WHERE id = $1`
	if col, ok := colunaDonoDe(r.cat, "protocolos"); ok && fazendaID != "" {
		args = append(args, fazendaID)
		query += fmt.Sprintf(" AND %s = $2", col)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("get protocolo: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get protocolo: %w", err)
		}
		return nil, nil
	}
	linha, err := rowToMap(rows)
	if err != nil {
		return nil, fmt.Errorf("scan protocolo: %w", err)
	}

	p := &entity.Protocolo{
		ID:        campoString(linha, "id"),
		FazendaID: primeiraString(linha, "fazenda_id", "owner_id", "usuario_id"),
		Nome:      campoString(linha, "nome"),
		Descricao: campoString(linha, "descricao"),
	}
	if t := campoTempo(linha, "created_at"); t != nil {
		p.CreatedAt = *t
	}
	if t := campoTempo(linha, "updated_at"); t != nil {
		p.UpdatedAt = *t
	}
	if bruto, ok := linha["etapas"]; ok && bruto != nil {
		etapas, err := etapasDeJSON(bruto)
		if err != nil {
			return nil, fmt.Errorf("etapas do protocolo %s: %w", id, err)
		}
		p.Etapas = etapas
	}
	return p, nil
}

// etapasDeJSON reconstrói as etapas a partir do valor já decodificado do
// jsonb (slice de mapas) reencodando-o para o tipo da entidade.
func etapasDeJSON(bruto any) ([]entity.EtapaProtocolo, error) {
	b, err := json.Marshal(bruto)
	if err != nil {
		return nil, err
	}
	var etapas []entity.EtapaProtocolo
	if err := json.Unmarshal(b, &etapas); err != nil {
		return nil, err
	}
	return etapas, nil
}
