package repository

import "github.com/agrodata/fazenda-api/internal/domain/entity"

// LoteRepository leitura de lotes para o resolver de lotação.
// O CRUD de lotes passa pelo motor genérico.
type LoteRepository interface {
	// GetByID devolve nil quando o lote não existe ou não pertence à fazenda.
	GetByID(fazendaID, id string) (*entity.Lote, error)
}

// ProtocoloRepository leitura de protocolos para aplicação de etapas.
type ProtocoloRepository interface {
	// GetByID devolve nil quando o protocolo não existe ou não pertence à fazenda.
	GetByID(fazendaID, id string) (*entity.Protocolo, error)
}

// UserRepository porta de usuários (auth).
type UserRepository interface {
	Create(u *entity.User) error
	// FindByEmail devolve nil quando não há usuário com o email.
	FindByEmail(email string) (*entity.User, error)
}
