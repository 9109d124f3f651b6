package repository

import (
	"context"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

// UserRepository define o porto de persistência para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByUsernameAtivo devolve apenas contas ativas; é a busca usada na
	// autenticação.
	GetByUsernameAtivo(ctx context.Context, username string) (*entity.User, error)
	// GetByUsername ignora o flag ativo; usado internamente para rejeitar
	// cadastro duplicado mesmo de contas desativadas.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByOrganizacao(ctx context.Context, organizacaoID int64) ([]*entity.User, error)
}
