package repository

import (
	"context"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

// EntidadeRepository define o porto de persistência para Entidade (loja).
type EntidadeRepository interface {
	Create(ctx context.Context, ent *entity.Entidade) error
	GetByID(ctx context.Context, id int64) (*entity.Entidade, error)
	// GetByOrgENome casa o nome sem diferenciar caixa, para impor unicidade
	// dentro da organização.
	GetByOrgENome(ctx context.Context, organizacaoID int64, nome string) (*entity.Entidade, error)
	ListByOrganizacao(ctx context.Context, organizacaoID int64) ([]*entity.Entidade, error)
}
