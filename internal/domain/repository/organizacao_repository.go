package repository

import (
	"context"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

// OrganizacaoRepository define o porto de persistência para Organizacao (DIP).
// A implementação vive em infrastructure.
type OrganizacaoRepository interface {
	Create(ctx context.Context, org *entity.Organizacao) error
	GetByID(ctx context.Context, id int64) (*entity.Organizacao, error)
	GetByNome(ctx context.Context, nome string) (*entity.Organizacao, error)
}
