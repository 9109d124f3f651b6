package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

// ProdutoRepository define o porto de persistência para Produto.
type ProdutoRepository interface {
	Create(ctx context.Context, produto *entity.Produto) error
	GetByID(ctx context.Context, id int64) (*entity.Produto, error)
	// GetByOrgENome casa o nome do item sem diferenciar caixa dentro da
	// organização (semântica do merge de importação).
	GetByOrgENome(ctx context.Context, organizacaoID int64, nomeItem string) (*entity.Produto, error)
	UpdateCusto(ctx context.Context, produtoID int64, custo decimal.Decimal) error
	UpdateGrupo(ctx context.Context, produtoID int64, grupo string) error
	// ListGrupos devolve os grupos distintos não vazios da organização, na
	// grafia em que foram gravados.
	ListGrupos(ctx context.Context, organizacaoID int64) ([]string, error)
}
