package repository

import (
	"context"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

// EstoqueRepository define o porto para a linha de estoque por (produto, loja).
type EstoqueRepository interface {
	// Upsert cria a linha ou sobrescreve quantidade_sistema por inteiro.
	Upsert(ctx context.Context, estoque *entity.Estoque) error
	// SomaPorCategoria devolve SUM(quantidade_sistema) dos produtos da
	// organização cujo grupo casa com a categoria sem diferenciar caixa,
	// restrito à entidade. Congela a foto de sistema do escopo da auditoria.
	SomaPorCategoria(ctx context.Context, organizacaoID, entidadeID int64, categoria string) (int, error)
}
