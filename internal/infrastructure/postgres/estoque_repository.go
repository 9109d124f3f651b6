package postgres

import (
	"context"
	"fmt"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

var _ repository.EstoqueRepository = (*EstoqueRepo)(nil)

// EstoqueRepo implementação do porto EstoqueRepository sobre PostgreSQL.
type EstoqueRepo struct {
	q Querier
}

// NewEstoqueRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewEstoqueRepository(q Querier) *EstoqueRepo {
	return &EstoqueRepo{q: q}
}

// Upsert cria ou sobrescreve por inteiro a linha de estoque (produto, loja).
func (r *EstoqueRepo) Upsert(ctx context.Context, estoque *entity.Estoque) error {
	query := `
		INSERT INTO estoques (produto_id, entidade_id, quantidade_sistema, atualizado_em)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (produto_id, entidade_id)
		DO UPDATE SET quantidade_sistema = EXCLUDED.quantidade_sistema, atualizado_em = now()`
	_, err := r.q.Exec(ctx, query, estoque.ProdutoID, estoque.EntidadeID, estoque.QuantidadeSistema)
	if err != nil {
		return fmt.Errorf("upsert estoque: %w", err)
	}
	return nil
}

// SomaPorCategoria soma quantidade_sistema dos produtos da organização cujo
// grupo casa com a categoria sem diferenciar caixa, restrito à loja. Categoria
// sem produto soma 0.
func (r *EstoqueRepo) SomaPorCategoria(ctx context.Context, organizacaoID, entidadeID int64, categoria string) (int, error) {
	query := `
		SELECT COALESCE(SUM(e.quantidade_sistema), 0)
		FROM estoques e
		JOIN produtos p ON p.id = e.produto_id
		WHERE p.organizacao_id = $1 AND e.entidade_id = $2 AND LOWER(p.grupo) = LOWER($3)`
	var soma int
	if err := r.q.QueryRow(ctx, query, organizacaoID, entidadeID, categoria).Scan(&soma); err != nil {
		return 0, fmt.Errorf("soma estoque por categoria: %w", err)
	}
	return soma, nil
}
