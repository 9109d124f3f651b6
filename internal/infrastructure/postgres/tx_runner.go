package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appaud "github.com/pbarcelos/auditoria-api/internal/application/auditoria"
	"github.com/pbarcelos/auditoria-api/internal/application/auth"
	"github.com/pbarcelos/auditoria-api/internal/application/estoque"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

var (
	_ auth.SignupTxRunner    = (*TxRunner)(nil)
	_ estoque.ImportTxRunner = (*TxRunner)(nil)
	_ appaud.TxRunner        = (*TxRunner)(nil)
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL, com
// repositórios atados à transação.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner sobre o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSignup transação do cadastro: organização + conta admin.
func (r *TxRunner) RunSignup(ctx context.Context, fn func(
	orgRepo repository.OrganizacaoRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewOrganizacaoRepository(q), NewUserRepository(q))
	})
}

// RunImportacao transação do merge de planilha: commit único no fim do lote.
func (r *TxRunner) RunImportacao(ctx context.Context, fn func(
	produtoRepo repository.ProdutoRepository,
	estoqueRepo repository.EstoqueRepository,
	configRepo repository.ConfiguracaoRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProdutoRepository(q), NewEstoqueRepository(q), NewConfiguracaoRepository(q))
	})
}

// RunAuditoria transação do motor de auditoria: criação com escopo congelado,
// contagem e finalização disputam o mesmo bloqueio de linha.
func (r *TxRunner) RunAuditoria(ctx context.Context, fn func(
	audRepo repository.AuditoriaRepository,
	estoqueRepo repository.EstoqueRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewAuditoriaRepository(q), NewEstoqueRepository(q))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
