package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo implementação do porto ProdutoRepository sobre PostgreSQL.
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

// Create persiste um novo produto e preenche o ID gerado.
func (r *ProdutoRepo) Create(ctx context.Context, produto *entity.Produto) error {
	query := `
		INSERT INTO produtos (organizacao_id, nome_item, grupo, custo, criado_em, atualizado_em)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, criado_em, atualizado_em`
	err := r.q.QueryRow(ctx, query,
		produto.OrganizacaoID, produto.NomeItem, produto.Grupo, produto.Custo,
	).Scan(&produto.ID, &produto.CriadoEm, &produto.AtualizadoEm)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID.
func (r *ProdutoRepo) GetByID(ctx context.Context, id int64) (*entity.Produto, error) {
	query := `
		SELECT id, organizacao_id, nome_item, grupo, custo, criado_em, atualizado_em
		FROM produtos WHERE id = $1`
	var p entity.Produto
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.OrganizacaoID, &p.NomeItem, &p.Grupo, &p.Custo, &p.CriadoEm, &p.AtualizadoEm,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return &p, nil
}

// GetByOrgENome obtém um produto pelo nome do item sem diferenciar caixa,
// dentro da organização.
func (r *ProdutoRepo) GetByOrgENome(ctx context.Context, organizacaoID int64, nomeItem string) (*entity.Produto, error) {
	query := `
		SELECT id, organizacao_id, nome_item, grupo, custo, criado_em, atualizado_em
		FROM produtos WHERE organizacao_id = $1 AND LOWER(nome_item) = LOWER($2)`
	var p entity.Produto
	err := r.q.QueryRow(ctx, query, organizacaoID, nomeItem).Scan(
		&p.ID, &p.OrganizacaoID, &p.NomeItem, &p.Grupo, &p.Custo, &p.CriadoEm, &p.AtualizadoEm,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto by nome: %w", err)
	}
	return &p, nil
}

// UpdateCusto grava o custo atual do produto.
func (r *ProdutoRepo) UpdateCusto(ctx context.Context, produtoID int64, custo decimal.Decimal) error {
	query := `UPDATE produtos SET custo = $2, atualizado_em = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, produtoID, custo); err != nil {
		return fmt.Errorf("update custo: %w", err)
	}
	return nil
}

// UpdateGrupo grava o grupo (categoria) do produto.
func (r *ProdutoRepo) UpdateGrupo(ctx context.Context, produtoID int64, grupo string) error {
	query := `UPDATE produtos SET grupo = $2, atualizado_em = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, produtoID, grupo); err != nil {
		return fmt.Errorf("update grupo: %w", err)
	}
	return nil
}

// ListGrupos devolve os grupos distintos não vazios da organização.
func (r *ProdutoRepo) ListGrupos(ctx context.Context, organizacaoID int64) ([]string, error) {
	query := `
		SELECT DISTINCT grupo FROM produtos
		WHERE organizacao_id = $1 AND grupo <> ''
		ORDER BY grupo`
	rows, err := r.q.Query(ctx, query, organizacaoID)
	if err != nil {
		return nil, fmt.Errorf("list grupos: %w", err)
	}
	defer rows.Close()

	var grupos []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scan grupo: %w", err)
		}
		grupos = append(grupos, g)
	}
	return grupos, rows.Err()
}
