package postgres

import (
	"context"
	"fmt"

	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

var _ repository.EntidadeRepository = (*EntidadeRepo)(nil)

// EntidadeRepo implementação do porto EntidadeRepository sobre PostgreSQL.
type EntidadeRepo struct {
	q Querier
}

// NewEntidadeRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewEntidadeRepository(q Querier) *EntidadeRepo {
	return &EntidadeRepo{q: q}
}

// Create persiste uma nova loja e preenche o ID gerado.
func (r *EntidadeRepo) Create(ctx context.Context, ent *entity.Entidade) error {
	query := `
		INSERT INTO entidades (organizacao_id, nome, criado_em)
		VALUES ($1, $2, now())
		RETURNING id, criado_em`
	err := r.q.QueryRow(ctx, query, ent.OrganizacaoID, ent.Nome).Scan(&ent.ID, &ent.CriadoEm)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert entidade: %w", err)
	}
	return nil
}

// GetByID obtém uma loja por ID.
func (r *EntidadeRepo) GetByID(ctx context.Context, id int64) (*entity.Entidade, error) {
	query := `
		SELECT id, organizacao_id, nome, criado_em
		FROM entidades WHERE id = $1`
	var e entity.Entidade
	err := r.q.QueryRow(ctx, query, id).Scan(&e.ID, &e.OrganizacaoID, &e.Nome, &e.CriadoEm)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entidade: %w", err)
	}
	return &e, nil
}

// GetByOrgENome obtém uma loja pelo nome sem diferenciar caixa, dentro da organização.
func (r *EntidadeRepo) GetByOrgENome(ctx context.Context, organizacaoID int64, nome string) (*entity.Entidade, error) {
	query := `
		SELECT id, organizacao_id, nome, criado_em
		FROM entidades WHERE organizacao_id = $1 AND LOWER(nome) = LOWER($2)`
	var e entity.Entidade
	err := r.q.QueryRow(ctx, query, organizacaoID, nome).Scan(&e.ID, &e.OrganizacaoID, &e.Nome, &e.CriadoEm)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entidade by nome: %w", err)
	}
	return &e, nil
}

// ListByOrganizacao lista as lojas da organização por ordem de criação.
func (r *EntidadeRepo) ListByOrganizacao(ctx context.Context, organizacaoID int64) ([]*entity.Entidade, error) {
	query := `
		SELECT id, organizacao_id, nome, criado_em
		FROM entidades WHERE organizacao_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, organizacaoID)
	if err != nil {
		return nil, fmt.Errorf("list entidades: %w", err)
	}
	defer rows.Close()

	var list []*entity.Entidade
	for rows.Next() {
		var e entity.Entidade
		if err := rows.Scan(&e.ID, &e.OrganizacaoID, &e.Nome, &e.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan entidade: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
