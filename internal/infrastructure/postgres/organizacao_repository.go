package postgres

import (
	"context"
	"fmt"

	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

var _ repository.OrganizacaoRepository = (*OrganizacaoRepo)(nil)

// OrganizacaoRepo implementação do porto OrganizacaoRepository sobre PostgreSQL.
type OrganizacaoRepo struct {
	q Querier
}

// NewOrganizacaoRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewOrganizacaoRepository(q Querier) *OrganizacaoRepo {
	return &OrganizacaoRepo{q: q}
}

// Create persiste uma nova organização e preenche o ID gerado.
func (r *OrganizacaoRepo) Create(ctx context.Context, org *entity.Organizacao) error {
	query := `
		INSERT INTO organizacoes (nome, criado_em, atualizado_em)
		VALUES ($1, now(), now())
		RETURNING id, criado_em, atualizado_em`
	err := r.q.QueryRow(ctx, query, org.Nome).Scan(&org.ID, &org.CriadoEm, &org.AtualizadoEm)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert organizacao: %w", err)
	}
	return nil
}

// GetByID obtém uma organização por ID.
func (r *OrganizacaoRepo) GetByID(ctx context.Context, id int64) (*entity.Organizacao, error) {
	query := `
		SELECT id, nome, criado_em, atualizado_em
		FROM organizacoes WHERE id = $1`
	var o entity.Organizacao
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.Nome, &o.CriadoEm, &o.AtualizadoEm)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organizacao: %w", err)
	}
	return &o, nil
}

// GetByNome obtém uma organização pelo nome exato.
func (r *OrganizacaoRepo) GetByNome(ctx context.Context, nome string) (*entity.Organizacao, error) {
	query := `
		SELECT id, nome, criado_em, atualizado_em
		FROM organizacoes WHERE nome = $1`
	var o entity.Organizacao
	err := r.q.QueryRow(ctx, query, nome).Scan(&o.ID, &o.Nome, &o.CriadoEm, &o.AtualizadoEm)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organizacao by nome: %w", err)
	}
	return &o, nil
}
