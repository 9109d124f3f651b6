package postgres

import (
	"context"
	"fmt"

	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação do porto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColunas = `id, organizacao_id, username, senha_hash, nome, role, entidade_id, ativo, criado_em, atualizado_em`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.OrganizacaoID, &u.Username, &u.SenhaHash, &u.Nome, &u.Role,
		&u.EntidadeID, &u.Ativo, &u.CriadoEm, &u.AtualizadoEm,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste um novo usuário e preenche o ID gerado.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (organizacao_id, username, senha_hash, nome, role, entidade_id, ativo, criado_em, atualizado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id, criado_em, atualizado_em`
	err := r.q.QueryRow(ctx, query,
		user.OrganizacaoID, user.Username, user.SenhaHash, user.Nome, user.Role,
		user.EntidadeID, user.Ativo,
	).Scan(&user.ID, &user.CriadoEm, &user.AtualizadoEm)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtém um usuário por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColunas + ` FROM users WHERE id = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByUsernameAtivo obtém um usuário ativo pelo username (busca do login).
func (r *UserRepo) GetByUsernameAtivo(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColunas + ` FROM users WHERE username = $1 AND ativo = true`
	u, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username ativo: %w", err)
	}
	return u, nil
}

// GetByUsername obtém um usuário pelo username, ativo ou não. Uma conta
// desativada ainda reserva o nome.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColunas + ` FROM users WHERE username = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// Update grava senha, loja, flag ativo e nome do usuário.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET senha_hash = $2, nome = $3, entidade_id = $4, ativo = $5, atualizado_em = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, user.ID, user.SenhaHash, user.Nome, user.EntidadeID, user.Ativo)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListByOrganizacao lista os usuários da organização por ordem de criação.
func (r *UserRepo) ListByOrganizacao(ctx context.Context, organizacaoID int64) ([]*entity.User, error) {
	query := `SELECT ` + userColunas + ` FROM users WHERE organizacao_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, organizacaoID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
