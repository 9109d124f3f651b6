package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

var _ repository.ConversaRepository = (*ConversaRepo)(nil)

// ConversaRepo implementação do porto ConversaRepository sobre PostgreSQL.
// Mesma resolução de visibilidade do AuditoriaRepo: join com entidades.
type ConversaRepo struct {
	q Querier
}

// NewConversaRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewConversaRepository(q Querier) *ConversaRepo {
	return &ConversaRepo{q: q}
}

// Create persiste a conversa e preenche o ID gerado.
func (r *ConversaRepo) Create(ctx context.Context, conv *entity.Conversa) error {
	query := `
		INSERT INTO conversas (entidade_id, assunto, status, criada_em, ultima_atualizacao)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		conv.EntidadeID, conv.Assunto, conv.Status, conv.CriadaEm, conv.UltimaAtualizacao,
	).Scan(&conv.ID)
	if err != nil {
		return fmt.Errorf("insert conversa: %w", err)
	}
	return nil
}

// GetVisivel obtém a conversa se estiver no escopo do chamador.
func (r *ConversaRepo) GetVisivel(ctx context.Context, id, organizacaoID int64, entidadeID *int64) (*entity.Conversa, error) {
	query := `
		SELECT c.id, c.entidade_id, c.assunto, c.status, c.criada_em, c.ultima_atualizacao
		FROM conversas c
		JOIN entidades e ON e.id = c.entidade_id
		WHERE c.id = $1 AND e.organizacao_id = $2 AND ($3::bigint IS NULL OR c.entidade_id = $3)`
	var c entity.Conversa
	err := r.q.QueryRow(ctx, query, id, organizacaoID, entidadeID).Scan(
		&c.ID, &c.EntidadeID, &c.Assunto, &c.Status, &c.CriadaEm, &c.UltimaAtualizacao,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversa: %w", err)
	}
	return &c, nil
}

// ListVisiveis lista as conversas do escopo por última atualização decrescente.
func (r *ConversaRepo) ListVisiveis(ctx context.Context, organizacaoID int64, entidadeID *int64) ([]*entity.Conversa, error) {
	query := `
		SELECT c.id, c.entidade_id, c.assunto, c.status, c.criada_em, c.ultima_atualizacao
		FROM conversas c
		JOIN entidades e ON e.id = c.entidade_id
		WHERE e.organizacao_id = $1 AND ($2::bigint IS NULL OR c.entidade_id = $2)
		ORDER BY c.ultima_atualizacao DESC`
	rows, err := r.q.Query(ctx, query, organizacaoID, entidadeID)
	if err != nil {
		return nil, fmt.Errorf("list conversas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Conversa
	for rows.Next() {
		var c entity.Conversa
		if err := rows.Scan(&c.ID, &c.EntidadeID, &c.Assunto, &c.Status, &c.CriadaEm, &c.UltimaAtualizacao); err != nil {
			return nil, fmt.Errorf("scan conversa: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateStatus grava status e última atualização.
func (r *ConversaRepo) UpdateStatus(ctx context.Context, id int64, status string, quando time.Time) error {
	query := `UPDATE conversas SET status = $2, ultima_atualizacao = $3 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, status, quando); err != nil {
		return fmt.Errorf("update status conversa: %w", err)
	}
	return nil
}

// CreateMensagem persiste a mensagem e preenche o ID gerado.
func (r *ConversaRepo) CreateMensagem(ctx context.Context, msg *entity.Mensagem) error {
	query := `
		INSERT INTO mensagens (conversa_id, autor_id, autor_role, texto, enviada_em, lida)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		msg.ConversaID, msg.AutorID, msg.AutorRole, msg.Texto, msg.EnviadaEm,
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("insert mensagem: %w", err)
	}
	return nil
}

// ListMensagens devolve as mensagens em ordem de envio.
func (r *ConversaRepo) ListMensagens(ctx context.Context, conversaID int64) ([]*entity.Mensagem, error) {
	query := `
		SELECT id, conversa_id, autor_id, autor_role, texto, enviada_em, lida
		FROM mensagens WHERE conversa_id = $1 ORDER BY enviada_em, id`
	rows, err := r.q.Query(ctx, query, conversaID)
	if err != nil {
		return nil, fmt.Errorf("list mensagens: %w", err)
	}
	defer rows.Close()

	var list []*entity.Mensagem
	for rows.Next() {
		var m entity.Mensagem
		if err := rows.Scan(&m.ID, &m.ConversaID, &m.AutorID, &m.AutorRole, &m.Texto, &m.EnviadaEm, &m.Lida); err != nil {
			return nil, fmt.Errorf("scan mensagem: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountNaoLidas conta mensagens não lidas que não são do próprio leitor.
func (r *ConversaRepo) CountNaoLidas(ctx context.Context, conversaID, leitorID int64) (int, error) {
	query := `
		SELECT COUNT(*) FROM mensagens
		WHERE conversa_id = $1 AND autor_id <> $2 AND lida = false`
	var n int
	if err := r.q.QueryRow(ctx, query, conversaID, leitorID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count nao lidas: %w", err)
	}
	return n, nil
}

// MarcarLidas marca como lidas as mensagens de terceiros na conversa.
func (r *ConversaRepo) MarcarLidas(ctx context.Context, conversaID, leitorID int64) error {
	query := `
		UPDATE mensagens SET lida = true
		WHERE conversa_id = $1 AND autor_id <> $2 AND lida = false`
	if _, err := r.q.Exec(ctx, query, conversaID, leitorID); err != nil {
		return fmt.Errorf("marcar lidas: %w", err)
	}
	return nil
}
