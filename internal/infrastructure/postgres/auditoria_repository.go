package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementação do porto AuditoriaRepository sobre PostgreSQL.
// A visibilidade é resolvida no SQL: join com entidades filtra a organização
// e, quando informada, a loja — fora do escopo devolve (nil, nil).
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Create persiste a auditoria e preenche o ID gerado. O código de referência
// depende do ID, então é gravado em seguida por SetCodigoReferencia, na mesma
// transação.
func (r *AuditoriaRepo) Create(ctx context.Context, aud *entity.Auditoria) error {
	query := `
		INSERT INTO auditorias (entidade_id, nome, codigo_referencia, responsavel, data_inicio)
		VALUES ($1, $2, '', $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, aud.EntidadeID, aud.Nome, aud.Responsavel, aud.DataInicio).Scan(&aud.ID)
	if err != nil {
		return fmt.Errorf("insert auditoria: %w", err)
	}
	return nil
}

// SetCodigoReferencia grava o código legível depois do insert.
func (r *AuditoriaRepo) SetCodigoReferencia(ctx context.Context, id int64, codigo string) error {
	query := `UPDATE auditorias SET codigo_referencia = $2 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, codigo); err != nil {
		return fmt.Errorf("set codigo referencia: %w", err)
	}
	return nil
}

const auditoriaVisivelQuery = `
	SELECT a.id, a.entidade_id, a.nome, a.codigo_referencia, a.responsavel, a.data_inicio, a.data_fim
	FROM auditorias a
	JOIN entidades e ON e.id = a.entidade_id
	WHERE a.id = $1 AND e.organizacao_id = $2 AND ($3::bigint IS NULL OR a.entidade_id = $3)`

// GetVisivel obtém a auditoria se estiver no escopo do chamador.
func (r *AuditoriaRepo) GetVisivel(ctx context.Context, id, organizacaoID int64, entidadeID *int64) (*entity.Auditoria, error) {
	return r.getVisivel(ctx, auditoriaVisivelQuery, id, organizacaoID, entidadeID)
}

// GetVisivelForUpdate é a variante com bloqueio de linha. Contagem e
// finalização passam por aqui para serializar as duas operações.
func (r *AuditoriaRepo) GetVisivelForUpdate(ctx context.Context, id, organizacaoID int64, entidadeID *int64) (*entity.Auditoria, error) {
	return r.getVisivel(ctx, auditoriaVisivelQuery+`
	FOR UPDATE OF a`, id, organizacaoID, entidadeID)
}

func (r *AuditoriaRepo) getVisivel(ctx context.Context, query string, id, organizacaoID int64, entidadeID *int64) (*entity.Auditoria, error) {
	var a entity.Auditoria
	err := r.q.QueryRow(ctx, query, id, organizacaoID, entidadeID).Scan(
		&a.ID, &a.EntidadeID, &a.Nome, &a.CodigoReferencia, &a.Responsavel, &a.DataInicio, &a.DataFim,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get auditoria: %w", err)
	}
	return &a, nil
}

// ListVisiveis lista as auditorias do escopo, mais recentes primeiro.
func (r *AuditoriaRepo) ListVisiveis(ctx context.Context, organizacaoID int64, entidadeID *int64) ([]*entity.Auditoria, error) {
	query := `
		SELECT a.id, a.entidade_id, a.nome, a.codigo_referencia, a.responsavel, a.data_inicio, a.data_fim
		FROM auditorias a
		JOIN entidades e ON e.id = a.entidade_id
		WHERE e.organizacao_id = $1 AND ($2::bigint IS NULL OR a.entidade_id = $2)
		ORDER BY a.id DESC`
	rows, err := r.q.Query(ctx, query, organizacaoID, entidadeID)
	if err != nil {
		return nil, fmt.Errorf("list auditorias: %w", err)
	}
	defer rows.Close()

	var list []*entity.Auditoria
	for rows.Next() {
		var a entity.Auditoria
		if err := rows.Scan(&a.ID, &a.EntidadeID, &a.Nome, &a.CodigoReferencia, &a.Responsavel, &a.DataInicio, &a.DataFim); err != nil {
			return nil, fmt.Errorf("scan auditoria: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CreateEscopoItem persiste um item do escopo e preenche o ID gerado. Contagem
// e diferença nascem zeradas; só mudam quando chega uma contagem manual.
func (r *AuditoriaRepo) CreateEscopoItem(ctx context.Context, item *entity.EscopoItem) error {
	query := `
		INSERT INTO auditoria_escopo (auditoria_id, categoria_nome, qtd_sistema, qtd_contada, diferenca)
		VALUES ($1, $2, $3, 0, 0)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, item.AuditoriaID, item.CategoriaNome, item.QtdSistema).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert escopo item: %w", err)
	}
	return nil
}

// ListEscopo devolve os itens do escopo por nome de categoria.
func (r *AuditoriaRepo) ListEscopo(ctx context.Context, auditoriaID int64) ([]*entity.EscopoItem, error) {
	query := `
		SELECT id, auditoria_id, categoria_nome, qtd_sistema, qtd_contada, diferenca, data_contagem
		FROM auditoria_escopo WHERE auditoria_id = $1 ORDER BY categoria_nome`
	rows, err := r.q.Query(ctx, query, auditoriaID)
	if err != nil {
		return nil, fmt.Errorf("list escopo: %w", err)
	}
	defer rows.Close()

	var list []*entity.EscopoItem
	for rows.Next() {
		var it entity.EscopoItem
		if err := rows.Scan(&it.ID, &it.AuditoriaID, &it.CategoriaNome, &it.QtdSistema, &it.QtdContada, &it.Diferenca, &it.DataContagem); err != nil {
			return nil, fmt.Errorf("scan escopo item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateContagem grava contagem, diferença e data de contagem de um item.
func (r *AuditoriaRepo) UpdateContagem(ctx context.Context, item *entity.EscopoItem) error {
	query := `
		UPDATE auditoria_escopo SET qtd_contada = $2, diferenca = $3, data_contagem = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, item.ID, item.QtdContada, item.Diferenca, item.DataContagem)
	if err != nil {
		return fmt.Errorf("update contagem: %w", err)
	}
	return nil
}

// SetDataFim finaliza a auditoria.
func (r *AuditoriaRepo) SetDataFim(ctx context.Context, id int64, fim time.Time) error {
	query := `UPDATE auditorias SET data_fim = $2 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, fim); err != nil {
		return fmt.Errorf("set data fim: %w", err)
	}
	return nil
}

// Delete remove a auditoria; o escopo cai pelo ON DELETE CASCADE.
func (r *AuditoriaRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM auditorias WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete auditoria: %w", err)
	}
	return nil
}
