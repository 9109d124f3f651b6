package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

var _ repository.ConfiguracaoRepository = (*ConfiguracaoRepo)(nil)

// ConfiguracaoRepo configuração tipada por organização. Uma linha por
// organização; o timestamp da última importação é TIMESTAMPTZ, nunca string.
type ConfiguracaoRepo struct {
	q Querier
}

// NewConfiguracaoRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewConfiguracaoRepository(q Querier) *ConfiguracaoRepo {
	return &ConfiguracaoRepo{q: q}
}

// GetUltimaAtualizacaoEstoque devolve nil quando a organização nunca importou.
func (r *ConfiguracaoRepo) GetUltimaAtualizacaoEstoque(ctx context.Context, organizacaoID int64) (*time.Time, error) {
	query := `
		SELECT ultima_atualizacao_estoque
		FROM organizacao_config WHERE organizacao_id = $1`
	var quando *time.Time
	err := r.q.QueryRow(ctx, query, organizacaoID).Scan(&quando)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ultima atualizacao estoque: %w", err)
	}
	return quando, nil
}

// SetUltimaAtualizacaoEstoque grava o instante da importação (upsert).
func (r *ConfiguracaoRepo) SetUltimaAtualizacaoEstoque(ctx context.Context, organizacaoID int64, quando time.Time) error {
	query := `
		INSERT INTO organizacao_config (organizacao_id, ultima_atualizacao_estoque)
		VALUES ($1, $2)
		ON CONFLICT (organizacao_id)
		DO UPDATE SET ultima_atualizacao_estoque = EXCLUDED.ultima_atualizacao_estoque`
	if _, err := r.q.Exec(ctx, query, organizacaoID, quando); err != nil {
		return fmt.Errorf("set ultima atualizacao estoque: %w", err)
	}
	return nil
}
