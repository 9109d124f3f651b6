package repository

import (
	"context"
	"time"
)

// ConfiguracaoRepository guarda a configuração tipada por organização.
// A última importação de estoque é uma coluna TIMESTAMPTZ dedicada, não um
// blob string: parsing e formatação ficam em pkg/brtime, nunca no banco.
type ConfiguracaoRepository interface {
	// GetUltimaAtualizacaoEstoque devolve nil quando nunca houve importação.
	GetUltimaAtualizacaoEstoque(ctx context.Context, organizacaoID int64) (*time.Time, error)
	SetUltimaAtualizacaoEstoque(ctx context.Context, organizacaoID int64, quando time.Time) error
}
