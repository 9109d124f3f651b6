package repository

import (
	"context"
	"time"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

// AuditoriaRepository define o porto de persistência do motor de auditoria.
//
// As buscas "visíveis" recebem o escopo do chamador (organização e,
// para usuários de loja, a entidade) e devolvem (nil, nil) quando a auditoria
// existe mas está fora dele: para o chamador, é como se não existisse.
type AuditoriaRepository interface {
	// Create persiste a auditoria e preenche o ID gerado.
	Create(ctx context.Context, aud *entity.Auditoria) error
	// SetCodigoReferencia grava o código "AUD-{ano}-{id}" após o insert.
	SetCodigoReferencia(ctx context.Context, id int64, codigo string) error

	GetVisivel(ctx context.Context, id, organizacaoID int64, entidadeID *int64) (*entity.Auditoria, error)
	// GetVisivelForUpdate é a variante com bloqueio de linha, usada por
	// contagem e finalização para serializar as duas operações.
	GetVisivelForUpdate(ctx context.Context, id, organizacaoID int64, entidadeID *int64) (*entity.Auditoria, error)
	// ListVisiveis devolve as auditorias do escopo, mais recentes primeiro (id desc).
	ListVisiveis(ctx context.Context, organizacaoID int64, entidadeID *int64) ([]*entity.Auditoria, error)

	CreateEscopoItem(ctx context.Context, item *entity.EscopoItem) error
	ListEscopo(ctx context.Context, auditoriaID int64) ([]*entity.EscopoItem, error)
	// UpdateContagem grava contagem, diferença e data de contagem de um item.
	UpdateContagem(ctx context.Context, item *entity.EscopoItem) error

	SetDataFim(ctx context.Context, id int64, fim time.Time) error
	// Delete remove a auditoria; o escopo cai em cascata.
	Delete(ctx context.Context, id int64) error
}
