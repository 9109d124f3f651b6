package repository

import (
	"context"
	"time"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

// ConversaRepository define o porto de persistência da mensageria.
// Mesma convenção de visibilidade do AuditoriaRepository: fora do escopo do
// chamador, (nil, nil).
type ConversaRepository interface {
	Create(ctx context.Context, conv *entity.Conversa) error
	GetVisivel(ctx context.Context, id, organizacaoID int64, entidadeID *int64) (*entity.Conversa, error)
	// ListVisiveis ordena por última atualização decrescente.
	ListVisiveis(ctx context.Context, organizacaoID int64, entidadeID *int64) ([]*entity.Conversa, error)
	UpdateStatus(ctx context.Context, id int64, status string, quando time.Time) error

	CreateMensagem(ctx context.Context, msg *entity.Mensagem) error
	// ListMensagens devolve as mensagens em ordem de envio.
	ListMensagens(ctx context.Context, conversaID int64) ([]*entity.Mensagem, error)
	// CountNaoLidas conta mensagens não lidas que não são do próprio leitor.
	CountNaoLidas(ctx context.Context, conversaID, leitorID int64) (int, error)
	// MarcarLidas marca como lidas as mensagens de terceiros; efeito colateral
	// da leitura do detalhe.
	MarcarLidas(ctx context.Context, conversaID, leitorID int64) error
}
