// Package mensagens implementa a mensageria entre lojas e administração:
// abertura, resposta, leitura com marcação de lidas e encerramento. O ciclo de
// vida vem da tabela de transições em internal/domain/conversa.
package mensagens

import (
	"context"
	"strings"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	domconv "github.com/pbarcelos/auditoria-api/internal/domain/conversa"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
)

// UseCase operações de conversa dentro do escopo do chamador.
type UseCase struct {
	convRepo repository.ConversaRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(convRepo repository.ConversaRepository) *UseCase {
	return &UseCase{convRepo: convRepo}
}

// Abrir cria uma conversa da loja do chamador com a primeira mensagem. Apenas
// contas de loja abrem conversas; admin responde nas existentes.
func (uc *UseCase) Abrir(ctx context.Context, caller authz.Caller, in dto.AbrirConversaRequest) (*dto.ConversaDetalhe, error) {
	if !domconv.PodeAbrir(caller.Role) {
		return nil, domain.ErrAcessoNegado
	}
	if caller.EntidadeID == nil {
		return nil, domain.ErrAcessoNegado
	}
	assunto := strings.TrimSpace(in.Assunto)
	texto := strings.TrimSpace(in.Texto)
	if assunto == "" || texto == "" {
		return nil, domain.ErrEntradaInvalida
	}

	agora := brtime.Agora()
	conv := &entity.Conversa{
		EntidadeID:        *caller.EntidadeID,
		Assunto:           assunto,
		Status:            entity.ConversaAberta,
		CriadaEm:          agora,
		UltimaAtualizacao: agora,
	}
	if err := uc.convRepo.Create(ctx, conv); err != nil {
		return nil, err
	}
	msg := &entity.Mensagem{
		ConversaID: conv.ID,
		AutorID:    caller.UserID,
		AutorRole:  caller.Role,
		Texto:      texto,
		EnviadaEm:  agora,
	}
	if err := uc.convRepo.CreateMensagem(ctx, msg); err != nil {
		return nil, err
	}
	return montarDetalhe(conv, []*entity.Mensagem{msg}, 0), nil
}

// Listar devolve as conversas visíveis, mais recentes primeiro, cada uma com a
// contagem de mensagens ainda não lidas pelo chamador.
func (uc *UseCase) Listar(ctx context.Context, caller authz.Caller) ([]dto.ConversaResumo, error) {
	org, entidadeID := authz.EscopoLeitura(caller)
	convs, err := uc.convRepo.ListVisiveis(ctx, org, entidadeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConversaResumo, 0, len(convs))
	for _, conv := range convs {
		naoLidas, err := uc.convRepo.CountNaoLidas(ctx, conv.ID, caller.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, montarResumo(conv, naoLidas))
	}
	return out, nil
}

// Detalhar carrega a conversa com todas as mensagens e, como efeito colateral,
// marca como lidas as mensagens de terceiros.
func (uc *UseCase) Detalhar(ctx context.Context, caller authz.Caller, conversaID int64) (*dto.ConversaDetalhe, error) {
	conv, err := uc.visivel(ctx, caller, conversaID)
	if err != nil {
		return nil, err
	}
	if err := uc.convRepo.MarcarLidas(ctx, conv.ID, caller.UserID); err != nil {
		return nil, err
	}
	msgs, err := uc.convRepo.ListMensagens(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	return montarDetalhe(conv, msgs, 0), nil
}

// Responder adiciona uma mensagem e vira o status conforme o papel do autor.
// Conversa fechada não aceita resposta.
func (uc *UseCase) Responder(ctx context.Context, caller authz.Caller, conversaID int64, in dto.ResponderRequest) (*dto.ConversaDetalhe, error) {
	texto := strings.TrimSpace(in.Texto)
	if texto == "" {
		return nil, domain.ErrEntradaInvalida
	}
	conv, err := uc.visivel(ctx, caller, conversaID)
	if err != nil {
		return nil, err
	}
	prox, err := domconv.AplicarResposta(conv.Status, caller.Role)
	if err != nil {
		return nil, err
	}

	agora := brtime.Agora()
	msg := &entity.Mensagem{
		ConversaID: conv.ID,
		AutorID:    caller.UserID,
		AutorRole:  caller.Role,
		Texto:      texto,
		EnviadaEm:  agora,
	}
	if err := uc.convRepo.CreateMensagem(ctx, msg); err != nil {
		return nil, err
	}
	if err := uc.convRepo.UpdateStatus(ctx, conv.ID, prox, agora); err != nil {
		return nil, err
	}
	conv.Status = prox
	conv.UltimaAtualizacao = agora

	msgs, err := uc.convRepo.ListMensagens(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	naoLidas, err := uc.convRepo.CountNaoLidas(ctx, conv.ID, caller.UserID)
	if err != nil {
		return nil, err
	}
	return montarDetalhe(conv, msgs, naoLidas), nil
}

// Fechar encerra a conversa. Apenas admin; FECHADA é terminal e fechar de novo
// é erro.
func (uc *UseCase) Fechar(ctx context.Context, caller authz.Caller, conversaID int64) (*dto.ConversaResumo, error) {
	conv, err := uc.visivel(ctx, caller, conversaID)
	if err != nil {
		return nil, err
	}
	if err := domconv.PodeFechar(conv.Status, caller.Role); err != nil {
		return nil, err
	}

	agora := brtime.Agora()
	if err := uc.convRepo.UpdateStatus(ctx, conv.ID, entity.ConversaFechada, agora); err != nil {
		return nil, err
	}
	conv.Status = entity.ConversaFechada
	conv.UltimaAtualizacao = agora
	resumo := montarResumo(conv, 0)
	return &resumo, nil
}

func (uc *UseCase) visivel(ctx context.Context, caller authz.Caller, conversaID int64) (*entity.Conversa, error) {
	org, entidadeID := authz.EscopoLeitura(caller)
	conv, err := uc.convRepo.GetVisivel(ctx, conversaID, org, entidadeID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return conv, nil
}

func montarResumo(conv *entity.Conversa, naoLidas int) dto.ConversaResumo {
	return dto.ConversaResumo{
		ID:                conv.ID,
		EntidadeID:        conv.EntidadeID,
		Assunto:           conv.Assunto,
		Status:            conv.Status,
		NaoLidas:          naoLidas,
		UltimaAtualizacao: conv.UltimaAtualizacao,
	}
}

func montarDetalhe(conv *entity.Conversa, msgs []*entity.Mensagem, naoLidas int) *dto.ConversaDetalhe {
	d := &dto.ConversaDetalhe{
		ConversaResumo: montarResumo(conv, naoLidas),
		Mensagens:      make([]dto.MensagemResponse, 0, len(msgs)),
	}
	for _, m := range msgs {
		d.Mensagens = append(d.Mensagens, dto.MensagemResponse{
			ID:        m.ID,
			AutorID:   m.AutorID,
			AutorRole: m.AutorRole,
			Texto:     m.Texto,
			EnviadaEm: m.EnviadaEm,
			Lida:      m.Lida,
		})
	}
	return d
}
