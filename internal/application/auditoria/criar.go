package auditoria

import (
	"context"
	"strings"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	domaud "github.com/pbarcelos/auditoria-api/internal/domain/auditoria"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
)

// CriarUseCase abre uma auditoria com o escopo de categorias congelado na
// criação.
type CriarUseCase struct {
	tx           TxRunner
	configRepo   repository.ConfiguracaoRepository
	entidadeRepo repository.EntidadeRepository
}

// NewCriarUseCase constrói o caso de uso.
func NewCriarUseCase(tx TxRunner, configRepo repository.ConfiguracaoRepository, entidadeRepo repository.EntidadeRepository) *CriarUseCase {
	return &CriarUseCase{tx: tx, configRepo: configRepo, entidadeRepo: entidadeRepo}
}

// Criar valida a guarda do dia, resolve a loja alvo e persiste auditoria +
// escopo em uma única transação. A quantidade de sistema de cada categoria é
// somada do estoque naquele instante e nunca mais recalculada.
func (uc *CriarUseCase) Criar(ctx context.Context, caller authz.Caller, in dto.CriarAuditoriaRequest) (*dto.AuditoriaDetalhe, error) {
	if strings.TrimSpace(in.Responsavel) == "" || len(in.CategoriasEscopo) == 0 {
		return nil, domain.ErrEntradaInvalida
	}

	// Uma auditoria só pode abrir no mesmo dia (calendário de São Paulo) da
	// última importação de estoque; contar contra uma foto velha não faz sentido.
	agora := brtime.Agora()
	ultima, err := uc.configRepo.GetUltimaAtualizacaoEstoque(ctx, caller.OrganizacaoID)
	if err != nil {
		return nil, err
	}
	if ultima == nil || !brtime.MesmoDia(*ultima, agora) {
		return nil, domain.ErrEstoqueDesatualizado
	}

	decisao, err := authz.ResolverEntidade(ctx, uc.entidadeRepo, caller, in.EntidadeID)
	if err != nil {
		return nil, err
	}
	switch decisao.Efeito {
	case authz.Negado:
		return nil, domain.ErrAcessoNegado
	case authz.NaoEncontrado:
		return nil, domain.ErrNaoEncontrado
	}
	ent, err := uc.entidadeRepo.GetByID(ctx, decisao.EntidadeID)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, domain.ErrNaoEncontrado
	}

	aud := &entity.Auditoria{
		EntidadeID:  ent.ID,
		Nome:        domaud.NomeAuditoria(ent.Nome, agora),
		Responsavel: strings.TrimSpace(in.Responsavel),
		DataInicio:  agora,
	}
	var escopo []*entity.EscopoItem

	err = uc.tx.RunAuditoria(ctx, func(audRepo repository.AuditoriaRepository, estoqueRepo repository.EstoqueRepository) error {
		if err := audRepo.Create(ctx, aud); err != nil {
			return err
		}
		aud.CodigoReferencia = domaud.CodigoReferencia(agora.Year(), aud.ID)
		if err := audRepo.SetCodigoReferencia(ctx, aud.ID, aud.CodigoReferencia); err != nil {
			return err
		}

		for _, categoria := range dedup(in.CategoriasEscopo) {
			qtdSistema, err := estoqueRepo.SomaPorCategoria(ctx, caller.OrganizacaoID, ent.ID, categoria)
			if err != nil {
				return err
			}
			item := &entity.EscopoItem{
				AuditoriaID:   aud.ID,
				CategoriaNome: categoria,
				QtdSistema:    qtdSistema,
			}
			if err := audRepo.CreateEscopoItem(ctx, item); err != nil {
				return err
			}
			escopo = append(escopo, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return montarDetalhe(aud, ent, escopo), nil
}

// dedup preserva a ordem e descarta nomes vazios e repetidos: o escopo é um
// conjunto.
func dedup(categorias []string) []string {
	vistos := make(map[string]struct{}, len(categorias))
	out := make([]string, 0, len(categorias))
	for _, c := range categorias {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := vistos[c]; ok {
			continue
		}
		vistos[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func montarDetalhe(aud *entity.Auditoria, ent *entity.Entidade, escopo []*entity.EscopoItem) *dto.AuditoriaDetalhe {
	d := &dto.AuditoriaDetalhe{
		AuditoriaResumo: montarResumo(aud),
		EntidadeID:      ent.ID,
		EntidadeNome:    ent.Nome,
		Escopo:          make([]dto.EscopoItemResponse, 0, len(escopo)),
	}
	for _, item := range escopo {
		d.Escopo = append(d.Escopo, dto.EscopoItemResponse{
			CategoriaNome: item.CategoriaNome,
			QtdSistema:    item.QtdSistema,
			QtdContada:    item.QtdContada,
			Diferenca:     item.Diferenca,
			DataContagem:  item.DataContagem,
		})
	}
	return d
}

func montarResumo(aud *entity.Auditoria) dto.AuditoriaResumo {
	return dto.AuditoriaResumo{
		ID:               aud.ID,
		Nome:             aud.Nome,
		CodigoReferencia: aud.CodigoReferencia,
		Responsavel:      aud.Responsavel,
		DataInicio:       aud.DataInicio,
		DataFim:          aud.DataFim,
		Status:           aud.Status(),
	}
}
