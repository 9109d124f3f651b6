package auditoria

import (
	"context"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	domaud "github.com/pbarcelos/auditoria-api/internal/domain/auditoria"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
)

// ContagemUseCase grava contagens manuais e finaliza auditorias. As duas
// operações bloqueiam a linha da auditoria (SELECT ... FOR UPDATE) na mesma
// transação, de modo que uma contagem não possa commitar depois de uma
// finalização concorrente.
type ContagemUseCase struct {
	tx        TxRunner
	consultar *ConsultarUseCase
}

// NewContagemUseCase constrói o caso de uso.
func NewContagemUseCase(tx TxRunner, consultar *ConsultarUseCase) *ContagemUseCase {
	return &ContagemUseCase{tx: tx, consultar: consultar}
}

// SalvarContagens aplica um lote de contagens manuais a uma auditoria aberta.
// A contagem é idempotente por categoria: o último valor enviado substitui o
// anterior. Categorias fora do escopo são ignoradas em silêncio — o escopo é
// fixado na criação, então aceitar nomes novos seria inserir, não contar.
func (uc *ContagemUseCase) SalvarContagens(ctx context.Context, caller authz.Caller, auditoriaID int64, in dto.ContagemRequest) (*dto.AuditoriaDetalhe, error) {
	org, entidadeID := authz.EscopoLeitura(caller)
	agora := brtime.Agora()

	err := uc.tx.RunAuditoria(ctx, func(audRepo repository.AuditoriaRepository, _ repository.EstoqueRepository) error {
		aud, err := audRepo.GetVisivelForUpdate(ctx, auditoriaID, org, entidadeID)
		if err != nil {
			return err
		}
		if aud == nil {
			return domain.ErrNaoEncontrado
		}
		if aud.Finalizada() {
			return domain.ErrAuditoriaFinalizada
		}

		escopo, err := audRepo.ListEscopo(ctx, aud.ID)
		if err != nil {
			return err
		}
		porCategoria := make(map[string]int, len(escopo))
		for i, item := range escopo {
			porCategoria[item.CategoriaNome] = i
		}

		for _, contagem := range in.Contagens {
			i, ok := porCategoria[contagem.CategoriaNome]
			if !ok {
				continue
			}
			domaud.AplicarContagem(escopo[i], contagem.QtdContada, agora)
			if err := audRepo.UpdateContagem(ctx, escopo[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.consultar.Detalhar(ctx, caller, auditoriaID)
}

// Finalizar carimba DataFim com o horário atual de São Paulo. Finalizar uma
// auditoria já finalizada não é erro: devolve a auditoria inalterada.
func (uc *ContagemUseCase) Finalizar(ctx context.Context, caller authz.Caller, auditoriaID int64) (*dto.AuditoriaDetalhe, error) {
	org, entidadeID := authz.EscopoLeitura(caller)

	err := uc.tx.RunAuditoria(ctx, func(audRepo repository.AuditoriaRepository, _ repository.EstoqueRepository) error {
		aud, err := audRepo.GetVisivelForUpdate(ctx, auditoriaID, org, entidadeID)
		if err != nil {
			return err
		}
		if aud == nil {
			return domain.ErrNaoEncontrado
		}
		if aud.Finalizada() {
			return nil
		}
		return audRepo.SetDataFim(ctx, aud.ID, brtime.Agora())
	})
	if err != nil {
		return nil, err
	}

	return uc.consultar.Detalhar(ctx, caller, auditoriaID)
}
