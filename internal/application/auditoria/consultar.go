package auditoria

import (
	"context"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

// ConsultarUseCase listagem e detalhe de auditorias dentro do escopo do
// chamador.
type ConsultarUseCase struct {
	audRepo      repository.AuditoriaRepository
	entidadeRepo repository.EntidadeRepository
}

// NewConsultarUseCase constrói o caso de uso.
func NewConsultarUseCase(audRepo repository.AuditoriaRepository, entidadeRepo repository.EntidadeRepository) *ConsultarUseCase {
	return &ConsultarUseCase{audRepo: audRepo, entidadeRepo: entidadeRepo}
}

// Listar devolve as auditorias visíveis, mais recentes primeiro, com o status
// derivado de DataFim.
func (uc *ConsultarUseCase) Listar(ctx context.Context, caller authz.Caller) ([]dto.AuditoriaResumo, error) {
	org, entidadeID := authz.EscopoLeitura(caller)
	auds, err := uc.audRepo.ListVisiveis(ctx, org, entidadeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditoriaResumo, 0, len(auds))
	for _, aud := range auds {
		out = append(out, montarResumo(aud))
	}
	return out, nil
}

// Detalhar carrega a auditoria com entidade e escopo completo. Auditoria fora
// do escopo do chamador responde como inexistente.
func (uc *ConsultarUseCase) Detalhar(ctx context.Context, caller authz.Caller, auditoriaID int64) (*dto.AuditoriaDetalhe, error) {
	org, entidadeID := authz.EscopoLeitura(caller)
	aud, err := uc.audRepo.GetVisivel(ctx, auditoriaID, org, entidadeID)
	if err != nil {
		return nil, err
	}
	if aud == nil {
		return nil, domain.ErrNaoEncontrado
	}
	ent, err := uc.entidadeRepo.GetByID(ctx, aud.EntidadeID)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, domain.ErrNaoEncontrado
	}
	escopo, err := uc.audRepo.ListEscopo(ctx, aud.ID)
	if err != nil {
		return nil, err
	}
	return montarDetalhe(aud, ent, escopo), nil
}
