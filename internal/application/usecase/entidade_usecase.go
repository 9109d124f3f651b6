package usecase

import (
	"context"
	"strings"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
)

// EntidadeUseCase cadastro e listagem de lojas.
type EntidadeUseCase struct {
	entidadeRepo repository.EntidadeRepository
}

// NewEntidadeUseCase constrói o caso de uso.
func NewEntidadeUseCase(entidadeRepo repository.EntidadeRepository) *EntidadeUseCase {
	return &EntidadeUseCase{entidadeRepo: entidadeRepo}
}

// Criar cadastra uma loja (admin). Nome único na organização, sem caixa.
func (uc *EntidadeUseCase) Criar(ctx context.Context, caller authz.Caller, in dto.CreateEntidadeRequest) (*dto.EntidadeResponse, error) {
	if !caller.Admin() {
		return nil, domain.ErrAcessoNegado
	}
	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if existente, err := uc.entidadeRepo.GetByOrgENome(ctx, caller.OrganizacaoID, nome); err != nil {
		return nil, err
	} else if existente != nil {
		return nil, domain.ErrDuplicado
	}
	ent := &entity.Entidade{OrganizacaoID: caller.OrganizacaoID, Nome: nome, CriadoEm: brtime.Agora()}
	if err := uc.entidadeRepo.Create(ctx, ent); err != nil {
		return nil, err
	}
	return &dto.EntidadeResponse{ID: ent.ID, Nome: ent.Nome}, nil
}

// Listar devolve as lojas visíveis: todas as da organização para admin,
// apenas a própria para conta de loja.
func (uc *EntidadeUseCase) Listar(ctx context.Context, caller authz.Caller) ([]dto.EntidadeResponse, error) {
	if caller.Admin() {
		ents, err := uc.entidadeRepo.ListByOrganizacao(ctx, caller.OrganizacaoID)
		if err != nil {
			return nil, err
		}
		out := make([]dto.EntidadeResponse, 0, len(ents))
		for _, e := range ents {
			out = append(out, dto.EntidadeResponse{ID: e.ID, Nome: e.Nome})
		}
		return out, nil
	}

	if caller.EntidadeID == nil {
		return []dto.EntidadeResponse{}, nil
	}
	ent, err := uc.entidadeRepo.GetByID(ctx, *caller.EntidadeID)
	if err != nil {
		return nil, err
	}
	if ent == nil || ent.OrganizacaoID != caller.OrganizacaoID {
		return []dto.EntidadeResponse{}, nil
	}
	return []dto.EntidadeResponse{{ID: ent.ID, Nome: ent.Nome}}, nil
}
