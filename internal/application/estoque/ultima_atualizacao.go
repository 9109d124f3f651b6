package estoque

import (
	"context"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
)

// NuncaAtualizado texto exibido quando a organização ainda não importou
// nenhuma planilha de estoque.
const NuncaAtualizado = "Nunca atualizado"

// ConsultaUseCase leitura do estado da importação de estoque da organização.
type ConsultaUseCase struct {
	configRepo repository.ConfiguracaoRepository
}

// NewConsultaUseCase constrói o caso de uso.
func NewConsultaUseCase(configRepo repository.ConfiguracaoRepository) *ConsultaUseCase {
	return &ConsultaUseCase{configRepo: configRepo}
}

// UltimaAtualizacao devolve o timestamp da última importação já formatado para
// exibição ("02/01/2006 às 15:04"), ou "Nunca atualizado" quando não houve.
func (uc *ConsultaUseCase) UltimaAtualizacao(ctx context.Context, caller authz.Caller) (*dto.UltimaAtualizacaoResponse, error) {
	ultima, err := uc.configRepo.GetUltimaAtualizacaoEstoque(ctx, caller.OrganizacaoID)
	if err != nil {
		return nil, err
	}
	if ultima == nil {
		return &dto.UltimaAtualizacaoResponse{UltimaAtualizacao: NuncaAtualizado}, nil
	}
	return &dto.UltimaAtualizacaoResponse{
		UltimaAtualizacao: brtime.FormatarAtualizacao(*ultima),
		Atualizado:        true,
	}, nil
}
