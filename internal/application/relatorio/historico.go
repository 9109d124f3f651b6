// Package relatorio agrega os números das auditorias finalizadas em KPIs do
// período: acuracidade, unidades divergentes e impacto financeiro. O
// repositório só materializa as linhas; toda a aritmética fica aqui, em
// decimal.
package relatorio

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
)

var cem = decimal.NewFromInt(100)

// Filtro parâmetros de consulta do relatório histórico, já validados na borda.
// EntidadeID só tem efeito para admin; conta de loja sempre consulta a própria.
type Filtro struct {
	EntidadeID *int64
	DataInicio *time.Time
	DataFim    *time.Time
}

// HistoricoUseCase consulta de leitura sobre auditorias finalizadas.
type HistoricoUseCase struct {
	repo repository.RelatorioRepository
}

// NewHistoricoUseCase constrói o caso de uso.
func NewHistoricoUseCase(repo repository.RelatorioRepository) *HistoricoUseCase {
	return &HistoricoUseCase{repo: repo}
}

// Gerar calcula os KPIs do período:
//
//	acuracidade = max(0, contado - |divergências|) / contado * 100
//	impacto     = Σ diferença × custo atual do produto da categoria
//
// Sem nenhuma unidade contada no período a acuracidade é 0. O detalhe lista
// só as linhas com diferença não nula, mais recentes primeiro.
func (uc *HistoricoUseCase) Gerar(ctx context.Context, caller authz.Caller, f Filtro) (*dto.RelatorioHistorico, error) {
	_, escopoEntidade := authz.EscopoLeitura(caller)

	filtro := repository.FiltroHistorico{
		OrganizacaoID: caller.OrganizacaoID,
		EntidadeID:    escopoEntidade,
		DataInicio:    f.DataInicio,
	}
	if caller.Admin() {
		filtro.EntidadeID = f.EntidadeID
	}
	if f.DataFim != nil {
		fim := brtime.FimDoDia(*f.DataFim)
		filtro.DataFim = &fim
	}

	itens, err := uc.repo.ItensFinalizados(ctx, filtro)
	if err != nil {
		return nil, err
	}

	rel := &dto.RelatorioHistorico{
		AccuracyRate:      decimal.Zero,
		ImpactoFinanceiro: decimal.Zero,
		Detalhes:          make([]dto.LinhaDivergencia, 0),
	}

	var totalContado, totalDivergente int64
	auditorias := make(map[int64]struct{})
	categoriasDivergentes := make(map[string]struct{})

	for _, item := range itens {
		auditorias[item.AuditoriaID] = struct{}{}
		totalContado += int64(item.QtdContada)

		if item.Diferenca == 0 {
			continue
		}
		diff := int64(item.Diferenca)
		if diff < 0 {
			totalDivergente -= diff
		} else {
			totalDivergente += diff
		}
		categoriasDivergentes[item.CategoriaNome] = struct{}{}

		impacto := decimal.NewFromInt(diff).Mul(item.Custo)
		rel.ImpactoFinanceiro = rel.ImpactoFinanceiro.Add(impacto)
		rel.Detalhes = append(rel.Detalhes, dto.LinhaDivergencia{
			CodigoReferencia:  item.CodigoReferencia,
			EntidadeNome:      item.EntidadeNome,
			DataFim:           brtime.Em(item.DataFim),
			CategoriaNome:     item.CategoriaNome,
			QtdSistema:        item.QtdSistema,
			QtdContada:        item.QtdContada,
			Diferenca:         item.Diferenca,
			ImpactoFinanceiro: impacto,
		})
	}

	rel.TotalContado = totalContado
	rel.TotalUnidadesDivergentes = totalDivergente
	rel.ItensDivergentes = len(categoriasDivergentes)
	rel.AuditoriasNoPeriodo = len(auditorias)

	if totalContado > 0 {
		acertos := totalContado - totalDivergente
		if acertos < 0 {
			acertos = 0
		}
		rel.AccuracyRate = decimal.NewFromInt(acertos).
			Div(decimal.NewFromInt(totalContado)).
			Mul(cem).
			Round(2)
	}
	return rel, nil
}
