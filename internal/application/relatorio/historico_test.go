package relatorio_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/relatorio"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

// relatorioRepoFake devolve as linhas pré-carregadas e captura o filtro usado.
type relatorioRepoFake struct {
	itens  []repository.ItemFinalizado
	filtro repository.FiltroHistorico
}

func (f *relatorioRepoFake) ItensFinalizados(ctx context.Context, filtro repository.FiltroHistorico) ([]repository.ItemFinalizado, error) {
	f.filtro = filtro
	return f.itens, nil
}

func admin() authz.Caller {
	return authz.Caller{UserID: 1, OrganizacaoID: 1, Role: entity.RoleAdmin}
}

func dinheiro(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGerar_AgregaKPIs(t *testing.T) {
	fim := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)
	repo := &relatorioRepoFake{itens: []repository.ItemFinalizado{
		// Shirts: sistema 100, contado 95 → 5 faltando a 5.00.
		{AuditoriaID: 1, CodigoReferencia: "AUD-2026-1", EntidadeNome: "Loja Centro", DataFim: fim,
			CategoriaNome: "Shirts", QtdSistema: 100, QtdContada: 95, Diferenca: -5, Custo: dinheiro("5.00")},
		// Pants: sistema 50, contado 53 → 3 sobrando a 10.00.
		{AuditoriaID: 1, CodigoReferencia: "AUD-2026-1", EntidadeNome: "Loja Centro", DataFim: fim,
			CategoriaNome: "Pants", QtdSistema: 50, QtdContada: 53, Diferenca: 3, Custo: dinheiro("10.00")},
		// Shoes: bateu — conta no total contado mas não nas divergências.
		{AuditoriaID: 2, CodigoReferencia: "AUD-2026-2", EntidadeNome: "Loja Centro", DataFim: fim,
			CategoriaNome: "Shoes", QtdSistema: 20, QtdContada: 20, Diferenca: 0, Custo: dinheiro("30.00")},
	}}
	uc := relatorio.NewHistoricoUseCase(repo)

	rel, err := uc.Gerar(context.Background(), admin(), relatorio.Filtro{})
	require.NoError(t, err)

	assert.Equal(t, int64(168), rel.TotalContado)
	assert.Equal(t, int64(8), rel.TotalUnidadesDivergentes)
	assert.Equal(t, 2, rel.ItensDivergentes)
	assert.Equal(t, 2, rel.AuditoriasNoPeriodo)

	// acuracidade = (168 - 8) / 168 * 100 = 95.24
	assert.True(t, rel.AccuracyRate.Equal(dinheiro("95.24")), "acuracidade %s", rel.AccuracyRate)
	// impacto = -5×5.00 + 3×10.00 = 5.00
	assert.True(t, rel.ImpactoFinanceiro.Equal(dinheiro("5.00")), "impacto %s", rel.ImpactoFinanceiro)

	// Só divergências no detalhe, cada uma com o próprio impacto.
	require.Len(t, rel.Detalhes, 2)
	assert.Equal(t, "Shirts", rel.Detalhes[0].CategoriaNome)
	assert.True(t, rel.Detalhes[0].ImpactoFinanceiro.Equal(dinheiro("-25.00")))
	assert.Equal(t, "Pants", rel.Detalhes[1].CategoriaNome)
	assert.True(t, rel.Detalhes[1].ImpactoFinanceiro.Equal(dinheiro("30.00")))
}

func TestGerar_SemContagemAcuracidadeZero(t *testing.T) {
	uc := relatorio.NewHistoricoUseCase(&relatorioRepoFake{})

	rel, err := uc.Gerar(context.Background(), admin(), relatorio.Filtro{})
	require.NoError(t, err)

	assert.Equal(t, int64(0), rel.TotalContado)
	assert.True(t, rel.AccuracyRate.IsZero())
	assert.True(t, rel.ImpactoFinanceiro.IsZero())
	assert.NotNil(t, rel.Detalhes, "detalhe vazio serializa como lista, não null")
}

func TestGerar_AcuracidadeNuncaNegativa(t *testing.T) {
	fim := time.Now()
	// Contou 10, divergiu 40: mais erro que contagem.
	repo := &relatorioRepoFake{itens: []repository.ItemFinalizado{
		{AuditoriaID: 1, DataFim: fim, CategoriaNome: "Shirts", QtdSistema: 50, QtdContada: 10, Diferenca: -40, Custo: dinheiro("1.00")},
	}}
	uc := relatorio.NewHistoricoUseCase(repo)

	rel, err := uc.Gerar(context.Background(), admin(), relatorio.Filtro{})
	require.NoError(t, err)
	assert.True(t, rel.AccuracyRate.IsZero(), "clampa em zero, nunca negativa")
}

func TestGerar_FiltroRespeitaEscopoDoChamador(t *testing.T) {
	repo := &relatorioRepoFake{}
	uc := relatorio.NewHistoricoUseCase(repo)
	ctx := context.Background()

	// Conta de loja: sempre a própria loja, mesmo pedindo outra.
	loja := int64(10)
	outra := int64(20)
	caller := authz.Caller{UserID: 5, OrganizacaoID: 1, EntidadeID: &loja, Role: entity.RoleUser}
	_, err := uc.Gerar(ctx, caller, relatorio.Filtro{EntidadeID: &outra})
	require.NoError(t, err)
	require.NotNil(t, repo.filtro.EntidadeID)
	assert.Equal(t, loja, *repo.filtro.EntidadeID)

	// Admin sem filtro: organização inteira.
	_, err = uc.Gerar(ctx, admin(), relatorio.Filtro{})
	require.NoError(t, err)
	assert.Nil(t, repo.filtro.EntidadeID)

	// Admin com filtro: a loja pedida.
	_, err = uc.Gerar(ctx, admin(), relatorio.Filtro{EntidadeID: &outra})
	require.NoError(t, err)
	require.NotNil(t, repo.filtro.EntidadeID)
	assert.Equal(t, outra, *repo.filtro.EntidadeID)
}

func TestGerar_DataFimInclusivaAteOFimDoDia(t *testing.T) {
	repo := &relatorioRepoFake{}
	uc := relatorio.NewHistoricoUseCase(repo)

	dia := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	_, err := uc.Gerar(context.Background(), admin(), relatorio.Filtro{DataFim: &dia})
	require.NoError(t, err)

	require.NotNil(t, repo.filtro.DataFim)
	assert.Equal(t, 23, repo.filtro.DataFim.Hour())
	assert.Equal(t, 59, repo.filtro.DataFim.Minute())
}
