package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LinhaDivergencia uma divergência individual no relatório histórico: um item
// de escopo com diferença não nula, com o impacto financeiro daquele item.
type LinhaDivergencia struct {
	CodigoReferencia  string          `json:"codigo_referencia"`
	EntidadeNome      string          `json:"entidade_nome"`
	DataFim           time.Time       `json:"data_fim"`
	CategoriaNome     string          `json:"categoria_nome"`
	QtdSistema        int             `json:"qtd_sistema"`
	QtdContada        int             `json:"qtd_contada"`
	Diferenca         int             `json:"diferenca"`
	ImpactoFinanceiro decimal.Decimal `json:"impacto_financeiro"`
}

// RelatorioHistorico KPIs agregados das auditorias finalizadas no período,
// mais o detalhe linha a linha das divergências.
type RelatorioHistorico struct {
	TotalContado             int64              `json:"total_contado"`
	TotalUnidadesDivergentes int64              `json:"total_unidades_divergentes"`
	AccuracyRate             decimal.Decimal    `json:"accuracy_rate"`
	ImpactoFinanceiro        decimal.Decimal    `json:"impacto_financeiro"`
	ItensDivergentes         int                `json:"total_itens_divergentes"`
	AuditoriasNoPeriodo      int                `json:"auditorias_no_periodo"`
	Detalhes                 []LinhaDivergencia `json:"detalhes"`
}
