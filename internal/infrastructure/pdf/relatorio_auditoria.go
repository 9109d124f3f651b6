// Package pdf renderiza o relatório de auditoria em PDF com Maroto v2.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: código da auditoria + nome                         │
//	│  ───────────────────────────────────────────────────────── │
//	│  CABEÇALHO: entidade / responsável / início / fim           │
//	│  ───────────────────────────────────────────────────────── │
//	│  TABELA: Categoria | Qtd Sistema | Qtd Contada | Diferença  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/pbarcelos/auditoria-api/internal/application/dto"
)

var (
	corPrimaria = &props.Color{Red: 31, Green: 81, Blue: 57}
	corCinza    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// RelatorioRenderer renderiza o documento tabular de exportação em PDF.
type RelatorioRenderer struct{}

// NewRelatorioRenderer constrói o renderizador.
func NewRelatorioRenderer() *RelatorioRenderer { return &RelatorioRenderer{} }

// Render gera o PDF e devolve os bytes.
func (r *RelatorioRenderer) Render(rel *dto.RelatorioAuditoria) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Auditoria", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(tituloRow(rel))
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.5}))
	for _, par := range rel.Cabecalho {
		m.AddRows(cabecalhoRow(par[0], par[1]))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.3}))

	m.AddRows(tabelaHeaderRow(rel.Colunas))
	for _, linha := range rel.Linhas {
		m.AddRows(tabelaLinhaRow(linha))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func tituloRow(rel *dto.RelatorioAuditoria) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RELATÓRIO DE AUDITORIA DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: corPrimaria, Top: 1,
			}),
			text.New(rel.Arquivo, props.Text{
				Size: 9, Top: 9, Color: corCinza,
			}),
		),
	)
}

func cabecalhoRow(chave, valor string) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(chave+":", props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1,
		})),
		col.New(8).Add(text.New(valor, props.Text{
			Size: 8, Top: 1, Color: corCinza,
		})),
	)
}

func tabelaHeaderRow(colunas []string) core.Row {
	larguras := []int{6, 2, 2, 2}
	cols := make([]core.Col, 0, len(colunas))
	for i, nome := range colunas {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(larguras[i]).Add(text.New(nome, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: corPrimaria, Top: 2,
		})))
	}
	return row.New(8).Add(cols...)
}

func tabelaLinhaRow(linha dto.RelatorioLinhaEscopo) core.Row {
	num := func(n int) core.Component {
		return text.New(strconv.Itoa(n), props.Text{Size: 8, Align: align.Right, Top: 1})
	}
	return row.New(6).Add(
		col.New(6).Add(text.New(linha.Categoria, props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(2).Add(num(linha.QtdSistema)),
		col.New(2).Add(num(linha.QtdContada)),
		col.New(2).Add(num(linha.Diferenca)),
	)
}
