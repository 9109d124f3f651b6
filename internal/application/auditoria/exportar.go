package auditoria

import (
	"context"
	"sort"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
)

// Colunas da tabela de exportação, na ordem do documento.
var colunasExportacao = []string{"Categoria", "Qtd Sistema", "Qtd Contada", "Diferença"}

// ExportarUseCase monta o documento tabular de uma auditoria. O formato final
// (CSV, PDF) é decidido na borda HTTP; aqui só existe a estrutura.
type ExportarUseCase struct {
	consultar *ConsultarUseCase
}

// NewExportarUseCase constrói o caso de uso.
func NewExportarUseCase(consultar *ConsultarUseCase) *ExportarUseCase {
	return &ExportarUseCase{consultar: consultar}
}

// Exportar produz cabeçalho em pares chave/valor e uma linha por categoria do
// escopo, ordenadas por nome. Auditoria em aberto exporta com a data de fim
// "Em aberto".
func (uc *ExportarUseCase) Exportar(ctx context.Context, caller authz.Caller, auditoriaID int64) (*dto.RelatorioAuditoria, error) {
	det, err := uc.consultar.Detalhar(ctx, caller, auditoriaID)
	if err != nil {
		return nil, err
	}

	fim := "Em aberto"
	if det.DataFim != nil {
		fim = brtime.Em(*det.DataFim).Format(brtime.LayoutDataHoraSegundo)
	}

	rel := &dto.RelatorioAuditoria{
		Cabecalho: [][2]string{
			{"Código da Auditoria", det.CodigoReferencia},
			{"Nome", det.Nome},
			{"Entidade", det.EntidadeNome},
			{"Responsável", det.Responsavel},
			{"Data de Início", brtime.Em(det.DataInicio).Format(brtime.LayoutDataHoraSegundo)},
			{"Data de Fim", fim},
		},
		Colunas: colunasExportacao,
		Linhas:  make([]dto.RelatorioLinhaEscopo, 0, len(det.Escopo)),
		Arquivo: det.CodigoReferencia,
	}
	for _, item := range det.Escopo {
		rel.Linhas = append(rel.Linhas, dto.RelatorioLinhaEscopo{
			Categoria:  item.CategoriaNome,
			QtdSistema: item.QtdSistema,
			QtdContada: item.QtdContada,
			Diferenca:  item.Diferenca,
		})
	}
	sort.Slice(rel.Linhas, func(i, j int) bool { return rel.Linhas[i].Categoria < rel.Linhas[j].Categoria })
	return rel, nil
}
