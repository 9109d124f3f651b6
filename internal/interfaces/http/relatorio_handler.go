package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/application/relatorio"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
)

// RelatorioHandler trata o relatório histórico de auditorias finalizadas.
type RelatorioHandler struct {
	uc *relatorio.HistoricoUseCase
}

// NewRelatorioHandler constrói o handler.
func NewRelatorioHandler(uc *relatorio.HistoricoUseCase) *RelatorioHandler {
	return &RelatorioHandler{uc: uc}
}

// Historico godoc
// @Summary      Relatório histórico de auditorias finalizadas
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Param        entidade_id  query  int     false  "Filtro de loja (apenas admin)"
// @Param        data_inicio  query  string  false  "dd/mm/aaaa"
// @Param        data_fim     query  string  false  "dd/mm/aaaa (inclusiva)"
// @Param        formato      query  string  false  "json (padrão) ou csv"
// @Success      200  {object}  dto.RelatorioHistorico
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relatorios/historico [get]
func (h *RelatorioHandler) Historico(c *fiber.Ctx) error {
	filtro, err := filtroDaQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Gerar(c.UserContext(), GetCaller(c), filtro)
	if err != nil {
		return respostaErro(c, err)
	}

	if c.Query("formato", "json") == "csv" {
		return h.renderHistoricoCSV(c, out)
	}
	return c.JSON(out)
}

func filtroDaQuery(c *fiber.Ctx) (relatorio.Filtro, error) {
	var f relatorio.Filtro
	if id := int64(c.QueryInt("entidade_id", 0)); id != 0 {
		f.EntidadeID = &id
	}
	if s := c.Query("data_inicio"); s != "" {
		t, err := time.ParseInLocation(brtime.LayoutData, s, brtime.Local())
		if err != nil {
			return f, errDataInvalida("data_inicio")
		}
		f.DataInicio = &t
	}
	if s := c.Query("data_fim"); s != "" {
		t, err := time.ParseInLocation(brtime.LayoutData, s, brtime.Local())
		if err != nil {
			return f, errDataInvalida("data_fim")
		}
		f.DataFim = &t
	}
	return f, nil
}

type dataInvalidaErr string

func errDataInvalida(campo string) error { return dataInvalidaErr(campo) }

func (e dataInvalidaErr) Error() string {
	return string(e) + " deve estar no formato dd/mm/aaaa"
}

func (h *RelatorioHandler) renderHistoricoCSV(c *fiber.Ctx, rel *dto.RelatorioHistorico) error {
	cabecalho := [][2]string{
		{"Total Contado", strconv.FormatInt(rel.TotalContado, 10)},
		{"Unidades Divergentes", strconv.FormatInt(rel.TotalUnidadesDivergentes, 10)},
		{"Acuracidade (%)", rel.AccuracyRate.StringFixed(2)},
		{"Impacto Financeiro", rel.ImpactoFinanceiro.StringFixed(2)},
		{"Categorias Divergentes", strconv.Itoa(rel.ItensDivergentes)},
		{"Auditorias no Período", strconv.Itoa(rel.AuditoriasNoPeriodo)},
	}
	colunas := []string{"Código", "Entidade", "Data de Fim", "Categoria", "Qtd Sistema", "Qtd Contada", "Diferença", "Impacto"}
	linhas := make([][]string, 0, len(rel.Detalhes))
	for _, d := range rel.Detalhes {
		linhas = append(linhas, []string{
			d.CodigoReferencia,
			d.EntidadeNome,
			brtime.Em(d.DataFim).Format(brtime.LayoutDataHora),
			d.CategoriaNome,
			strconv.Itoa(d.QtdSistema),
			strconv.Itoa(d.QtdContada),
			strconv.Itoa(d.Diferenca),
			d.ImpactoFinanceiro.StringFixed(2),
		})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorio-historico.csv"`)
	return renderCSV(c.Response().BodyWriter(), cabecalho, colunas, linhas)
}
