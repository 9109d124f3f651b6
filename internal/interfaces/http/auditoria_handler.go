package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	appaud "github.com/pbarcelos/auditoria-api/internal/application/auditoria"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
)

// RelatorioPDFRenderer renderiza o documento de exportação em PDF.
type RelatorioPDFRenderer interface {
	Render(rel *dto.RelatorioAuditoria) ([]byte, error)
}

// AuditoriaHandler trata as rotas do motor de auditoria.
type AuditoriaHandler struct {
	criarUC     *appaud.CriarUseCase
	consultarUC *appaud.ConsultarUseCase
	contagemUC  *appaud.ContagemUseCase
	excluirUC   *appaud.ExcluirUseCase
	exportarUC  *appaud.ExportarUseCase
	pdf         RelatorioPDFRenderer
}

// NewAuditoriaHandler constrói o handler.
func NewAuditoriaHandler(
	criarUC *appaud.CriarUseCase,
	consultarUC *appaud.ConsultarUseCase,
	contagemUC *appaud.ContagemUseCase,
	excluirUC *appaud.ExcluirUseCase,
	exportarUC *appaud.ExportarUseCase,
	pdf RelatorioPDFRenderer,
) *AuditoriaHandler {
	return &AuditoriaHandler{
		criarUC:     criarUC,
		consultarUC: consultarUC,
		contagemUC:  contagemUC,
		excluirUC:   excluirUC,
		exportarUC:  exportarUC,
		pdf:         pdf,
	}
}

// Criar godoc
// @Summary      Abrir auditoria com escopo congelado
// @Tags         auditorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarAuditoriaRequest  true  "responsavel, categorias_escopo, entidade_id (admin)"
// @Success      201   {object}  dto.AuditoriaDetalhe
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auditorias [post]
func (h *AuditoriaHandler) Criar(c *fiber.Ctx) error {
	var in dto.CriarAuditoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	out, err := h.criarUC.Criar(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Listar godoc
// @Summary      Listar auditorias visíveis
// @Tags         auditorias
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AuditoriaResumo
// @Router       /api/auditorias [get]
func (h *AuditoriaHandler) Listar(c *fiber.Ctx) error {
	out, err := h.consultarUC.Listar(c.UserContext(), GetCaller(c))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}

// Detalhar godoc
// @Summary      Detalhar auditoria com escopo
// @Tags         auditorias
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID da auditoria"
// @Success      200  {object}  dto.AuditoriaDetalhe
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auditorias/{id} [get]
func (h *AuditoriaHandler) Detalhar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return corpoInvalido(c)
	}
	out, err := h.consultarUC.Detalhar(c.UserContext(), GetCaller(c), int64(id))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}

// SalvarContagens godoc
// @Summary      Gravar contagens manuais
// @Tags         auditorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID da auditoria"
// @Param        body  body  dto.ContagemRequest  true  "contagens"
// @Success      200   {object}  dto.AuditoriaDetalhe
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auditorias/{id}/contagens [post]
func (h *AuditoriaHandler) SalvarContagens(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return corpoInvalido(c)
	}
	var in dto.ContagemRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	out, err := h.contagemUC.SalvarContagens(c.UserContext(), GetCaller(c), int64(id), in)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}

// Finalizar godoc
// @Summary      Finalizar auditoria (idempotente)
// @Tags         auditorias
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID da auditoria"
// @Success      200  {object}  dto.AuditoriaDetalhe
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auditorias/{id}/finalizar [post]
func (h *AuditoriaHandler) Finalizar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return corpoInvalido(c)
	}
	out, err := h.contagemUC.Finalizar(c.UserContext(), GetCaller(c), int64(id))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}

// Excluir godoc
// @Summary      Excluir auditoria (admin, senha + motivo)
// @Tags         auditorias
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID da auditoria"
// @Param        body  body  dto.ExcluirAuditoriaRequest  true  "senha, motivo"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auditorias/{id} [delete]
func (h *AuditoriaHandler) Excluir(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return corpoInvalido(c)
	}
	var in dto.ExcluirAuditoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	if err := h.excluirUC.Excluir(c.UserContext(), GetCaller(c), int64(id), in); err != nil {
		return respostaErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Exportar godoc
// @Summary      Exportar auditoria (csv ou pdf)
// @Tags         auditorias
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id       path   int     true   "ID da auditoria"
// @Param        formato  query  string  false  "csv (padrão) ou pdf"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auditorias/{id}/exportar [get]
func (h *AuditoriaHandler) Exportar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return corpoInvalido(c)
	}
	rel, err := h.exportarUC.Exportar(c.UserContext(), GetCaller(c), int64(id))
	if err != nil {
		return respostaErro(c, err)
	}

	switch c.Query("formato", "csv") {
	case "pdf":
		b, err := h.pdf.Render(rel)
		if err != nil {
			return respostaErro(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rel.Arquivo+".pdf"))
		return c.Send(b)
	case "csv":
		linhas := make([][]string, 0, len(rel.Linhas))
		for _, l := range rel.Linhas {
			linhas = append(linhas, []string{
				l.Categoria,
				strconv.Itoa(l.QtdSistema),
				strconv.Itoa(l.QtdContada),
				strconv.Itoa(l.Diferenca),
			})
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rel.Arquivo+".csv"))
		return renderCSV(c.Response().BodyWriter(), rel.Cabecalho, rel.Colunas, linhas)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: "formato deve ser csv ou pdf"})
	}
}
