package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/application/estoque"
	"github.com/pbarcelos/auditoria-api/internal/application/usecase"
)

// EstoqueHandler trata a importação de planilha e as consultas de catálogo.
type EstoqueHandler struct {
	importUC   *estoque.ImportUseCase
	consultaUC *estoque.ConsultaUseCase
	produtoUC  *usecase.ProdutoUseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(importUC *estoque.ImportUseCase, consultaUC *estoque.ConsultaUseCase, produtoUC *usecase.ProdutoUseCase) *EstoqueHandler {
	return &EstoqueHandler{importUC: importUC, consultaUC: consultaUC, produtoUC: produtoUC}
}

// Importar godoc
// @Summary      Importar planilha de estoque (CSV multipart)
// @Tags         estoque
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        entidade_id  query  int   false  "Loja alvo (obrigatório para admin)"
// @Param        arquivo      formData  file  true  "CSV com colunas Item, Estoque atual e opcionalmente Custo"
// @Success      200  {object}  dto.ResultadoImportacao
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estoque/importar [post]
func (h *EstoqueHandler) Importar(c *fiber.Ctx) error {
	fh, err := c.FormFile("arquivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo arquivo (CSV) obrigatório"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "não foi possível abrir o arquivo"})
	}
	defer f.Close()

	linhas, err := parsePlanilha(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SHEET", Message: err.Error()})
	}

	entidadeID := int64(c.QueryInt("entidade_id", 0))
	out, err := h.importUC.Importar(c.UserContext(), GetCaller(c), entidadeID, linhas)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}

// UltimaAtualizacao godoc
// @Summary      Consultar a última importação de estoque da organização
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UltimaAtualizacaoResponse
// @Router       /api/estoque/ultima-atualizacao [get]
func (h *EstoqueHandler) UltimaAtualizacao(c *fiber.Ctx) error {
	out, err := h.consultaUC.UltimaAtualizacao(c.UserContext(), GetCaller(c))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}

// Categorias godoc
// @Summary      Listar categorias importadas da organização
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/categorias [get]
func (h *EstoqueHandler) Categorias(c *fiber.Ctx) error {
	out, err := h.produtoUC.CategoriasImportadas(c.UserContext(), GetCaller(c))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}

// SincronizarGrupos godoc
// @Summary      Sincronizar grupos de produtos com o ERP Varejonline
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SincronizacaoGrupos
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/produtos/sincronizar-grupos [post]
func (h *EstoqueHandler) SincronizarGrupos(c *fiber.Ctx) error {
	out, err := h.produtoUC.SincronizarGrupos(c.UserContext(), GetCaller(c))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}
