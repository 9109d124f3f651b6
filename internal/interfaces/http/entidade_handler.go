package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/application/usecase"
)

// EntidadeHandler trata as rotas de lojas (protegido).
type EntidadeHandler struct {
	uc *usecase.EntidadeUseCase
}

// NewEntidadeHandler constrói o handler.
func NewEntidadeHandler(uc *usecase.EntidadeUseCase) *EntidadeHandler {
	return &EntidadeHandler{uc: uc}
}

// Criar godoc
// @Summary      Cadastrar loja
// @Tags         entidades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntidadeRequest  true  "nome"
// @Success      201   {object}  dto.EntidadeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/entidades [post]
func (h *EntidadeHandler) Criar(c *fiber.Ctx) error {
	var in dto.CreateEntidadeRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	out, err := h.uc.Criar(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Listar godoc
// @Summary      Listar lojas visíveis
// @Tags         entidades
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EntidadeResponse
// @Router       /api/entidades [get]
func (h *EntidadeHandler) Listar(c *fiber.Ctx) error {
	out, err := h.uc.Listar(c.UserContext(), GetCaller(c))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}
