package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/application/usecase"
)

// UserHandler trata as rotas administrativas de contas de loja.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler constrói o handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Criar godoc
// @Summary      Cadastrar conta de loja
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "username, senha, entidade_id"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UserHandler) Criar(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
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
// @Summary      Listar usuários da organização
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/usuarios [get]
func (h *UserHandler) Listar(c *fiber.Ctx) error {
	out, err := h.uc.Listar(c.UserContext(), GetCaller(c))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}

// Desativar godoc
// @Summary      Desativar conta de loja
// @Tags         usuarios
// @Security     Bearer
// @Param        id  path  int  true  "ID do usuário"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UserHandler) Desativar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return corpoInvalido(c)
	}
	if err := h.uc.Desativar(c.UserContext(), GetCaller(c), int64(id)); err != nil {
		return respostaErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetarSenha godoc
// @Summary      Redefinir senha de conta de loja
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID do usuário"
// @Param        body  body  dto.ResetSenhaRequest  true  "nova_senha"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/senha [put]
func (h *UserHandler) ResetarSenha(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return corpoInvalido(c)
	}
	var in dto.ResetSenhaRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	if err := h.uc.ResetarSenha(c.UserContext(), GetCaller(c), int64(id), in.NovaSenha); err != nil {
		return respostaErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReatribuirEntidade godoc
// @Summary      Trocar a loja de uma conta de loja
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID do usuário"
// @Param        body  body  dto.ReatribuirEntidadeRequest  true  "entidade_id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/entidade [put]
func (h *UserHandler) ReatribuirEntidade(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return corpoInvalido(c)
	}
	var in dto.ReatribuirEntidadeRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	if err := h.uc.ReatribuirEntidade(c.UserContext(), GetCaller(c), int64(id), in.EntidadeID); err != nil {
		return respostaErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
