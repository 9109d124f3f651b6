package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/application/mensagens"
)

// ConversaHandler trata a mensageria entre lojas e administração.
type ConversaHandler struct {
	uc *mensagens.UseCase
}

// NewConversaHandler constrói o handler.
func NewConversaHandler(uc *mensagens.UseCase) *ConversaHandler {
	return &ConversaHandler{uc: uc}
}

// Abrir godoc
// @Summary      Abrir conversa com a administração (conta de loja)
// @Tags         conversas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AbrirConversaRequest  true  "assunto, texto"
// @Success      201   {object}  dto.ConversaDetalhe
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/conversas [post]
func (h *ConversaHandler) Abrir(c *fiber.Ctx) error {
	var in dto.AbrirConversaRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	out, err := h.uc.Abrir(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Listar godoc
// @Summary      Listar conversas visíveis
// @Tags         conversas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ConversaResumo
// @Router       /api/conversas [get]
func (h *ConversaHandler) Listar(c *fiber.Ctx) error {
	out, err := h.uc.Listar(c.UserContext(), GetCaller(c))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}

// Detalhar godoc
// @Summary      Detalhar conversa (marca mensagens como lidas)
// @Tags         conversas
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID da conversa"
// @Success      200  {object}  dto.ConversaDetalhe
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/conversas/{id} [get]
func (h *ConversaHandler) Detalhar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return corpoInvalido(c)
	}
	out, err := h.uc.Detalhar(c.UserContext(), GetCaller(c), int64(id))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}

// Responder godoc
// @Summary      Responder em uma conversa
// @Tags         conversas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID da conversa"
// @Param        body  body  dto.ResponderRequest  true  "texto"
// @Success      200   {object}  dto.ConversaDetalhe
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/conversas/{id}/mensagens [post]
func (h *ConversaHandler) Responder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return corpoInvalido(c)
	}
	var in dto.ResponderRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	out, err := h.uc.Responder(c.UserContext(), GetCaller(c), int64(id), in)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}

// Fechar godoc
// @Summary      Fechar conversa (admin)
// @Tags         conversas
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID da conversa"
// @Success      200  {object}  dto.ConversaResumo
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/conversas/{id}/fechar [post]
func (h *ConversaHandler) Fechar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return corpoInvalido(c)
	}
	out, err := h.uc.Fechar(c.UserContext(), GetCaller(c), int64(id))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(out)
}
