package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
)

// mapeamento sentinela de domínio -> resposta HTTP. Os handlers delegam tudo
// para cá; erro desconhecido vira 500.
var errosHTTP = []struct {
	err    error
	status int
	code   string
	msg    string
}{
	{domain.ErrNaoEncontrado, fiber.StatusNotFound, "NOT_FOUND", "recurso não encontrado"},
	{domain.ErrEntradaInvalida, fiber.StatusBadRequest, "VALIDATION", "entrada inválida"},
	{domain.ErrDuplicado, fiber.StatusConflict, "DUPLICATE", "registro duplicado"},
	{domain.ErrCredenciaisInvalidas, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciais inválidas"},
	{domain.ErrAcessoNegado, fiber.StatusForbidden, "FORBIDDEN", "acesso negado"},
	{domain.ErrEstoqueDesatualizado, fiber.StatusConflict, "STALE_STOCK", "o estoque não foi importado hoje"},
	{domain.ErrAuditoriaFinalizada, fiber.StatusConflict, "AUDIT_CLOSED", "auditoria já finalizada"},
	{domain.ErrSenhaIncorreta, fiber.StatusUnauthorized, "WRONG_PASSWORD", "senha incorreta"},
	{domain.ErrMotivoInvalido, fiber.StatusBadRequest, "INVALID_REASON", "motivo deve ter pelo menos 10 letras"},
	{domain.ErrConversaFechada, fiber.StatusConflict, "CONVERSATION_CLOSED", "conversa fechada"},
	{domain.ErrTransicaoInvalida, fiber.StatusConflict, "INVALID_TRANSITION", "transição de status inválida"},
}

func respostaErro(c *fiber.Ctx, err error) error {
	for _, m := range errosHTTP {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.msg})
		}
	}
	// Falha de persistência ou erro inesperado: o detalhe (cadeia de wraps com
	// SQL) fica no log; o cliente recebe só a mensagem genérica.
	log.Error().Err(err).Str("metodo", c.Method()).Str("rota", c.Path()).Msg("erro interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
}

func corpoInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
}
