package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/pkg/jwt"
)

// Locals keys preenchidas pelo AuthMiddleware.
const (
	LocalUserID        = "user_id"
	LocalOrganizacaoID = "organizacao_id"
	LocalEntidadeID    = "entidade_id"
	LocalRole          = "role"
)

// AuthMiddleware valida o Bearer Token JWT e extrai a identidade para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		claims, err := jwt.Validar(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalOrganizacaoID, claims.OrganizacaoID)
		c.Locals(LocalEntidadeID, claims.EntidadeID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole autoriza apenas os papéis listados. Token sem claim de papel
// responde 401; papel fora da lista, 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sem papel"})
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "papel sem permissão para esta rota"})
	}
}

// GetUserID devolve o UserID do contexto (depois do middleware de auth).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// GetOrganizacaoID devolve o OrganizacaoID do contexto.
func GetOrganizacaoID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalOrganizacaoID).(int64)
	return v
}

// GetEntidadeID devolve o EntidadeID do contexto (0 para admin).
func GetEntidadeID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalEntidadeID).(int64)
	return v
}

// GetRole devolve o papel do contexto.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}

// GetCaller monta a identidade de autorização a partir dos locals.
func GetCaller(c *fiber.Ctx) authz.Caller {
	caller := authz.Caller{
		UserID:        GetUserID(c),
		OrganizacaoID: GetOrganizacaoID(c),
		Role:          GetRole(c),
	}
	if id := GetEntidadeID(c); id != 0 {
		caller.EntidadeID = &id
	}
	return caller
}
