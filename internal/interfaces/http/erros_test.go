package http

import (
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
)

func respostaDe(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error { return respostaErro(c, err) })

	resp, errReq := app.Test(httptest.NewRequest(nethttp.MethodGet, "/x", nil))
	require.NoError(t, errReq)
	body, errReq := io.ReadAll(resp.Body)
	require.NoError(t, errReq)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestRespostaErro_MapeiaSentinelas(t *testing.T) {
	status, out := respostaDe(t, domain.ErrNaoEncontrado)
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", out.Code)

	// Sentinela embrulhado ainda casa via errors.Is.
	status, out = respostaDe(t, fmt.Errorf("buscar auditoria: %w", domain.ErrAuditoriaFinalizada))
	assert.Equal(t, nethttp.StatusConflict, status)
	assert.Equal(t, "AUDIT_CLOSED", out.Code)
}

func TestRespostaErro_FalhaDePersistenciaNaoVazaDetalhe(t *testing.T) {
	interno := fmt.Errorf("insert auditoria: connection refused to db:5432")

	status, out := respostaDe(t, interno)
	assert.Equal(t, nethttp.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", out.Code)
	assert.Equal(t, "erro interno", out.Message)
	assert.NotContains(t, out.Message, "insert auditoria", "detalhe interno fica só no log")
	assert.NotContains(t, out.Message, "5432")
}
