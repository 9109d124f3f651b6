package conversa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/conversa"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

func TestAplicarResposta_TabelaCompleta(t *testing.T) {
	casos := []struct {
		status string
		role   string
		quer   string
	}{
		{entity.ConversaAberta, entity.RoleAdmin, entity.ConversaRespondidaAdmin},
		{entity.ConversaAberta, entity.RoleUser, entity.ConversaRespondidaLoja},
		{entity.ConversaRespondidaAdmin, entity.RoleAdmin, entity.ConversaRespondidaAdmin},
		{entity.ConversaRespondidaAdmin, entity.RoleUser, entity.ConversaRespondidaLoja},
		{entity.ConversaRespondidaLoja, entity.RoleAdmin, entity.ConversaRespondidaAdmin},
		{entity.ConversaRespondidaLoja, entity.RoleUser, entity.ConversaRespondidaLoja},
	}
	for _, c := range casos {
		prox, err := conversa.AplicarResposta(c.status, c.role)
		require.NoError(t, err, "%s × %s", c.status, c.role)
		assert.Equal(t, c.quer, prox, "%s × %s", c.status, c.role)
	}
}

func TestAplicarResposta_ConversaFechadaETerminal(t *testing.T) {
	for _, role := range []string{entity.RoleAdmin, entity.RoleUser} {
		_, err := conversa.AplicarResposta(entity.ConversaFechada, role)
		assert.ErrorIs(t, err, domain.ErrConversaFechada, "role %s", role)
	}
}

func TestAplicarResposta_PapelDesconhecido(t *testing.T) {
	_, err := conversa.AplicarResposta(entity.ConversaAberta, "auditor")
	assert.ErrorIs(t, err, domain.ErrTransicaoInvalida)
}

func TestPodeAbrir(t *testing.T) {
	assert.True(t, conversa.PodeAbrir(entity.RoleUser))
	assert.False(t, conversa.PodeAbrir(entity.RoleAdmin))
}

func TestPodeFechar(t *testing.T) {
	assert.NoError(t, conversa.PodeFechar(entity.ConversaAberta, entity.RoleAdmin))
	assert.NoError(t, conversa.PodeFechar(entity.ConversaRespondidaLoja, entity.RoleAdmin))
	assert.ErrorIs(t, conversa.PodeFechar(entity.ConversaAberta, entity.RoleUser), domain.ErrAcessoNegado)
	assert.ErrorIs(t, conversa.PodeFechar(entity.ConversaFechada, entity.RoleAdmin), domain.ErrConversaFechada)
}
