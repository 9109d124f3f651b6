// Package conversa modela o ciclo de vida de uma conversa entre loja e
// administração como uma tabela de transições fechada (status atual × papel do
// ator → próximo status). Transições fora da tabela são rejeitadas com erro
// próprio em vez de comparação ad hoc de strings.
package conversa

import (
	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

type chave struct {
	status string
	role   string
}

// transicoesResposta mapeia o efeito de uma resposta sobre o status.
// FECHADA não aparece: é terminal.
var transicoesResposta = map[chave]string{
	{entity.ConversaAberta, entity.RoleAdmin}:          entity.ConversaRespondidaAdmin,
	{entity.ConversaAberta, entity.RoleUser}:           entity.ConversaRespondidaLoja,
	{entity.ConversaRespondidaAdmin, entity.RoleAdmin}: entity.ConversaRespondidaAdmin,
	{entity.ConversaRespondidaAdmin, entity.RoleUser}:  entity.ConversaRespondidaLoja,
	{entity.ConversaRespondidaLoja, entity.RoleAdmin}:  entity.ConversaRespondidaAdmin,
	{entity.ConversaRespondidaLoja, entity.RoleUser}:   entity.ConversaRespondidaLoja,
}

// AplicarResposta devolve o status resultante de uma resposta enviada por um
// ator com o papel dado. Responder a uma conversa FECHADA devolve
// ErrConversaFechada; combinações desconhecidas, ErrTransicaoInvalida.
func AplicarResposta(statusAtual, role string) (string, error) {
	if statusAtual == entity.ConversaFechada {
		return "", domain.ErrConversaFechada
	}
	prox, ok := transicoesResposta[chave{statusAtual, role}]
	if !ok {
		return "", domain.ErrTransicaoInvalida
	}
	return prox, nil
}

// PodeAbrir: apenas usuários de loja abrem conversas novas.
func PodeAbrir(role string) bool { return role == entity.RoleUser }

// PodeFechar: apenas admins encerram conversas, e só se ainda não fechadas.
func PodeFechar(statusAtual, role string) error {
	if role != entity.RoleAdmin {
		return domain.ErrAcessoNegado
	}
	if statusAtual == entity.ConversaFechada {
		return domain.ErrConversaFechada
	}
	return nil
}
