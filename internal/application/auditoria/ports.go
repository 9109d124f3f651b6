// Package auditoria implementa os casos de uso do motor de reconciliação:
// abertura com escopo congelado, contagens manuais, finalização, exclusão
// guardada e exportação.
package auditoria

import (
	"context"

	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados a essa transação. Garante que auditoria e escopo
// persistem juntos ou não persistem, e que contagem e finalização disputem o
// mesmo bloqueio de linha da auditoria.
type TxRunner interface {
	RunAuditoria(ctx context.Context, fn func(
		audRepo repository.AuditoriaRepository,
		estoqueRepo repository.EstoqueRepository,
	) error) error
}
