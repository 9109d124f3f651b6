package entity

import "time"

// Entidade representa uma loja da organização. Nome único dentro da
// organização (comparação sem caixa). Dona das linhas de estoque, auditorias
// e conversas; uma auditoria nunca sobrevive à sua entidade.
type Entidade struct {
	ID            int64
	OrganizacaoID int64
	Nome          string
	CriadoEm      time.Time
}
