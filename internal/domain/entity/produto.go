package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto representa um item do catálogo da organização. Grupo é o rótulo de
// categoria usado para montar o escopo das auditorias; Custo (≥ 0, padrão 0)
// pondera o impacto financeiro das divergências. Na importação o casamento é
// por nome (sem caixa) dentro da organização.
type Produto struct {
	ID            int64
	OrganizacaoID int64
	NomeItem      string
	Grupo         string
	Custo         decimal.Decimal
	CriadoEm      time.Time
	AtualizadoEm  time.Time
}
