package entity

import "time"

// Estoque representa a última quantidade de sistema conhecida de um produto em
// uma loja. Uma linha por (Produto, Entidade); sobrescrita por inteiro a cada
// importação de planilha daquela loja.
type Estoque struct {
	ProdutoID         int64
	EntidadeID        int64
	QuantidadeSistema int
	AtualizadoEm      time.Time
}
