package entity

import "time"

// Organizacao representa o tenant raiz do sistema: uma rede de varejo dona de
// lojas, usuários e catálogo de produtos. Criada uma vez no cadastro; a remoção
// em cascata de lojas, usuários e produtos parte dela.
type Organizacao struct {
	ID           int64
	Nome         string
	CriadoEm     time.Time
	AtualizadoEm time.Time
}
