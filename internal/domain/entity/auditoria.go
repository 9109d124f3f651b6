package entity

import "time"

// Status derivados de uma auditoria, exibidos nas listagens.
const (
	StatusEmAndamento = "Em andamento"
	StatusFinalizada  = "Finalizada"
)

// Auditoria representa um evento de contagem física em uma loja.
// DataFim nula = em andamento. Uma auditoria finalizada não aceita novas
// contagens e não volta a abrir; só pode ser excluída (operação de admin).
type Auditoria struct {
	ID               int64
	EntidadeID       int64
	Nome             string
	CodigoReferencia string // "AUD-{ano}-{id}", atribuído após o insert
	Responsavel      string
	DataInicio       time.Time
	DataFim          *time.Time
}

// Finalizada informa se a auditoria já foi encerrada.
func (a *Auditoria) Finalizada() bool { return a.DataFim != nil }

// Status devolve o rótulo de exibição derivado de DataFim.
func (a *Auditoria) Status() string {
	if a.Finalizada() {
		return StatusFinalizada
	}
	return StatusEmAndamento
}

// EscopoItem representa uma categoria dentro do escopo de uma auditoria.
// QtdSistema é congelada na criação da auditoria; mudanças posteriores de
// estoque nunca a alteram. O conjunto de categorias do escopo é fixo: nunca
// cresce nem encolhe depois de criado.
type EscopoItem struct {
	ID            int64
	AuditoriaID   int64
	CategoriaNome string
	QtdSistema    int
	QtdContada    int
	Diferenca     int // QtdContada - QtdSistema
	DataContagem  *time.Time
}
