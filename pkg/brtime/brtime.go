// Package brtime centraliza o relógio de negócio do sistema: todos os
// timestamps (início/fim de auditoria, contagem, última importação de estoque,
// atualização de conversa) são gerados no fuso America/Sao_Paulo,
// independentemente do locale do servidor.
package brtime

import (
	"time"
	_ "time/tzdata" // garante o fuso em imagens sem tzdata instalado
)

// Layouts canônicos de exibição. Formatar sempre por aqui evita deriva de
// formato entre importação, exportação e telas.
const (
	LayoutDataHora        = "02/01/2006 15:04"
	LayoutDataHoraSegundo = "02/01/2006 15:04:05"
	LayoutData            = "02/01/2006"
)

var saoPaulo *time.Location

func init() {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// Sem tzdata nem IANA: UTC-3 fixo (São Paulo não tem mais horário de verão).
		loc = time.FixedZone("-03", -3*60*60)
	}
	saoPaulo = loc
}

// Local devolve o fuso America/Sao_Paulo.
func Local() *time.Location { return saoPaulo }

// Agora devolve o instante atual já no fuso de São Paulo.
func Agora() time.Time { return time.Now().In(saoPaulo) }

// Em converte um instante qualquer para o fuso de São Paulo.
func Em(t time.Time) time.Time { return t.In(saoPaulo) }

// MesmoDia informa se dois instantes caem no mesmo dia de calendário em São Paulo.
func MesmoDia(a, b time.Time) bool {
	ay, am, ad := a.In(saoPaulo).Date()
	by, bm, bd := b.In(saoPaulo).Date()
	return ay == by && am == bm && ad == bd
}

// FimDoDia devolve o último instante do dia de calendário de t em São Paulo.
// Usado para tratar o limite superior de um intervalo de datas como inclusivo.
func FimDoDia(t time.Time) time.Time {
	y, m, d := t.In(saoPaulo).Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), saoPaulo)
}

// FormatarAtualizacao formata o timestamp da última importação de estoque no
// padrão exibido ao usuário: "02/01/2006 às 15:04".
func FormatarAtualizacao(t time.Time) string {
	return t.In(saoPaulo).Format("02/01/2006 às 15:04")
}
