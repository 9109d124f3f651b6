// Package auditoria concentra as regras puras do motor de reconciliação:
// nomenclatura, aplicação de contagens e validação do motivo de exclusão.
// Nenhuma dependência de persistência ou transporte.
package auditoria

import (
	"fmt"
	"time"
	"unicode"

	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
)

// MinimoLetrasMotivo letras exigidas no motivo de exclusão de uma auditoria.
// Dígitos e pontuação não contam.
const MinimoLetrasMotivo = 10

// NomeAuditoria monta o nome de exibição: "Auditoria {loja} - {dd/mm/aaaa HH:MM}".
func NomeAuditoria(entidadeNome string, quando time.Time) string {
	return fmt.Sprintf("Auditoria %s - %s", entidadeNome, brtime.Em(quando).Format(brtime.LayoutDataHora))
}

// CodigoReferencia monta o código legível "AUD-{ano}-{id}". Só pode ser gerado
// depois que a linha da auditoria recebeu um id.
func CodigoReferencia(ano int, id int64) string {
	return fmt.Sprintf("AUD-%d-%d", ano, id)
}

// AplicarContagem grava uma contagem manual em um item do escopo: sobrescreve
// a quantidade contada (última escrita vence), recalcula a diferença e carimba
// o momento da contagem.
func AplicarContagem(item *entity.EscopoItem, qtdContada int, quando time.Time) {
	item.QtdContada = qtdContada
	item.Diferenca = item.QtdContada - item.QtdSistema
	t := brtime.Em(quando)
	item.DataContagem = &t
}

// ContarLetras conta apenas runas alfabéticas de s.
func ContarLetras(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// ValidarMotivoExclusao exige um motivo em texto livre com pelo menos
// MinimoLetrasMotivo letras ("wrong!!" tem 5 e é rejeitado; "motivo de teste"
// tem 13 e passa).
func ValidarMotivoExclusao(motivo string) error {
	if ContarLetras(motivo) < MinimoLetrasMotivo {
		return domain.ErrMotivoInvalido
	}
	return nil
}
