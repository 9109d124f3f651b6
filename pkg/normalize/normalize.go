// Package normalize fornece a normalização de texto usada para comparar nomes
// de categorias e itens vindos de planilhas e do ERP ("Calçados" e "CALCADOS"
// são a mesma categoria).
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// remove marcas de acentuação (categoria Mn) após decompor em NFD.
var semAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Chave devolve a forma canônica de comparação de um texto: sem acentos,
// maiúsculas e sem espaços nas pontas. Strings que normalizam para a mesma
// chave são tratadas como equivalentes.
func Chave(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(semAcentos, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(strings.TrimSpace(out))
}

// Iguais compara dois textos pela forma canônica.
func Iguais(a, b string) bool { return Chave(a) == Chave(b) }
