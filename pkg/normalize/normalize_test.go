package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pbarcelos/auditoria-api/pkg/normalize"
)

func TestChave(t *testing.T) {
	casos := []struct {
		entrada string
		quer    string
	}{
		{"Calçados", "CALCADOS"},
		{"CALCADOS", "CALCADOS"},
		{"  eletrônicos  ", "ELETRONICOS"},
		{"Não Perecíveis", "NAO PERECIVEIS"},
		{"", ""},
		{"Açaí", "ACAI"},
	}
	for _, c := range casos {
		assert.Equal(t, c.quer, normalize.Chave(c.entrada), "entrada %q", c.entrada)
	}
}

func TestIguais(t *testing.T) {
	assert.True(t, normalize.Iguais("Calçados", "calcados"))
	assert.True(t, normalize.Iguais(" Bebidas ", "BEBIDAS"))
	assert.False(t, normalize.Iguais("Calçados", "Calças"))
}
