package varejonline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbarcelos/auditoria-api/pkg/config"
)

func clienteDeTeste(srv *httptest.Server) *Client {
	return NewClient(config.VarejonlineConfig{BaseURL: srv.URL, Token: "tok-teste"})
}

func TestObterProdutos_ResolveGrupoEDescartaSemDescricao(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apps/api/produtos", r.URL.Path)
		assert.Equal(t, "tok-teste", r.URL.Query().Get("token"))

		pagina := []map[string]any{
			{"descricao": "Sapato Social", "classificacoes": []map[string]any{
				{"nivel": "GRUPO", "nome": "Calçados"},
			}},
			// Nome aninhado em grupo.nome; nível sem diferenciar caixa.
			{"descricao": "Água Mineral", "classificacoes": []map[string]any{
				{"nivel": "grupo", "nome": "", "grupo": map[string]any{"nome": "Bebidas"}},
			}},
			// Sem classificação de nível GRUPO: fallback.
			{"descricao": "Item Solto", "classificacoes": []map[string]any{
				{"nivel": "DEPARTAMENTO", "nome": "Geral"},
			}},
			// Sem descrição: descartado.
			{"descricao": "   "},
		}
		_ = json.NewEncoder(w).Encode(pagina)
	}))
	defer srv.Close()

	produtos, err := clienteDeTeste(srv).ObterProdutos(context.Background())
	require.NoError(t, err)

	require.Len(t, produtos, 3)
	assert.Equal(t, "Sapato Social", produtos[0].NomeItem)
	assert.Equal(t, "Calçados", produtos[0].Grupo)
	assert.Equal(t, "Bebidas", produtos[1].Grupo)
	assert.Equal(t, GrupoPadrao, produtos[2].Grupo)
}

func TestObterProdutos_PercorreTodasAsPaginas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio, _ := strconv.Atoi(r.URL.Query().Get("inicio"))
		assert.Equal(t, strconv.Itoa(tamanhoPagina), r.URL.Query().Get("quantidade"))

		// Primeira página cheia, segunda com um único produto.
		n := tamanhoPagina
		if inicio >= tamanhoPagina {
			n = 1
		}
		pagina := make([]map[string]any, n)
		for i := range pagina {
			pagina[i] = map[string]any{"descricao": fmt.Sprintf("Produto %d", inicio+i)}
		}
		_ = json.NewEncoder(w).Encode(pagina)
	}))
	defer srv.Close()

	produtos, err := clienteDeTeste(srv).ObterProdutos(context.Background())
	require.NoError(t, err)
	assert.Len(t, produtos, tamanhoPagina+1)
}

func TestObterProdutos_ErroHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token inválido", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := clienteDeTeste(srv).ObterProdutos(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
