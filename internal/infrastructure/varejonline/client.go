// Package varejonline implementa o cliente do ERP Varejonline para leitura do
// catálogo de produtos (endpoint paginado /apps/api/produtos).
package varejonline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pbarcelos/auditoria-api/internal/application/usecase"
	"github.com/pbarcelos/auditoria-api/pkg/config"
)

// Verificação em tempo de compilação de que Client implementa CatalogoERP.
var _ usecase.CatalogoERP = (*Client)(nil)

// Tamanho de página da API do Varejonline.
const tamanhoPagina = 300

// GrupoPadrao categoria atribuída quando o produto não tem classificação de
// nível GRUPO no ERP.
const GrupoPadrao = "Sem Grupo"

// Client adaptador HTTP do catálogo Varejonline.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient constrói o cliente. Token vazio desabilita a sincronização; o
// chamador decide não injetar o cliente nesse caso.
func NewClient(cfg config.VarejonlineConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Estruturas do payload /apps/api/produtos.

type produtoAPI struct {
	Descricao      string          `json:"descricao"`
	Classificacoes []classificacao `json:"classificacoes"`
}

type classificacao struct {
	Nivel string     `json:"nivel"`
	Nome  string     `json:"nome"`
	Grupo *grupoInfo `json:"grupo"`
}

type grupoInfo struct {
	Nome string `json:"nome"`
}

// ObterProdutos percorre todas as páginas do catálogo e devolve cada produto
// com o grupo resolvido: a classificação de nível GRUPO, com fallback para
// GrupoPadrao.
func (c *Client) ObterProdutos(ctx context.Context) ([]usecase.ProdutoERP, error) {
	var out []usecase.ProdutoERP
	for inicio := 0; ; inicio += tamanhoPagina {
		pagina, err := c.pagina(ctx, inicio)
		if err != nil {
			return nil, err
		}
		for _, p := range pagina {
			if strings.TrimSpace(p.Descricao) == "" {
				continue
			}
			out = append(out, usecase.ProdutoERP{
				NomeItem: strings.TrimSpace(p.Descricao),
				Grupo:    resolverGrupo(p),
			})
		}
		if len(pagina) < tamanhoPagina {
			return out, nil
		}
	}
}

func (c *Client) pagina(ctx context.Context, inicio int) ([]produtoAPI, error) {
	q := url.Values{}
	q.Set("token", c.token)
	q.Set("inicio", strconv.Itoa(inicio))
	q.Set("quantidade", strconv.Itoa(tamanhoPagina))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/apps/api/produtos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("montar request varejonline: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chamar varejonline: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("ler resposta varejonline: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("varejonline respondeu %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pagina []produtoAPI
	if err := json.Unmarshal(body, &pagina); err != nil {
		return nil, fmt.Errorf("decodificar resposta varejonline: %w", err)
	}
	return pagina, nil
}

// resolverGrupo procura a classificação de nível GRUPO. Alguns cadastros trazem
// o nome direto na classificação, outros aninhado em grupo.nome.
func resolverGrupo(p produtoAPI) string {
	for _, cl := range p.Classificacoes {
		if !strings.EqualFold(cl.Nivel, "GRUPO") {
			continue
		}
		if nome := strings.TrimSpace(cl.Nome); nome != "" {
			return nome
		}
		if cl.Grupo != nil {
			if nome := strings.TrimSpace(cl.Grupo.Nome); nome != "" {
				return nome
			}
		}
	}
	return GrupoPadrao
}
