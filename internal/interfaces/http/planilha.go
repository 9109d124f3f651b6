package http

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/pkg/normalize"
)

// Cabeçalhos reconhecidos na planilha de estoque. A detecção ignora
// acentos/caixa, então "ESTOQUE ATUAL" e "estoque atual" são a mesma coluna.
const (
	colunaItem    = "Item"
	colunaEstoque = "Estoque atual"
	colunaCusto   = "Custo"
)

// parsePlanilha lê o CSV enviado e devolve as linhas cruas para o merge.
// Item e Estoque atual são obrigatórios; Custo é opcional. Cabeçalho sem as
// colunas obrigatórias aborta o upload inteiro.
func parsePlanilha(f io.Reader) ([]dto.LinhaPlanilha, error) {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	cabecalho, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("planilha vazia ou ilegível")
	}

	idxItem, idxEstoque, idxCusto := -1, -1, -1
	for i, nome := range cabecalho {
		switch normalize.Chave(nome) {
		case normalize.Chave(colunaItem):
			idxItem = i
		case normalize.Chave(colunaEstoque):
			idxEstoque = i
		case normalize.Chave(colunaCusto):
			idxCusto = i
		}
	}
	if idxItem < 0 || idxEstoque < 0 {
		return nil, fmt.Errorf("colunas obrigatórias ausentes: %s e %s", colunaItem, colunaEstoque)
	}

	var linhas []dto.LinhaPlanilha
	for numero := 2; ; numero++ {
		registro, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("linha %d: %w", numero, err)
		}
		linha := dto.LinhaPlanilha{Numero: numero}
		if idxItem < len(registro) {
			linha.Item = strings.TrimSpace(registro[idxItem])
		}
		if idxEstoque < len(registro) {
			linha.Estoque = strings.TrimSpace(registro[idxEstoque])
		}
		if idxCusto >= 0 && idxCusto < len(registro) {
			linha.Custo = strings.TrimSpace(registro[idxCusto])
			linha.TemCusto = linha.Custo != ""
		}
		linhas = append(linhas, linha)
	}
	return linhas, nil
}

// renderCSV escreve um documento tabular genérico: pares de cabeçalho
// (opcionais), linha em branco e a tabela.
func renderCSV(w io.Writer, cabecalho [][2]string, colunas []string, linhas [][]string) error {
	cw := csv.NewWriter(w)
	for _, par := range cabecalho {
		if err := cw.Write([]string{par[0], par[1]}); err != nil {
			return err
		}
	}
	if len(cabecalho) > 0 {
		if err := cw.Write([]string{""}); err != nil {
			return err
		}
	}
	if err := cw.Write(colunas); err != nil {
		return err
	}
	for _, linha := range linhas {
		if err := cw.Write(linha); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
