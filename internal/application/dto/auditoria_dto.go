package dto

import "time"

// CriarAuditoriaRequest abre uma auditoria com escopo fixo de categorias.
// EntidadeID é obrigatório para admin e ignorado para contas de loja.
type CriarAuditoriaRequest struct {
	EntidadeID       int64    `json:"entidade_id"`
	Responsavel      string   `json:"responsavel"`
	CategoriasEscopo []string `json:"categorias_escopo"`
}

// ContagemItem uma contagem manual para uma categoria do escopo.
type ContagemItem struct {
	CategoriaNome string `json:"categoria_nome"`
	QtdContada    int    `json:"qtd_contada"`
}

// ContagemRequest lote de contagens manuais.
type ContagemRequest struct {
	Contagens []ContagemItem `json:"contagens"`
}

// ExcluirAuditoriaRequest exclusão guardada: o admin reapresenta a própria
// senha e justifica com um motivo de pelo menos 10 letras.
type ExcluirAuditoriaRequest struct {
	Senha  string `json:"senha"`
	Motivo string `json:"motivo"`
}

// EscopoItemResponse um item do escopo na resposta de detalhe.
type EscopoItemResponse struct {
	CategoriaNome string     `json:"categoria_nome"`
	QtdSistema    int        `json:"qtd_sistema"`
	QtdContada    int        `json:"qtd_contada"`
	Diferenca     int        `json:"diferenca"`
	DataContagem  *time.Time `json:"data_contagem,omitempty"`
}

// AuditoriaResumo linha de listagem, com status derivado.
type AuditoriaResumo struct {
	ID               int64      `json:"id"`
	Nome             string     `json:"nome"`
	CodigoReferencia string     `json:"codigo_referencia"`
	Responsavel      string     `json:"responsavel"`
	DataInicio       time.Time  `json:"data_inicio"`
	DataFim          *time.Time `json:"data_fim,omitempty"`
	Status           string     `json:"status"`
}

// AuditoriaDetalhe resumo + entidade + escopo completo.
type AuditoriaDetalhe struct {
	AuditoriaResumo
	EntidadeID   int64                `json:"entidade_id"`
	EntidadeNome string               `json:"entidade_nome"`
	Escopo       []EscopoItemResponse `json:"escopo"`
}

// RelatorioAuditoria é o documento tabular de exportação: pares chave/valor de
// cabeçalho seguidos de uma tabela por categoria. A renderização (CSV, PDF)
// fica na borda.
type RelatorioAuditoria struct {
	Cabecalho [][2]string            `json:"cabecalho"`
	Colunas   []string               `json:"colunas"`
	Linhas    []RelatorioLinhaEscopo `json:"linhas"`
	Arquivo   string                 `json:"arquivo"` // nome base, sem extensão
}

// RelatorioLinhaEscopo uma categoria na tabela de exportação.
type RelatorioLinhaEscopo struct {
	Categoria  string `json:"categoria"`
	QtdSistema int    `json:"qtd_sistema"`
	QtdContada int    `json:"qtd_contada"`
	Diferenca  int    `json:"diferenca"`
}
