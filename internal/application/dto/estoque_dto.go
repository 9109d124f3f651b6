package dto

// LinhaPlanilha uma linha crua da planilha de estoque, já extraída pelo
// parser da borda. Numero é 1-based e referencia a linha original para
// mensagens de erro. Campos numéricos chegam como texto: a coerção é regra de
// negócio do merge, não do parser.
type LinhaPlanilha struct {
	Numero   int
	Item     string
	Estoque  string
	Custo    string
	TemCusto bool
}

// ResultadoImportacao resumo estruturado do lote de importação.
// Erros carrega as falhas de linha que não abortaram o lote.
type ResultadoImportacao struct {
	ProdutosCriados     int      `json:"produtos_criados"`
	EstoquesAtualizados int      `json:"estoques_atualizados"`
	CustosAtualizados   int      `json:"custos_atualizados"`
	Erros               []string `json:"erros,omitempty"`
	UltimaAtualizacao   string   `json:"ultima_atualizacao"`
}

// UltimaAtualizacaoResponse estado da importação de estoque da organização.
// UltimaAtualizacao já vem formatada para exibição; "Nunca atualizado" quando
// Atualizado é false.
type UltimaAtualizacaoResponse struct {
	UltimaAtualizacao string `json:"ultima_atualizacao"`
	Atualizado        bool   `json:"atualizado"`
}

// EntidadeResponse loja nas listagens.
type EntidadeResponse struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// CreateEntidadeRequest cadastro de loja (admin).
type CreateEntidadeRequest struct {
	Nome string `json:"nome"`
}

// SincronizacaoGrupos resultado da sincronização de grupos com o ERP.
type SincronizacaoGrupos struct {
	ProdutosConsultados int `json:"produtos_consultados"`
	GruposAtualizados   int `json:"grupos_atualizados"`
	SemCorrespondencia  int `json:"sem_correspondencia"`
}
