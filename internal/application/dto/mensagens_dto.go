package dto

import "time"

// AbrirConversaRequest abre uma conversa da loja com a administração.
type AbrirConversaRequest struct {
	Assunto string `json:"assunto"`
	Texto   string `json:"texto"`
}

// ResponderRequest resposta em uma conversa existente.
type ResponderRequest struct {
	Texto string `json:"texto"`
}

// MensagemResponse uma mensagem na resposta de detalhe.
type MensagemResponse struct {
	ID        int64     `json:"id"`
	AutorID   int64     `json:"autor_id"`
	AutorRole string    `json:"autor_role"`
	Texto     string    `json:"texto"`
	EnviadaEm time.Time `json:"enviada_em"`
	Lida      bool      `json:"lida"`
}

// ConversaResumo linha de listagem com contagem de não lidas do solicitante.
type ConversaResumo struct {
	ID                int64     `json:"id"`
	EntidadeID        int64     `json:"entidade_id"`
	Assunto           string    `json:"assunto"`
	Status            string    `json:"status"`
	NaoLidas          int       `json:"nao_lidas"`
	UltimaAtualizacao time.Time `json:"ultima_atualizacao"`
}

// ConversaDetalhe resumo + mensagens. A leitura do detalhe marca como lidas as
// mensagens de terceiros.
type ConversaDetalhe struct {
	ConversaResumo
	Mensagens []MensagemResponse `json:"mensagens"`
}
