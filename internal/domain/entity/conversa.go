package entity

import "time"

// Status de uma conversa entre loja e administração.
// ABERTA → RESPONDIDA_ADMIN ⇄ RESPONDIDA_LOJA → FECHADA (terminal).
const (
	ConversaAberta          = "ABERTA"
	ConversaRespondidaAdmin = "RESPONDIDA_ADMIN"
	ConversaRespondidaLoja  = "RESPONDIDA_LOJA"
	ConversaFechada         = "FECHADA"
)

// Conversa pertence a uma Entidade. Aberta por um usuário de loja; fechada
// apenas por admin. Cada resposta atualiza UltimaAtualizacao e vira o status
// conforme o papel de quem respondeu.
type Conversa struct {
	ID                int64
	EntidadeID        int64
	Assunto           string
	Status            string
	CriadaEm          time.Time
	UltimaAtualizacao time.Time
}

// Mensagem de uma conversa, ordenada por EnviadaEm. Lida marca a leitura pelo
// lado destinatário; a contagem de não lidas exclui mensagens do próprio autor.
type Mensagem struct {
	ID         int64
	ConversaID int64
	AutorID    int64
	AutorRole  string
	Texto      string
	EnviadaEm  time.Time
	Lida       bool
}
