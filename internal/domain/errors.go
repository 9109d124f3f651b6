package domain

import "errors"

// Erros de domínio (sem dependências externas).
//
// A camada HTTP mapeia cada família para um status distinto: validação → 400,
// autorização → 403, não encontrado → 404. Recursos fora do escopo do chamador
// respondem como não encontrados para não vazar existência entre organizações.
var (
	ErrNaoEncontrado        = errors.New("recurso não encontrado")
	ErrEntradaInvalida      = errors.New("entrada inválida")
	ErrDuplicado            = errors.New("recurso duplicado")
	ErrCredenciaisInvalidas = errors.New("usuário ou senha inválidos")
	ErrAcessoNegado         = errors.New("acesso negado")

	// Motor de auditoria.
	ErrEstoqueDesatualizado = errors.New("o estoque foi atualizado em um dia diferente de hoje")
	ErrAuditoriaFinalizada  = errors.New("auditoria já finalizada")
	ErrSenhaIncorreta       = errors.New("senha incorreta")
	ErrMotivoInvalido       = errors.New("motivo deve conter pelo menos 10 letras")

	// Mensageria.
	ErrConversaFechada   = errors.New("conversa fechada não aceita respostas")
	ErrTransicaoInvalida = errors.New("transição de status inválida")
)
