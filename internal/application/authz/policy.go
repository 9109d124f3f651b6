// Package authz concentra a política de autorização multi-tenant em um único
// ponto, em vez de espalhar comparações de papel por cada operação. O resultado
// é um tipo rotulado sobre o qual os chamadores fazem switch.
package authz

import (
	"context"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

// Caller é a identidade extraída do token: quem chama, de qual organização,
// preso a qual loja (nil para admin) e com qual papel.
type Caller struct {
	UserID        int64
	OrganizacaoID int64
	EntidadeID    *int64
	Role          string
}

// Admin informa se o chamador tem papel administrativo.
func (c Caller) Admin() bool { return c.Role == entity.RoleAdmin }

// Efeito é o rótulo da decisão de autorização.
type Efeito int

const (
	// Permitido: a operação segue, com a entidade resolvida.
	Permitido Efeito = iota
	// Negado: o chamador não pode executar a operação (→ 403).
	Negado
	// NaoEncontrado: o alvo está fora do escopo visível do chamador; responder
	// como inexistente evita vazar existência entre organizações (→ 404).
	NaoEncontrado
)

// Decisao é o resultado rotulado da política.
type Decisao struct {
	Efeito     Efeito
	EntidadeID int64  // válido quando Efeito == Permitido
	Motivo     string // legível, quando Efeito == Negado
}

// ResolverEntidade decide sobre qual loja uma operação de escrita atua.
// Não-admin: sempre a própria loja; pedir outra explicitamente responde como
// inexistente. Admin: precisa nomear uma loja, validada contra a organização.
func ResolverEntidade(ctx context.Context, entidades repository.EntidadeRepository, caller Caller, solicitada int64) (Decisao, error) {
	if !caller.Admin() {
		if caller.EntidadeID == nil {
			return Decisao{Efeito: Negado, Motivo: "conta de loja sem entidade vinculada"}, nil
		}
		if solicitada != 0 && solicitada != *caller.EntidadeID {
			return Decisao{Efeito: NaoEncontrado}, nil
		}
		return Decisao{Efeito: Permitido, EntidadeID: *caller.EntidadeID}, nil
	}

	if solicitada == 0 {
		return Decisao{Efeito: Negado, Motivo: "admin deve informar a entidade"}, nil
	}
	ent, err := entidades.GetByID(ctx, solicitada)
	if err != nil {
		return Decisao{}, err
	}
	if ent == nil || ent.OrganizacaoID != caller.OrganizacaoID {
		return Decisao{Efeito: NaoEncontrado}, nil
	}
	return Decisao{Efeito: Permitido, EntidadeID: ent.ID}, nil
}

// EscopoLeitura devolve o filtro de visibilidade do chamador: organização
// sempre; entidade apenas para contas de loja.
func EscopoLeitura(caller Caller) (organizacaoID int64, entidadeID *int64) {
	if caller.Admin() {
		return caller.OrganizacaoID, nil
	}
	return caller.OrganizacaoID, caller.EntidadeID
}
