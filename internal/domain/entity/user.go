package entity

import "time"

// Papéis válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa um usuário do sistema (pertence a uma Organizacao).
// Contas "user" ficam presas a exatamente uma Entidade; contas "admin" não têm
// loja fixa e atuam em qualquer entidade da organização. Invariante: contas
// admin nunca são desativadas, nunca trocam de loja e nunca têm a senha
// redefinida pelo fluxo administrativo.
type User struct {
	ID            int64
	OrganizacaoID int64
	Username      string
	SenhaHash     string // hash bcrypt, nunca em claro no domínio após persistir
	Nome          string
	Role          string // admin, user
	EntidadeID    *int64 // nil para admin
	Ativo         bool
	CriadoEm      time.Time
	AtualizadoEm  time.Time
}

// Admin informa se a conta tem papel administrativo.
func (u *User) Admin() bool { return u.Role == RoleAdmin }
