package dto

import "time"

// SignupRequest cria a organização e sua conta admin em um único passo.
type SignupRequest struct {
	OrganizacaoNome string `json:"organizacao_nome"`
	Username        string `json:"username"`
	Senha           string `json:"senha"`
	Nome            string `json:"nome"`
}

// LoginRequest credenciais de acesso.
type LoginRequest struct {
	Username string `json:"username"`
	Senha    string `json:"senha"`
}

// LoginResponse token bearer (validade de 8 horas) + dados do usuário.
type LoginResponse struct {
	Token string       `json:"access_token"`
	Tipo  string       `json:"token_type"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest cadastro de conta de loja por um admin.
type CreateUserRequest struct {
	Username   string `json:"username"`
	Senha      string `json:"senha"`
	Nome       string `json:"nome"`
	EntidadeID int64  `json:"entidade_id"`
}

// ResetSenhaRequest redefinição administrativa de senha de conta de loja.
type ResetSenhaRequest struct {
	NovaSenha string `json:"nova_senha"`
}

// ReatribuirEntidadeRequest troca a loja de uma conta de loja.
type ReatribuirEntidadeRequest struct {
	EntidadeID int64 `json:"entidade_id"`
}

// UserResponse representação externa de um usuário (nunca expõe o hash).
type UserResponse struct {
	ID            int64     `json:"id"`
	OrganizacaoID int64     `json:"organizacao_id"`
	Username      string    `json:"username"`
	Nome          string    `json:"nome"`
	Role          string    `json:"role"`
	EntidadeID    *int64    `json:"entidade_id,omitempty"`
	Ativo         bool      `json:"ativo"`
	CriadoEm      time.Time `json:"criado_em"`
}
