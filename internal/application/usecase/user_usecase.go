package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
)

// UserUseCase operações administrativas sobre contas de loja: cadastro,
// desativação, redefinição de senha e troca de loja. Todas exigem papel admin
// e nunca têm outra conta admin como alvo.
type UserUseCase struct {
	userRepo     repository.UserRepository
	entidadeRepo repository.EntidadeRepository
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, entidadeRepo repository.EntidadeRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, entidadeRepo: entidadeRepo}
}

// Criar cadastra uma conta de loja vinculada a uma entidade da organização.
// A checagem de duplicidade ignora o flag ativo.
func (uc *UserUseCase) Criar(ctx context.Context, caller authz.Caller, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !caller.Admin() {
		return nil, domain.ErrAcessoNegado
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Senha == "" {
		return nil, domain.ErrEntradaInvalida
	}

	decisao, err := authz.ResolverEntidade(ctx, uc.entidadeRepo, caller, in.EntidadeID)
	if err != nil {
		return nil, err
	}
	switch decisao.Efeito {
	case authz.Negado:
		return nil, domain.ErrAcessoNegado
	case authz.NaoEncontrado:
		return nil, domain.ErrNaoEncontrado
	}

	if existente, err := uc.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existente != nil {
		return nil, domain.ErrDuplicado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nome := in.Nome
	if nome == "" {
		nome = in.Username
	}
	agora := brtime.Agora()
	entidadeID := decisao.EntidadeID
	user := &entity.User{
		OrganizacaoID: caller.OrganizacaoID,
		Username:      in.Username,
		SenhaHash:     string(hash),
		Nome:          nome,
		Role:          entity.RoleUser,
		EntidadeID:    &entidadeID,
		Ativo:         true,
		CriadoEm:      agora,
		AtualizadoEm:  agora,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

// Listar devolve os usuários da organização do chamador (apenas admin).
func (uc *UserUseCase) Listar(ctx context.Context, caller authz.Caller) ([]dto.UserResponse, error) {
	if !caller.Admin() {
		return nil, domain.ErrAcessoNegado
	}
	users, err := uc.userRepo.ListByOrganizacao(ctx, caller.OrganizacaoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *userResponse(u))
	}
	return out, nil
}

// Desativar marca uma conta de loja como inativa; contas inativas não
// autenticam mais.
func (uc *UserUseCase) Desativar(ctx context.Context, caller authz.Caller, userID int64) error {
	alvo, err := uc.alvoDeLoja(ctx, caller, userID)
	if err != nil {
		return err
	}
	alvo.Ativo = false
	alvo.AtualizadoEm = brtime.Agora()
	return uc.userRepo.Update(ctx, alvo)
}

// ResetarSenha redefine a senha de uma conta de loja.
func (uc *UserUseCase) ResetarSenha(ctx context.Context, caller authz.Caller, userID int64, novaSenha string) error {
	if novaSenha == "" {
		return domain.ErrEntradaInvalida
	}
	alvo, err := uc.alvoDeLoja(ctx, caller, userID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(novaSenha), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	alvo.SenhaHash = string(hash)
	alvo.AtualizadoEm = brtime.Agora()
	return uc.userRepo.Update(ctx, alvo)
}

// ReatribuirEntidade move uma conta de loja para outra loja da organização.
func (uc *UserUseCase) ReatribuirEntidade(ctx context.Context, caller authz.Caller, userID, entidadeID int64) error {
	alvo, err := uc.alvoDeLoja(ctx, caller, userID)
	if err != nil {
		return err
	}
	decisao, err := authz.ResolverEntidade(ctx, uc.entidadeRepo, caller, entidadeID)
	if err != nil {
		return err
	}
	switch decisao.Efeito {
	case authz.Negado:
		return domain.ErrAcessoNegado
	case authz.NaoEncontrado:
		return domain.ErrNaoEncontrado
	}
	nova := decisao.EntidadeID
	alvo.EntidadeID = &nova
	alvo.AtualizadoEm = brtime.Agora()
	return uc.userRepo.Update(ctx, alvo)
}

// alvoDeLoja carrega o usuário alvo e aplica as guardas comuns: chamador
// admin, alvo na mesma organização (fora dela responde como inexistente) e
// alvo jamais admin.
func (uc *UserUseCase) alvoDeLoja(ctx context.Context, caller authz.Caller, userID int64) (*entity.User, error) {
	if !caller.Admin() {
		return nil, domain.ErrAcessoNegado
	}
	alvo, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if alvo == nil || alvo.OrganizacaoID != caller.OrganizacaoID {
		return nil, domain.ErrNaoEncontrado
	}
	if alvo.Admin() {
		return nil, domain.ErrAcessoNegado
	}
	return alvo, nil
}

func userResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:            u.ID,
		OrganizacaoID: u.OrganizacaoID,
		Username:      u.Username,
		Nome:          u.Nome,
		Role:          u.Role,
		EntidadeID:    u.EntidadeID,
		Ativo:         u.Ativo,
		CriadoEm:      u.CriadoEm,
	}
}
