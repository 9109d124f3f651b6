package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
	"github.com/pbarcelos/auditoria-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int // 480 = janela de 8 horas
	Issuer     string
}

// SignupTxRunner executa o cadastro organização + admin como uma transação:
// falha no meio não deixa organização sem conta admin.
type SignupTxRunner interface {
	RunSignup(ctx context.Context, fn func(
		orgRepo repository.OrganizacaoRepository,
		userRepo repository.UserRepository,
	) error) error
}

// UseCase casos de uso de autenticação: signup da organização e login.
type UseCase struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizacaoRepository
	tx       SignupTxRunner
	jwtCfg   JWTConfig
}

// NewUseCase constrói o caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, orgRepo repository.OrganizacaoRepository, tx SignupTxRunner, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, orgRepo: orgRepo, tx: tx, jwtCfg: jwtCfg}
}

// Signup cria a organização e sua conta admin atomicamente.
// A checagem de username duplicado ignora o flag ativo: uma conta desativada
// ainda reserva o nome.
func (uc *UseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.UserResponse, error) {
	in.OrganizacaoNome = strings.TrimSpace(in.OrganizacaoNome)
	in.Username = strings.TrimSpace(in.Username)
	if in.OrganizacaoNome == "" || in.Username == "" || in.Senha == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if existente, err := uc.orgRepo.GetByNome(ctx, in.OrganizacaoNome); err != nil {
		return nil, err
	} else if existente != nil {
		return nil, domain.ErrDuplicado
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
	admin := &entity.User{
		Username:     in.Username,
		SenhaHash:    string(hash),
		Nome:         nome,
		Role:         entity.RoleAdmin,
		Ativo:        true,
		CriadoEm:     agora,
		AtualizadoEm: agora,
	}

	err = uc.tx.RunSignup(ctx, func(orgRepo repository.OrganizacaoRepository, userRepo repository.UserRepository) error {
		org := &entity.Organizacao{Nome: in.OrganizacaoNome, CriadoEm: agora, AtualizadoEm: agora}
		if err := orgRepo.Create(ctx, org); err != nil {
			return err
		}
		admin.OrganizacaoID = org.ID
		return userRepo.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(admin), nil
}

// Login verifica username/senha contra as contas ativas e emite o token bearer.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsernameAtivo(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrCredenciaisInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(in.Senha)); err != nil {
		return nil, domain.ErrCredenciaisInvalidas
	}

	var entidadeID int64
	if user.EntidadeID != nil {
		entidadeID = *user.EntidadeID
	}
	token, err := jwt.Gerar(uc.jwtCfg.Secret, user.ID, user.OrganizacaoID, entidadeID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Tipo: "bearer", User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
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
