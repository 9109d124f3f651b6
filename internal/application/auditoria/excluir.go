package auditoria

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	domaud "github.com/pbarcelos/auditoria-api/internal/domain/auditoria"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/logger"
)

// ExcluirUseCase exclusão guardada de auditorias. Só admin, com a própria
// senha reapresentada e motivo justificado; o motivo vai para o log de
// auditoria, não para o banco.
type ExcluirUseCase struct {
	audRepo  repository.AuditoriaRepository
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewExcluirUseCase constrói o caso de uso.
func NewExcluirUseCase(audRepo repository.AuditoriaRepository, userRepo repository.UserRepository, log *logger.Logger) *ExcluirUseCase {
	return &ExcluirUseCase{audRepo: audRepo, userRepo: userRepo, log: log}
}

// Excluir remove uma auditoria da organização do admin, em qualquer status.
// As guardas rodam em ordem fixa: papel, senha, motivo, existência — assim uma
// senha errada nunca revela se a auditoria existe.
func (uc *ExcluirUseCase) Excluir(ctx context.Context, caller authz.Caller, auditoriaID int64, in dto.ExcluirAuditoriaRequest) error {
	if !caller.Admin() {
		return domain.ErrAcessoNegado
	}

	admin, err := uc.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if admin == nil {
		return domain.ErrAcessoNegado
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.SenhaHash), []byte(in.Senha)) != nil {
		return domain.ErrSenhaIncorreta
	}

	if err := domaud.ValidarMotivoExclusao(in.Motivo); err != nil {
		return err
	}

	aud, err := uc.audRepo.GetVisivel(ctx, auditoriaID, caller.OrganizacaoID, nil)
	if err != nil {
		return err
	}
	if aud == nil {
		return domain.ErrNaoEncontrado
	}

	if err := uc.audRepo.Delete(ctx, aud.ID); err != nil {
		return err
	}

	uc.log.Info().
		Int64("auditoria_id", aud.ID).
		Str("codigo_referencia", aud.CodigoReferencia).
		Int64("admin_id", admin.ID).
		Str("motivo", in.Motivo).
		Msg("auditoria excluída")
	return nil
}
