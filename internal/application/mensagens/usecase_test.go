package mensagens_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/application/mensagens"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

// convRepoFake guarda conversas e mensagens em memória com a mesma regra de
// visibilidade do repositório real: fora do escopo, (nil, nil).
type convRepoFake struct {
	seqConv   int64
	seqMsg    int64
	conversas map[int64]*entity.Conversa
	mensagens map[int64][]*entity.Mensagem
	orgDaLoja map[int64]int64
}

func newConvRepoFake() *convRepoFake {
	return &convRepoFake{
		conversas: map[int64]*entity.Conversa{},
		mensagens: map[int64][]*entity.Mensagem{},
		orgDaLoja: map[int64]int64{10: 1, 20: 2},
	}
}

func (f *convRepoFake) Create(ctx context.Context, conv *entity.Conversa) error {
	f.seqConv++
	conv.ID = f.seqConv
	f.conversas[conv.ID] = conv
	return nil
}

func (f *convRepoFake) GetVisivel(ctx context.Context, id, organizacaoID int64, entidadeID *int64) (*entity.Conversa, error) {
	conv, ok := f.conversas[id]
	if !ok || f.orgDaLoja[conv.EntidadeID] != organizacaoID {
		return nil, nil
	}
	if entidadeID != nil && conv.EntidadeID != *entidadeID {
		return nil, nil
	}
	return conv, nil
}

func (f *convRepoFake) ListVisiveis(ctx context.Context, organizacaoID int64, entidadeID *int64) ([]*entity.Conversa, error) {
	var out []*entity.Conversa
	for id := f.seqConv; id >= 1; id-- {
		if conv, err := f.GetVisivel(ctx, id, organizacaoID, entidadeID); err == nil && conv != nil {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (f *convRepoFake) UpdateStatus(ctx context.Context, id int64, status string, quando time.Time) error {
	conv := f.conversas[id]
	conv.Status = status
	conv.UltimaAtualizacao = quando
	return nil
}

func (f *convRepoFake) CreateMensagem(ctx context.Context, msg *entity.Mensagem) error {
	f.seqMsg++
	msg.ID = f.seqMsg
	f.mensagens[msg.ConversaID] = append(f.mensagens[msg.ConversaID], msg)
	return nil
}

func (f *convRepoFake) ListMensagens(ctx context.Context, conversaID int64) ([]*entity.Mensagem, error) {
	return f.mensagens[conversaID], nil
}

func (f *convRepoFake) CountNaoLidas(ctx context.Context, conversaID, leitorID int64) (int, error) {
	n := 0
	for _, m := range f.mensagens[conversaID] {
		if m.AutorID != leitorID && !m.Lida {
			n++
		}
	}
	return n, nil
}

func (f *convRepoFake) MarcarLidas(ctx context.Context, conversaID, leitorID int64) error {
	for _, m := range f.mensagens[conversaID] {
		if m.AutorID != leitorID {
			m.Lida = true
		}
	}
	return nil
}

func admin() authz.Caller {
	return authz.Caller{UserID: 1, OrganizacaoID: 1, Role: entity.RoleAdmin}
}

func lojaCentro() authz.Caller {
	id := int64(10)
	return authz.Caller{UserID: 5, OrganizacaoID: 1, EntidadeID: &id, Role: entity.RoleUser}
}

func abrirConversa(t *testing.T, uc *mensagens.UseCase) *dto.ConversaDetalhe {
	t.Helper()
	det, err := uc.Abrir(context.Background(), lojaCentro(), dto.AbrirConversaRequest{
		Assunto: "Divergência na contagem",
		Texto:   "A categoria Calçados veio com 5 a menos.",
	})
	require.NoError(t, err)
	return det
}

func TestAbrir_SoContaDeLoja(t *testing.T) {
	uc := mensagens.NewUseCase(newConvRepoFake())

	det := abrirConversa(t, uc)
	assert.Equal(t, entity.ConversaAberta, det.Status)
	assert.Equal(t, int64(10), det.EntidadeID)
	require.Len(t, det.Mensagens, 1)
	assert.Equal(t, entity.RoleUser, det.Mensagens[0].AutorRole)

	_, err := uc.Abrir(context.Background(), admin(), dto.AbrirConversaRequest{Assunto: "a", Texto: "b"})
	assert.ErrorIs(t, err, domain.ErrAcessoNegado)
}

func TestAbrir_ValidaAssuntoETexto(t *testing.T) {
	uc := mensagens.NewUseCase(newConvRepoFake())

	_, err := uc.Abrir(context.Background(), lojaCentro(), dto.AbrirConversaRequest{Assunto: "  ", Texto: "oi"})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
	_, err = uc.Abrir(context.Background(), lojaCentro(), dto.AbrirConversaRequest{Assunto: "oi", Texto: ""})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestResponder_ViraStatusConformeOPapel(t *testing.T) {
	uc := mensagens.NewUseCase(newConvRepoFake())
	det := abrirConversa(t, uc)
	ctx := context.Background()

	det, err := uc.Responder(ctx, admin(), det.ID, dto.ResponderRequest{Texto: "Vamos verificar."})
	require.NoError(t, err)
	assert.Equal(t, entity.ConversaRespondidaAdmin, det.Status)
	assert.Len(t, det.Mensagens, 2)

	det, err = uc.Responder(ctx, lojaCentro(), det.ID, dto.ResponderRequest{Texto: "Obrigado."})
	require.NoError(t, err)
	assert.Equal(t, entity.ConversaRespondidaLoja, det.Status)
	assert.Len(t, det.Mensagens, 3)
}

func TestResponder_ConversaFechadaRejeita(t *testing.T) {
	uc := mensagens.NewUseCase(newConvRepoFake())
	det := abrirConversa(t, uc)
	ctx := context.Background()

	_, err := uc.Fechar(ctx, admin(), det.ID)
	require.NoError(t, err)

	_, err = uc.Responder(ctx, lojaCentro(), det.ID, dto.ResponderRequest{Texto: "ainda está aí?"})
	assert.ErrorIs(t, err, domain.ErrConversaFechada)
}

func TestFechar_SoAdminEUmaVez(t *testing.T) {
	uc := mensagens.NewUseCase(newConvRepoFake())
	det := abrirConversa(t, uc)
	ctx := context.Background()

	_, err := uc.Fechar(ctx, lojaCentro(), det.ID)
	assert.ErrorIs(t, err, domain.ErrAcessoNegado)

	resumo, err := uc.Fechar(ctx, admin(), det.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConversaFechada, resumo.Status)

	_, err = uc.Fechar(ctx, admin(), det.ID)
	assert.ErrorIs(t, err, domain.ErrConversaFechada)
}

func TestDetalhar_MarcaMensagensDeTerceirosComoLidas(t *testing.T) {
	repo := newConvRepoFake()
	uc := mensagens.NewUseCase(repo)
	det := abrirConversa(t, uc)
	ctx := context.Background()

	_, err := uc.Responder(ctx, admin(), det.ID, dto.ResponderRequest{Texto: "Resposta da administração."})
	require.NoError(t, err)

	// A loja tem 1 não lida (a resposta do admin) antes de abrir o detalhe.
	lista, err := uc.Listar(ctx, lojaCentro())
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, 1, lista[0].NaoLidas)

	_, err = uc.Detalhar(ctx, lojaCentro(), det.ID)
	require.NoError(t, err)

	lista, err = uc.Listar(ctx, lojaCentro())
	require.NoError(t, err)
	assert.Equal(t, 0, lista[0].NaoLidas)

	// A mensagem da própria loja continua não lida para o admin até ele abrir.
	n, err := repo.CountNaoLidas(ctx, det.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestVisibilidade_ConversaDeOutraLojaNaoExiste(t *testing.T) {
	uc := mensagens.NewUseCase(newConvRepoFake())
	det := abrirConversa(t, uc)

	outra := int64(99)
	forasteiro := authz.Caller{UserID: 9, OrganizacaoID: 1, EntidadeID: &outra, Role: entity.RoleUser}
	_, err := uc.Detalhar(context.Background(), forasteiro, det.ID)
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)

	admin2 := authz.Caller{UserID: 2, OrganizacaoID: 2, Role: entity.RoleAdmin}
	_, err = uc.Responder(context.Background(), admin2, det.ID, dto.ResponderRequest{Texto: "intruso"})
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
}
