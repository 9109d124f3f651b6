package auditoria_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appaud "github.com/pbarcelos/auditoria-api/internal/application/auditoria"
	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
	"github.com/pbarcelos/auditoria-api/pkg/logger"
)

// Fakes em memória. A visibilidade replica a regra do repositório real:
// auditoria fora da organização (ou da loja, quando informada) responde
// (nil, nil).

type audRepoFake struct {
	seq        int64
	auditorias map[int64]*entity.Auditoria
	escopos    map[int64][]*entity.EscopoItem
	orgDaLoja  map[int64]int64
	excluidas  []int64
}

func newAudRepoFake(orgDaLoja map[int64]int64) *audRepoFake {
	return &audRepoFake{
		auditorias: map[int64]*entity.Auditoria{},
		escopos:    map[int64][]*entity.EscopoItem{},
		orgDaLoja:  orgDaLoja,
	}
}

func (f *audRepoFake) Create(ctx context.Context, aud *entity.Auditoria) error {
	f.seq++
	aud.ID = f.seq
	f.auditorias[aud.ID] = aud
	return nil
}

func (f *audRepoFake) SetCodigoReferencia(ctx context.Context, id int64, codigo string) error {
	f.auditorias[id].CodigoReferencia = codigo
	return nil
}

func (f *audRepoFake) GetVisivel(ctx context.Context, id, organizacaoID int64, entidadeID *int64) (*entity.Auditoria, error) {
	aud, ok := f.auditorias[id]
	if !ok || f.orgDaLoja[aud.EntidadeID] != organizacaoID {
		return nil, nil
	}
	if entidadeID != nil && aud.EntidadeID != *entidadeID {
		return nil, nil
	}
	return aud, nil
}

func (f *audRepoFake) GetVisivelForUpdate(ctx context.Context, id, organizacaoID int64, entidadeID *int64) (*entity.Auditoria, error) {
	return f.GetVisivel(ctx, id, organizacaoID, entidadeID)
}

func (f *audRepoFake) ListVisiveis(ctx context.Context, organizacaoID int64, entidadeID *int64) ([]*entity.Auditoria, error) {
	var out []*entity.Auditoria
	for id := f.seq; id >= 1; id-- {
		if aud, err := f.GetVisivel(ctx, id, organizacaoID, entidadeID); err == nil && aud != nil {
			out = append(out, aud)
		}
	}
	return out, nil
}

func (f *audRepoFake) CreateEscopoItem(ctx context.Context, item *entity.EscopoItem) error {
	item.ID = int64(len(f.escopos[item.AuditoriaID]) + 1)
	f.escopos[item.AuditoriaID] = append(f.escopos[item.AuditoriaID], item)
	return nil
}

func (f *audRepoFake) ListEscopo(ctx context.Context, auditoriaID int64) ([]*entity.EscopoItem, error) {
	return f.escopos[auditoriaID], nil
}

func (f *audRepoFake) UpdateContagem(ctx context.Context, item *entity.EscopoItem) error {
	for _, it := range f.escopos[item.AuditoriaID] {
		if it.ID == item.ID {
			*it = *item
		}
	}
	return nil
}

func (f *audRepoFake) SetDataFim(ctx context.Context, id int64, fim time.Time) error {
	f.auditorias[id].DataFim = &fim
	return nil
}

func (f *audRepoFake) Delete(ctx context.Context, id int64) error {
	delete(f.auditorias, id)
	delete(f.escopos, id)
	f.excluidas = append(f.excluidas, id)
	return nil
}

type estoqueRepoFake struct {
	somas map[string]int // soma de sistema por nome de categoria
}

func (f *estoqueRepoFake) Upsert(ctx context.Context, est *entity.Estoque) error { return nil }
func (f *estoqueRepoFake) SomaPorCategoria(ctx context.Context, organizacaoID, entidadeID int64, categoria string) (int, error) {
	return f.somas[categoria], nil
}

type configRepoFake struct {
	ultima *time.Time
}

func (f *configRepoFake) GetUltimaAtualizacaoEstoque(ctx context.Context, organizacaoID int64) (*time.Time, error) {
	return f.ultima, nil
}
func (f *configRepoFake) SetUltimaAtualizacaoEstoque(ctx context.Context, organizacaoID int64, quando time.Time) error {
	f.ultima = &quando
	return nil
}

type entidadeRepoFake struct {
	porID map[int64]*entity.Entidade
}

func (f *entidadeRepoFake) Create(ctx context.Context, ent *entity.Entidade) error { return nil }
func (f *entidadeRepoFake) GetByID(ctx context.Context, id int64) (*entity.Entidade, error) {
	return f.porID[id], nil
}
func (f *entidadeRepoFake) GetByOrgENome(ctx context.Context, organizacaoID int64, nome string) (*entity.Entidade, error) {
	return nil, nil
}
func (f *entidadeRepoFake) ListByOrganizacao(ctx context.Context, organizacaoID int64) ([]*entity.Entidade, error) {
	return nil, nil
}

type userRepoFake struct {
	porID map[int64]*entity.User
}

func (f *userRepoFake) Create(ctx context.Context, u *entity.User) error { return nil }
func (f *userRepoFake) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return f.porID[id], nil
}
func (f *userRepoFake) GetByUsernameAtivo(ctx context.Context, username string) (*entity.User, error) {
	return nil, nil
}
func (f *userRepoFake) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, nil
}
func (f *userRepoFake) Update(ctx context.Context, u *entity.User) error { return nil }
func (f *userRepoFake) ListByOrganizacao(ctx context.Context, organizacaoID int64) ([]*entity.User, error) {
	return nil, nil
}

type txRunnerFake struct {
	aud *audRepoFake
	est *estoqueRepoFake
}

func (f *txRunnerFake) RunAuditoria(ctx context.Context, fn func(
	audRepo repository.AuditoriaRepository,
	estoqueRepo repository.EstoqueRepository,
) error) error {
	return fn(f.aud, f.est)
}

// ambiente monta o conjunto padrão: organização 1 com a loja 10.
type ambiente struct {
	aud    *audRepoFake
	est    *estoqueRepoFake
	config *configRepoFake
	ents   *entidadeRepoFake
	tx     *txRunnerFake

	criar     *appaud.CriarUseCase
	consultar *appaud.ConsultarUseCase
	contagem  *appaud.ContagemUseCase
	exportar  *appaud.ExportarUseCase
}

func novoAmbiente() *ambiente {
	a := &ambiente{
		aud:    newAudRepoFake(map[int64]int64{10: 1, 20: 2}),
		est:    &estoqueRepoFake{somas: map[string]int{}},
		config: &configRepoFake{},
		ents: &entidadeRepoFake{porID: map[int64]*entity.Entidade{
			10: {ID: 10, OrganizacaoID: 1, Nome: "Loja Centro"},
			20: {ID: 20, OrganizacaoID: 2, Nome: "Loja Alheia"},
		}},
	}
	a.tx = &txRunnerFake{aud: a.aud, est: a.est}
	a.criar = appaud.NewCriarUseCase(a.tx, a.config, a.ents)
	a.consultar = appaud.NewConsultarUseCase(a.aud, a.ents)
	a.contagem = appaud.NewContagemUseCase(a.tx, a.consultar)
	a.exportar = appaud.NewExportarUseCase(a.consultar)
	return a
}

func (a *ambiente) estoqueImportadoHoje() {
	agora := brtime.Agora()
	a.config.ultima = &agora
}

func admin() authz.Caller {
	return authz.Caller{UserID: 1, OrganizacaoID: 1, Role: entity.RoleAdmin}
}

func lojaCentro() authz.Caller {
	id := int64(10)
	return authz.Caller{UserID: 5, OrganizacaoID: 1, EntidadeID: &id, Role: entity.RoleUser}
}

func TestCriar_CongelaEscopoEGeraCodigo(t *testing.T) {
	a := novoAmbiente()
	a.estoqueImportadoHoje()
	a.est.somas = map[string]int{"Calçados": 120, "Bebidas": 40}

	det, err := a.criar.Criar(context.Background(), admin(), dto.CriarAuditoriaRequest{
		EntidadeID:  10,
		Responsavel: "Maria",
		// Duplicatas e vazios são descartados preservando a ordem.
		CategoriasEscopo: []string{"Calçados", "", "Bebidas", "Calçados"},
	})
	require.NoError(t, err)

	assert.Equal(t, "AUD-"+time.Now().In(brtime.Local()).Format("2006")+"-1", det.CodigoReferencia)
	assert.Contains(t, det.Nome, "Auditoria Loja Centro - ")
	assert.Equal(t, entity.StatusEmAndamento, det.Status)
	require.Len(t, det.Escopo, 2)
	assert.Equal(t, "Calçados", det.Escopo[0].CategoriaNome)
	assert.Equal(t, 120, det.Escopo[0].QtdSistema)
	assert.Equal(t, 0, det.Escopo[0].QtdContada)
	assert.Equal(t, 0, det.Escopo[0].Diferenca)
	assert.Equal(t, "Bebidas", det.Escopo[1].CategoriaNome)
	assert.Equal(t, 40, det.Escopo[1].QtdSistema)

	// A foto é congelada: mudar o estoque depois não altera o escopo gravado.
	a.est.somas["Calçados"] = 999
	rele, err := a.consultar.Detalhar(context.Background(), admin(), det.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, rele.Escopo[0].QtdSistema)
}

func TestCriar_ExigeImportacaoDoDia(t *testing.T) {
	a := novoAmbiente()
	req := dto.CriarAuditoriaRequest{EntidadeID: 10, Responsavel: "Maria", CategoriasEscopo: []string{"Calçados"}}

	// Nunca importou.
	_, err := a.criar.Criar(context.Background(), admin(), req)
	assert.ErrorIs(t, err, domain.ErrEstoqueDesatualizado)

	// Importou ontem.
	ontem := brtime.Agora().AddDate(0, 0, -1)
	a.config.ultima = &ontem
	_, err = a.criar.Criar(context.Background(), admin(), req)
	assert.ErrorIs(t, err, domain.ErrEstoqueDesatualizado)

	a.estoqueImportadoHoje()
	_, err = a.criar.Criar(context.Background(), admin(), req)
	assert.NoError(t, err)
}

func TestCriar_ValidaEntrada(t *testing.T) {
	a := novoAmbiente()
	a.estoqueImportadoHoje()

	_, err := a.criar.Criar(context.Background(), admin(), dto.CriarAuditoriaRequest{
		EntidadeID: 10, Responsavel: "  ", CategoriasEscopo: []string{"Calçados"},
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	_, err = a.criar.Criar(context.Background(), admin(), dto.CriarAuditoriaRequest{
		EntidadeID: 10, Responsavel: "Maria",
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCriar_AdminNaoEnxergaLojaDeOutraOrganizacao(t *testing.T) {
	a := novoAmbiente()
	a.estoqueImportadoHoje()

	_, err := a.criar.Criar(context.Background(), admin(), dto.CriarAuditoriaRequest{
		EntidadeID: 20, Responsavel: "Maria", CategoriasEscopo: []string{"Calçados"},
	})
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
}

func criarAuditoria(t *testing.T, a *ambiente) *dto.AuditoriaDetalhe {
	t.Helper()
	a.estoqueImportadoHoje()
	a.est.somas["Calçados"] = 100
	det, err := a.criar.Criar(context.Background(), admin(), dto.CriarAuditoriaRequest{
		EntidadeID: 10, Responsavel: "Maria", CategoriasEscopo: []string{"Calçados"},
	})
	require.NoError(t, err)
	return det
}

func TestSalvarContagens_AtualizaDiferenca(t *testing.T) {
	a := novoAmbiente()
	det := criarAuditoria(t, a)

	det, err := a.contagem.SalvarContagens(context.Background(), lojaCentro(), det.ID, dto.ContagemRequest{
		Contagens: []dto.ContagemItem{
			{CategoriaNome: "Calçados", QtdContada: 95},
			// Fora do escopo: ignorada em silêncio.
			{CategoriaNome: "Perfumaria", QtdContada: 10},
		},
	})
	require.NoError(t, err)

	require.Len(t, det.Escopo, 1)
	assert.Equal(t, 95, det.Escopo[0].QtdContada)
	assert.Equal(t, -5, det.Escopo[0].Diferenca)
	assert.NotNil(t, det.Escopo[0].DataContagem)

	// Recontagem sobrescreve.
	det, err = a.contagem.SalvarContagens(context.Background(), lojaCentro(), det.ID, dto.ContagemRequest{
		Contagens: []dto.ContagemItem{{CategoriaNome: "Calçados", QtdContada: 102}},
	})
	require.NoError(t, err)
	assert.Equal(t, 102, det.Escopo[0].QtdContada)
	assert.Equal(t, 2, det.Escopo[0].Diferenca)
}

func TestSalvarContagens_AuditoriaFinalizadaRejeita(t *testing.T) {
	a := novoAmbiente()
	det := criarAuditoria(t, a)

	_, err := a.contagem.Finalizar(context.Background(), admin(), det.ID)
	require.NoError(t, err)

	_, err = a.contagem.SalvarContagens(context.Background(), admin(), det.ID, dto.ContagemRequest{
		Contagens: []dto.ContagemItem{{CategoriaNome: "Calçados", QtdContada: 95}},
	})
	assert.ErrorIs(t, err, domain.ErrAuditoriaFinalizada)
}

func TestFinalizar_Idempotente(t *testing.T) {
	a := novoAmbiente()
	det := criarAuditoria(t, a)

	det, err := a.contagem.Finalizar(context.Background(), admin(), det.ID)
	require.NoError(t, err)
	require.NotNil(t, det.DataFim)
	assert.Equal(t, entity.StatusFinalizada, det.Status)
	primeiraDataFim := *det.DataFim

	det, err = a.contagem.Finalizar(context.Background(), admin(), det.ID)
	require.NoError(t, err)
	require.NotNil(t, det.DataFim)
	assert.True(t, det.DataFim.Equal(primeiraDataFim), "segunda finalização não muda nada")
}

func TestContagem_AuditoriaInexistente(t *testing.T) {
	a := novoAmbiente()

	_, err := a.contagem.SalvarContagens(context.Background(), admin(), 99, dto.ContagemRequest{})
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)

	_, err = a.contagem.Finalizar(context.Background(), admin(), 99)
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
}

func TestListar_LojaSoEnxergaAsSuas(t *testing.T) {
	a := novoAmbiente()
	criarAuditoria(t, a)
	criarAuditoria(t, a)

	lista, err := a.consultar.Listar(context.Background(), lojaCentro())
	require.NoError(t, err)
	require.Len(t, lista, 2)
	// Mais recente primeiro.
	assert.Greater(t, lista[0].ID, lista[1].ID)

	outra := int64(99)
	forasteiro := authz.Caller{UserID: 9, OrganizacaoID: 1, EntidadeID: &outra, Role: entity.RoleUser}
	lista, err = a.consultar.Listar(context.Background(), forasteiro)
	require.NoError(t, err)
	assert.Empty(t, lista)
}

func excluirUseCase(a *ambiente, senha string) (*appaud.ExcluirUseCase, authz.Caller) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	users := &userRepoFake{porID: map[int64]*entity.User{
		1: {ID: 1, OrganizacaoID: 1, Username: "admin", SenhaHash: string(hash), Role: entity.RoleAdmin},
	}}
	log := logger.New(logger.Config{Level: "error"})
	return appaud.NewExcluirUseCase(a.aud, users, log), admin()
}

func TestExcluir_GuardasEmOrdem(t *testing.T) {
	a := novoAmbiente()
	det := criarAuditoria(t, a)
	uc, adm := excluirUseCase(a, "admin123")
	ctx := context.Background()

	// Papel primeiro.
	err := uc.Excluir(ctx, lojaCentro(), det.ID, dto.ExcluirAuditoriaRequest{Senha: "admin123", Motivo: "motivo de teste"})
	assert.ErrorIs(t, err, domain.ErrAcessoNegado)

	// Senha errada nunca revela existência: mesmo erro para auditoria real e fictícia.
	err = uc.Excluir(ctx, adm, det.ID, dto.ExcluirAuditoriaRequest{Senha: "errada", Motivo: "motivo de teste"})
	assert.ErrorIs(t, err, domain.ErrSenhaIncorreta)
	err = uc.Excluir(ctx, adm, 999, dto.ExcluirAuditoriaRequest{Senha: "errada", Motivo: "motivo de teste"})
	assert.ErrorIs(t, err, domain.ErrSenhaIncorreta)

	// Motivo curto demais ("wrong!!" tem 5 letras).
	err = uc.Excluir(ctx, adm, det.ID, dto.ExcluirAuditoriaRequest{Senha: "admin123", Motivo: "wrong!!"})
	assert.ErrorIs(t, err, domain.ErrMotivoInvalido)

	// Só então a existência.
	err = uc.Excluir(ctx, adm, 999, dto.ExcluirAuditoriaRequest{Senha: "admin123", Motivo: "motivo de teste"})
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)

	// E por fim a exclusão de verdade, em qualquer status.
	err = uc.Excluir(ctx, adm, det.ID, dto.ExcluirAuditoriaRequest{Senha: "admin123", Motivo: "motivo de teste"})
	require.NoError(t, err)
	assert.Equal(t, []int64{det.ID}, a.aud.excluidas)

	_, err = a.consultar.Detalhar(ctx, adm, det.ID)
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
}

func TestExportar_EmAbertoEOrdenadoPorCategoria(t *testing.T) {
	a := novoAmbiente()
	a.estoqueImportadoHoje()
	a.est.somas = map[string]int{"Calçados": 120, "Bebidas": 40}
	det, err := a.criar.Criar(context.Background(), admin(), dto.CriarAuditoriaRequest{
		EntidadeID: 10, Responsavel: "Maria", CategoriasEscopo: []string{"Calçados", "Bebidas"},
	})
	require.NoError(t, err)

	rel, err := a.exportar.Exportar(context.Background(), admin(), det.ID)
	require.NoError(t, err)

	assert.Equal(t, det.CodigoReferencia, rel.Arquivo)
	assert.Equal(t, []string{"Categoria", "Qtd Sistema", "Qtd Contada", "Diferença"}, rel.Colunas)

	cab := map[string]string{}
	for _, par := range rel.Cabecalho {
		cab[par[0]] = par[1]
	}
	assert.Equal(t, det.CodigoReferencia, cab["Código da Auditoria"])
	assert.Equal(t, "Loja Centro", cab["Entidade"])
	assert.Equal(t, "Maria", cab["Responsável"])
	assert.Equal(t, "Em aberto", cab["Data de Fim"])

	// Linhas em ordem alfabética de categoria, não na ordem do escopo.
	require.Len(t, rel.Linhas, 2)
	assert.Equal(t, "Bebidas", rel.Linhas[0].Categoria)
	assert.Equal(t, "Calçados", rel.Linhas[1].Categoria)
	assert.Equal(t, 120, rel.Linhas[1].QtdSistema)

	// Depois de finalizar, a data de fim aparece formatada.
	_, err = a.contagem.Finalizar(context.Background(), admin(), det.ID)
	require.NoError(t, err)
	rel, err = a.exportar.Exportar(context.Background(), admin(), det.ID)
	require.NoError(t, err)
	for _, par := range rel.Cabecalho {
		if par[0] == "Data de Fim" {
			assert.NotEqual(t, "Em aberto", par[1])
			assert.Regexp(t, `^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}$`, par[1])
		}
	}
}
