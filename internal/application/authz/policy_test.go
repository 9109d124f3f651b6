package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

// entidadeRepoFake resolve GetByID a partir de um mapa em memória.
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

func ptr(v int64) *int64 { return &v }

func TestResolverEntidade_UsuarioDeLoja(t *testing.T) {
	repo := &entidadeRepoFake{}
	caller := authz.Caller{UserID: 7, OrganizacaoID: 1, EntidadeID: ptr(10), Role: entity.RoleUser}

	// Sem pedir loja: cai na própria.
	d, err := authz.ResolverEntidade(context.Background(), repo, caller, 0)
	require.NoError(t, err)
	assert.Equal(t, authz.Permitido, d.Efeito)
	assert.Equal(t, int64(10), d.EntidadeID)

	// Pedindo a própria loja explicitamente: permitido.
	d, err = authz.ResolverEntidade(context.Background(), repo, caller, 10)
	require.NoError(t, err)
	assert.Equal(t, authz.Permitido, d.Efeito)

	// Pedindo outra loja: responde como inexistente, sem revelar nada.
	d, err = authz.ResolverEntidade(context.Background(), repo, caller, 11)
	require.NoError(t, err)
	assert.Equal(t, authz.NaoEncontrado, d.Efeito)
}

func TestResolverEntidade_LojaSemVinculo(t *testing.T) {
	caller := authz.Caller{UserID: 7, OrganizacaoID: 1, Role: entity.RoleUser}
	d, err := authz.ResolverEntidade(context.Background(), &entidadeRepoFake{}, caller, 0)
	require.NoError(t, err)
	assert.Equal(t, authz.Negado, d.Efeito)
	assert.NotEmpty(t, d.Motivo)
}

func TestResolverEntidade_Admin(t *testing.T) {
	repo := &entidadeRepoFake{porID: map[int64]*entity.Entidade{
		10: {ID: 10, OrganizacaoID: 1, Nome: "Loja Centro"},
		20: {ID: 20, OrganizacaoID: 2, Nome: "Loja Alheia"},
	}}
	caller := authz.Caller{UserID: 1, OrganizacaoID: 1, Role: entity.RoleAdmin}

	// Admin precisa nomear a loja.
	d, err := authz.ResolverEntidade(context.Background(), repo, caller, 0)
	require.NoError(t, err)
	assert.Equal(t, authz.Negado, d.Efeito)

	d, err = authz.ResolverEntidade(context.Background(), repo, caller, 10)
	require.NoError(t, err)
	assert.Equal(t, authz.Permitido, d.Efeito)
	assert.Equal(t, int64(10), d.EntidadeID)

	// Loja de outra organização: como se não existisse.
	d, err = authz.ResolverEntidade(context.Background(), repo, caller, 20)
	require.NoError(t, err)
	assert.Equal(t, authz.NaoEncontrado, d.Efeito)

	// Loja inexistente.
	d, err = authz.ResolverEntidade(context.Background(), repo, caller, 99)
	require.NoError(t, err)
	assert.Equal(t, authz.NaoEncontrado, d.Efeito)
}

func TestEscopoLeitura(t *testing.T) {
	admin := authz.Caller{OrganizacaoID: 1, Role: entity.RoleAdmin}
	org, ent := authz.EscopoLeitura(admin)
	assert.Equal(t, int64(1), org)
	assert.Nil(t, ent)

	loja := authz.Caller{OrganizacaoID: 1, EntidadeID: ptr(10), Role: entity.RoleUser}
	org, ent = authz.EscopoLeitura(loja)
	assert.Equal(t, int64(1), org)
	require.NotNil(t, ent)
	assert.Equal(t, int64(10), *ent)
}
