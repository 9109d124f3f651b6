package usecase

import (
	"context"
	"sort"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/normalize"
)

// ProdutoERP um produto como devolvido pelo ERP: nome do item e grupo já
// resolvido (categoria de nível GRUPO, com fallback).
type ProdutoERP struct {
	NomeItem string
	Grupo    string
}

// CatalogoERP é o porto para o catálogo do ERP externo (Varejonline).
// A implementação vive em infrastructure.
type CatalogoERP interface {
	ObterProdutos(ctx context.Context) ([]ProdutoERP, error)
}

// ProdutoUseCase consultas de catálogo e sincronização de grupos com o ERP.
type ProdutoUseCase struct {
	produtoRepo repository.ProdutoRepository
	catalogo    CatalogoERP // nil = sincronização desabilitada
}

// NewProdutoUseCase constrói o caso de uso. catalogo pode ser nil.
func NewProdutoUseCase(produtoRepo repository.ProdutoRepository, catalogo CatalogoERP) *ProdutoUseCase {
	return &ProdutoUseCase{produtoRepo: produtoRepo, catalogo: catalogo}
}

// CategoriasImportadas devolve os grupos distintos da organização,
// deduplicados pela forma normalizada (sem acentos/caixa). A primeira grafia
// encontrada vence; o resultado sai ordenado.
func (uc *ProdutoUseCase) CategoriasImportadas(ctx context.Context, caller authz.Caller) ([]string, error) {
	grupos, err := uc.produtoRepo.ListGrupos(ctx, caller.OrganizacaoID)
	if err != nil {
		return nil, err
	}
	vistos := make(map[string]string, len(grupos))
	for _, g := range grupos {
		chave := normalize.Chave(g)
		if chave == "" {
			continue
		}
		if _, ok := vistos[chave]; !ok {
			vistos[chave] = g
		}
	}
	out := make([]string, 0, len(vistos))
	for _, g := range vistos {
		out = append(out, g)
	}
	sort.Strings(out)
	return out, nil
}

// SincronizarGrupos puxa o catálogo do ERP e atualiza o grupo dos produtos da
// organização que casam por nome de item. Produtos sem correspondência local
// são apenas contados; a importação de planilha continua sendo a fonte de
// criação de produtos.
func (uc *ProdutoUseCase) SincronizarGrupos(ctx context.Context, caller authz.Caller) (*dto.SincronizacaoGrupos, error) {
	if !caller.Admin() {
		return nil, domain.ErrAcessoNegado
	}
	if uc.catalogo == nil {
		return nil, domain.ErrEntradaInvalida
	}
	itens, err := uc.catalogo.ObterProdutos(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.SincronizacaoGrupos{ProdutosConsultados: len(itens)}
	for _, item := range itens {
		produto, err := uc.produtoRepo.GetByOrgENome(ctx, caller.OrganizacaoID, item.NomeItem)
		if err != nil {
			return nil, err
		}
		if produto == nil {
			res.SemCorrespondencia++
			continue
		}
		if item.Grupo == "" || normalize.Iguais(produto.Grupo, item.Grupo) {
			continue
		}
		if err := uc.produtoRepo.UpdateGrupo(ctx, produto.ID, item.Grupo); err != nil {
			return nil, err
		}
		res.GruposAtualizados++
	}
	return res, nil
}
