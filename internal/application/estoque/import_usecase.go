// Package estoque implementa o merge da importação de planilhas de estoque:
// casa ou cria produtos, sobrescreve as quantidades de sistema da loja alvo e
// registra o timestamp da última importação da organização.
package estoque

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pbarcelos/auditoria-api/internal/application/authz"
	"github.com/pbarcelos/auditoria-api/internal/application/dto"
	"github.com/pbarcelos/auditoria-api/internal/domain"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
	"github.com/pbarcelos/auditoria-api/pkg/brtime"
	"github.com/pbarcelos/auditoria-api/pkg/normalize"
)

// ImportTxRunner executa o lote inteiro em uma transação com commit único no
// final: uma falha tardia não deixa metade da planilha aplicada.
type ImportTxRunner interface {
	RunImportacao(ctx context.Context, fn func(
		produtoRepo repository.ProdutoRepository,
		estoqueRepo repository.EstoqueRepository,
		configRepo repository.ConfiguracaoRepository,
	) error) error
}

// ImportUseCase merge de uma planilha de estoque para uma loja alvo.
type ImportUseCase struct {
	tx           ImportTxRunner
	entidadeRepo repository.EntidadeRepository
	ignorar      map[string]struct{}
}

// NewImportUseCase constrói o caso de uso. ignorarItens é a lista configurável
// de nomes descartados (ex.: "services", "nan"), comparados sem acentos/caixa.
func NewImportUseCase(tx ImportTxRunner, entidadeRepo repository.EntidadeRepository, ignorarItens []string) *ImportUseCase {
	ign := make(map[string]struct{}, len(ignorarItens))
	for _, item := range ignorarItens {
		if chave := normalize.Chave(item); chave != "" {
			ign[chave] = struct{}{}
		}
	}
	return &ImportUseCase{tx: tx, entidadeRepo: entidadeRepo, ignorar: ign}
}

// Importar processa as linhas já extraídas da planilha contra a loja alvo.
//
// Linhas com item vazio ou na lista de descarte não produzem efeito algum.
// Falhas de dado em uma linha (ex.: custo negativo) são registradas com a
// referência 1-based da linha e não abortam o lote; falhas de persistência
// abortam e desfazem tudo. No sucesso, o timestamp de última importação da
// organização é atualizado dentro da mesma transação.
func (uc *ImportUseCase) Importar(ctx context.Context, caller authz.Caller, entidadeID int64, linhas []dto.LinhaPlanilha) (*dto.ResultadoImportacao, error) {
	decisao, err := authz.ResolverEntidade(ctx, uc.entidadeRepo, caller, entidadeID)
	if err != nil {
		return nil, err
	}
	switch decisao.Efeito {
	case authz.Negado:
		return nil, domain.ErrAcessoNegado
	case authz.NaoEncontrado:
		return nil, domain.ErrNaoEncontrado
	}
	alvo := decisao.EntidadeID

	agora := brtime.Agora()
	res := &dto.ResultadoImportacao{}

	err = uc.tx.RunImportacao(ctx, func(
		produtoRepo repository.ProdutoRepository,
		estoqueRepo repository.EstoqueRepository,
		configRepo repository.ConfiguracaoRepository,
	) error {
		for _, linha := range linhas {
			nome := strings.TrimSpace(linha.Item)
			if nome == "" {
				continue
			}
			if _, descartado := uc.ignorar[normalize.Chave(nome)]; descartado {
				continue
			}

			produto, err := produtoRepo.GetByOrgENome(ctx, caller.OrganizacaoID, nome)
			if err != nil {
				return fmt.Errorf("linha %d: buscar produto: %w", linha.Numero, err)
			}
			if produto == nil {
				produto = &entity.Produto{
					OrganizacaoID: caller.OrganizacaoID,
					NomeItem:      nome,
					Grupo:         nome,
					Custo:         decimal.Zero,
					CriadoEm:      agora,
					AtualizadoEm:  agora,
				}
				if err := produtoRepo.Create(ctx, produto); err != nil {
					return fmt.Errorf("linha %d: criar produto: %w", linha.Numero, err)
				}
				res.ProdutosCriados++
			}

			if linha.TemCusto {
				if custo, ok := parseCusto(linha.Custo); !ok {
					res.Erros = append(res.Erros, fmt.Sprintf("linha %d: custo inválido %q", linha.Numero, linha.Custo))
				} else if custo != nil && !custo.Equal(produto.Custo) {
					if err := produtoRepo.UpdateCusto(ctx, produto.ID, *custo); err != nil {
						return fmt.Errorf("linha %d: atualizar custo: %w", linha.Numero, err)
					}
					res.CustosAtualizados++
				}
			}

			est := &entity.Estoque{
				ProdutoID:         produto.ID,
				EntidadeID:        alvo,
				QuantidadeSistema: parseQuantidade(linha.Estoque),
				AtualizadoEm:      agora,
			}
			if err := estoqueRepo.Upsert(ctx, est); err != nil {
				return fmt.Errorf("linha %d: gravar estoque: %w", linha.Numero, err)
			}
			res.EstoquesAtualizados++
		}

		return configRepo.SetUltimaAtualizacaoEstoque(ctx, caller.OrganizacaoID, agora)
	})
	if err != nil {
		return nil, err
	}

	res.UltimaAtualizacao = brtime.FormatarAtualizacao(agora)
	return res, nil
}

// parseQuantidade coage o texto da coluna de estoque para inteiro.
// Vazio, "nan" ou lixo não numérico viram 0, como na planilha de origem.
func parseQuantidade(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return int(f)
	}
	return 0
}

// parseCusto devolve (nil, true) quando a célula está vazia, (custo, true)
// quando há um decimal não negativo e (nil, false) quando o valor é inválido.
func parseCusto(s string) (*decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil, true
	}
	custo, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil || custo.IsNegative() {
		return nil, false
	}
	return &custo, true
}
