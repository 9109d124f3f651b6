package postgres

import (
	"context"
	"fmt"

	"github.com/pbarcelos/auditoria-api/internal/domain/repository"
)

var _ repository.RelatorioRepository = (*RelatorioRepo)(nil)

// RelatorioRepo consultas read-only do relatório histórico. Materializa a
// junção item de escopo × produto (pelo grupo) e deixa a agregação para o caso
// de uso.
type RelatorioRepo struct {
	q Querier
}

// NewRelatorioRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewRelatorioRepository(q Querier) *RelatorioRepo {
	return &RelatorioRepo{q: q}
}

// ItensFinalizados devolve os itens de escopo das auditorias finalizadas no
// filtro. O custo vem do produto da organização cujo grupo casa com a
// categoria sem diferenciar caixa; sem produto correspondente, custo 0.
func (r *RelatorioRepo) ItensFinalizados(ctx context.Context, filtro repository.FiltroHistorico) ([]repository.ItemFinalizado, error) {
	query := `
		SELECT a.id, a.codigo_referencia, e.nome, a.data_fim,
		       i.categoria_nome, i.qtd_sistema, i.qtd_contada, i.diferenca,
		       COALESCE(MAX(p.custo), 0)
		FROM auditorias a
		JOIN entidades e ON e.id = a.entidade_id
		JOIN auditoria_escopo i ON i.auditoria_id = a.id
		LEFT JOIN produtos p ON p.organizacao_id = e.organizacao_id AND LOWER(p.grupo) = LOWER(i.categoria_nome)
		WHERE a.data_fim IS NOT NULL
		  AND e.organizacao_id = $1
		  AND ($2::bigint IS NULL OR a.entidade_id = $2)
		  AND ($3::timestamptz IS NULL OR a.data_fim >= $3)
		  AND ($4::timestamptz IS NULL OR a.data_fim <= $4)
		GROUP BY a.id, a.codigo_referencia, e.nome, a.data_fim,
		         i.categoria_nome, i.qtd_sistema, i.qtd_contada, i.diferenca
		ORDER BY a.data_fim DESC, i.categoria_nome`
	rows, err := r.q.Query(ctx, query,
		filtro.OrganizacaoID, filtro.EntidadeID, filtro.DataInicio, filtro.DataFim)
	if err != nil {
		return nil, fmt.Errorf("itens finalizados: %w", err)
	}
	defer rows.Close()

	var itens []repository.ItemFinalizado
	for rows.Next() {
		var it repository.ItemFinalizado
		if err := rows.Scan(
			&it.AuditoriaID, &it.CodigoReferencia, &it.EntidadeNome, &it.DataFim,
			&it.CategoriaNome, &it.QtdSistema, &it.QtdContada, &it.Diferenca, &it.Custo,
		); err != nil {
			return nil, fmt.Errorf("scan item finalizado: %w", err)
		}
		itens = append(itens, it)
	}
	return itens, rows.Err()
}
