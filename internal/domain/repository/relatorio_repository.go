package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FiltroHistorico delimita o universo do relatório histórico: organização
// obrigatória, loja e intervalo de datas opcionais. DataFim é inclusiva até o
// fim do dia (o caso de uso ajusta antes de consultar).
type FiltroHistorico struct {
	OrganizacaoID int64
	EntidadeID    *int64
	DataInicio    *time.Time
	DataFim       *time.Time
}

// ItemFinalizado é uma linha crua da consulta: um item de escopo de uma
// auditoria finalizada dentro do filtro, com o custo atual do produto cuja
// categoria casa com o grupo (LEFT JOIN: sem produto correspondente, custo 0).
// O caso de uso agrega; o repositório só materializa a junção.
type ItemFinalizado struct {
	AuditoriaID      int64
	CodigoReferencia string
	EntidadeNome     string
	DataFim          time.Time
	CategoriaNome    string
	QtdSistema       int
	QtdContada       int
	Diferenca        int
	Custo            decimal.Decimal
}

// RelatorioRepository define as consultas de leitura do agregador histórico.
// Implementações são read-only.
type RelatorioRepository interface {
	// ItensFinalizados devolve todos os itens de escopo das auditorias
	// finalizadas no filtro, ordenados por data de finalização decrescente e
	// nome de categoria crescente.
	ItensFinalizados(ctx context.Context, filtro FiltroHistorico) ([]ItemFinalizado, error)
}
