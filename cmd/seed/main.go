// seed cria uma organização de demonstração com admin, duas lojas e uma conta
// de loja, direto no banco configurado. Pensado para ambiente de
// desenvolvimento; aborta se a organização já existir.
//
// Uso: go run ./cmd/seed [nome-da-organizacao]
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
	"github.com/pbarcelos/auditoria-api/internal/infrastructure/postgres"
	"github.com/pbarcelos/auditoria-api/pkg/config"
)

func main() {
	nomeOrg := "Rede Demo"
	if len(os.Args) > 1 {
		nomeOrg = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexão ao PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	orgRepo := postgres.NewOrganizacaoRepository(pool)
	entidadeRepo := postgres.NewEntidadeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	if existente, err := orgRepo.GetByNome(ctx, nomeOrg); err != nil {
		fmt.Fprintf(os.Stderr, "consultar organização: %v\n", err)
		os.Exit(1)
	} else if existente != nil {
		fmt.Fprintf(os.Stderr, "organização %q já existe (id %d)\n", nomeOrg, existente.ID)
		os.Exit(1)
	}

	org := &entity.Organizacao{Nome: nomeOrg}
	if err := orgRepo.Create(ctx, org); err != nil {
		fmt.Fprintf(os.Stderr, "criar organização: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de senha: %v\n", err)
		os.Exit(1)
	}
	admin := &entity.User{
		OrganizacaoID: org.ID,
		Username:      "admin",
		SenhaHash:     string(hash),
		Nome:          "Administrador",
		Role:          entity.RoleAdmin,
		Ativo:         true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		fmt.Fprintf(os.Stderr, "criar admin: %v\n", err)
		os.Exit(1)
	}

	var lojas []*entity.Entidade
	for _, nome := range []string{"Loja Centro", "Loja Shopping"} {
		loja := &entity.Entidade{OrganizacaoID: org.ID, Nome: nome}
		if err := entidadeRepo.Create(ctx, loja); err != nil {
			fmt.Fprintf(os.Stderr, "criar loja %q: %v\n", nome, err)
			os.Exit(1)
		}
		lojas = append(lojas, loja)
	}

	hashLoja, err := bcrypt.GenerateFromPassword([]byte("loja123"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de senha: %v\n", err)
		os.Exit(1)
	}
	contaLoja := &entity.User{
		OrganizacaoID: org.ID,
		Username:      "loja.centro",
		SenhaHash:     string(hashLoja),
		Nome:          "Operador Loja Centro",
		Role:          entity.RoleUser,
		EntidadeID:    &lojas[0].ID,
		Ativo:         true,
	}
	if err := userRepo.Create(ctx, contaLoja); err != nil {
		fmt.Fprintf(os.Stderr, "criar conta de loja: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("organização %q criada (id %d)\n", org.Nome, org.ID)
	fmt.Println("credenciais: admin/admin123 e loja.centro/loja123")
}
