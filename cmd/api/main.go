package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appaud "github.com/pbarcelos/auditoria-api/internal/application/auditoria"
	"github.com/pbarcelos/auditoria-api/internal/application/auth"
	"github.com/pbarcelos/auditoria-api/internal/application/estoque"
	"github.com/pbarcelos/auditoria-api/internal/application/mensagens"
	"github.com/pbarcelos/auditoria-api/internal/application/relatorio"
	"github.com/pbarcelos/auditoria-api/internal/application/usecase"
	infrapdf "github.com/pbarcelos/auditoria-api/internal/infrastructure/pdf"
	"github.com/pbarcelos/auditoria-api/internal/infrastructure/postgres"
	"github.com/pbarcelos/auditoria-api/internal/infrastructure/varejonline"
	httpRouter "github.com/pbarcelos/auditoria-api/internal/interfaces/http"
	"github.com/pbarcelos/auditoria-api/pkg/config"
	"github.com/pbarcelos/auditoria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	orgRepo := postgres.NewOrganizacaoRepository(pool)
	entidadeRepo := postgres.NewEntidadeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	produtoRepo := postgres.NewProdutoRepository(pool)
	configRepo := postgres.NewConfiguracaoRepository(pool)
	audRepo := postgres.NewAuditoriaRepository(pool)
	relatorioRepo := postgres.NewRelatorioRepository(pool)
	convRepo := postgres.NewConversaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, orgRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	entidadeUC := usecase.NewEntidadeUseCase(entidadeRepo)
	userUC := usecase.NewUserUseCase(userRepo, entidadeRepo)

	// Cliente do ERP: token vazio desabilita a sincronização de grupos.
	var catalogo usecase.CatalogoERP
	if cfg.Varejonline.Token != "" {
		catalogo = varejonline.NewClient(cfg.Varejonline)
	}
	produtoUC := usecase.NewProdutoUseCase(produtoRepo, catalogo)
	importUC := estoque.NewImportUseCase(txRunner, entidadeRepo, cfg.Importacao.IgnorarItens)
	consultaUC := estoque.NewConsultaUseCase(configRepo)

	criarAudUC := appaud.NewCriarUseCase(txRunner, configRepo, entidadeRepo)
	consultarUC := appaud.NewConsultarUseCase(audRepo, entidadeRepo)
	contagemUC := appaud.NewContagemUseCase(txRunner, consultarUC)
	excluirUC := appaud.NewExcluirUseCase(audRepo, userRepo, log)
	exportarUC := appaud.NewExportarUseCase(consultarUC)
	relatorioUC := relatorio.NewHistoricoUseCase(relatorioRepo)
	mensagensUC := mensagens.NewUseCase(convRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Auditoria API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		EntidadeUC:  entidadeUC,
		UserUC:      userUC,
		ProdutoUC:   produtoUC,
		ImportUC:    importUC,
		ConsultaUC:  consultaUC,
		CriarAudUC:  criarAudUC,
		ConsultarUC: consultarUC,
		ContagemUC:  contagemUC,
		ExcluirUC:   excluirUC,
		ExportarUC:  exportarUC,
		RelatorioUC: relatorioUC,
		MensagensUC: mensagensUC,
		PDFRenderer: infrapdf.NewRelatorioRenderer(),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
