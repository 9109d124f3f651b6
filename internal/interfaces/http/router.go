package http

import (
	"github.com/gofiber/fiber/v2"

	appaud "github.com/pbarcelos/auditoria-api/internal/application/auditoria"
	"github.com/pbarcelos/auditoria-api/internal/application/auth"
	"github.com/pbarcelos/auditoria-api/internal/application/estoque"
	"github.com/pbarcelos/auditoria-api/internal/application/mensagens"
	"github.com/pbarcelos/auditoria-api/internal/application/relatorio"
	"github.com/pbarcelos/auditoria-api/internal/application/usecase"
	"github.com/pbarcelos/auditoria-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	EntidadeUC  *usecase.EntidadeUseCase
	UserUC      *usecase.UserUseCase
	ProdutoUC   *usecase.ProdutoUseCase
	ImportUC    *estoque.ImportUseCase
	ConsultaUC  *estoque.ConsultaUseCase
	CriarAudUC  *appaud.CriarUseCase
	ConsultarUC *appaud.ConsultarUseCase
	ContagemUC  *appaud.ContagemUseCase
	ExcluirUC   *appaud.ExcluirUseCase
	ExportarUC  *appaud.ExportarUseCase
	RelatorioUC *relatorio.HistoricoUseCase
	MensagensUC *mensagens.UseCase
	PDFRenderer RelatorioPDFRenderer
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	// Lojas
	entidades := protected.Group("/entidades")
	entidadeHandler := NewEntidadeHandler(deps.EntidadeUC)
	entidades.Post("/", admin, entidadeHandler.Criar)
	entidades.Get("/", entidadeHandler.Listar)

	// Contas de loja (somente admin)
	usuarios := protected.Group("/usuarios", admin)
	userHandler := NewUserHandler(deps.UserUC)
	usuarios.Post("/", userHandler.Criar)
	usuarios.Get("/", userHandler.Listar)
	usuarios.Delete("/:id", userHandler.Desativar)
	usuarios.Put("/:id/senha", userHandler.ResetarSenha)
	usuarios.Put("/:id/entidade", userHandler.ReatribuirEntidade)

	// Estoque e catálogo
	estoqueHandler := NewEstoqueHandler(deps.ImportUC, deps.ConsultaUC, deps.ProdutoUC)
	protected.Post("/estoque/importar", estoqueHandler.Importar)
	protected.Get("/estoque/ultima-atualizacao", estoqueHandler.UltimaAtualizacao)
	protected.Get("/categorias", estoqueHandler.Categorias)
	protected.Post("/produtos/sincronizar-grupos", admin, estoqueHandler.SincronizarGrupos)

	// Auditorias
	auditorias := protected.Group("/auditorias")
	auditoriaHandler := NewAuditoriaHandler(
		deps.CriarAudUC, deps.ConsultarUC, deps.ContagemUC,
		deps.ExcluirUC, deps.ExportarUC, deps.PDFRenderer,
	)
	auditorias.Post("/", auditoriaHandler.Criar)
	auditorias.Get("/", auditoriaHandler.Listar)
	auditorias.Get("/:id", auditoriaHandler.Detalhar)
	auditorias.Post("/:id/contagens", auditoriaHandler.SalvarContagens)
	auditorias.Post("/:id/finalizar", auditoriaHandler.Finalizar)
	auditorias.Delete("/:id", admin, auditoriaHandler.Excluir)
	auditorias.Get("/:id/exportar", auditoriaHandler.Exportar)

	// Relatório histórico
	relatorioHandler := NewRelatorioHandler(deps.RelatorioUC)
	protected.Get("/relatorios/historico", relatorioHandler.Historico)

	// Mensageria
	conversas := protected.Group("/conversas")
	conversaHandler := NewConversaHandler(deps.MensagensUC)
	conversas.Post("/", conversaHandler.Abrir)
	conversas.Get("/", conversaHandler.Listar)
	conversas.Get("/:id", conversaHandler.Detalhar)
	conversas.Post("/:id/mensagens", conversaHandler.Responder)
	conversas.Post("/:id/fechar", conversaHandler.Fechar)
}
