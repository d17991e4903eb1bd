package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrodata/fazenda-api/internal/application/auth"
	"github.com/agrodata/fazenda-api/internal/application/reproducao"
	"github.com/agrodata/fazenda-api/internal/application/resource"
	"github.com/agrodata/fazenda-api/internal/application/usecase"
	"github.com/agrodata/fazenda-api/pkg/logger"
)

// RouterDeps dependências para o router. Engines é indexado pelo nome do
// recurso (animais, touros, protocolos, eventos, lotes, insumos, consumos,
// agenda), na ordem que o registry os declara.
type RouterDeps struct {
	Engines      map[string]*resource.Engine
	ReproducaoUC *reproducao.UseCase
	LotacaoUC    *usecase.LotacaoUseCase
	HistoricoUC  *usecase.HistoricoUseCase
	TouroUC      *usecase.TouroUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Animais: sub-rotas específicas antes do CRUD genérico, para que
	// /animais/:id/lote não caia no :id genérico.
	animalHandler := NewAnimalHandler(deps.LotacaoUC, deps.HistoricoUC, deps.Log)
	animais := protected.Group("/animais")
	animais.Put("/:id/lote", animalHandler.AtribuirLote)
	animais.Get("/:id/lote", animalHandler.LerLote)
	animais.Post("/:id/leite", animalHandler.RegistrarLeite)
	animais.Post("/:id/ccs", animalHandler.RegistrarCCS)
	animais.Post("/:id/cmt", animalHandler.RegistrarCMT)

	// Touros: compra de doses além do CRUD.
	touroHandler := NewTouroHandler(deps.TouroUC, deps.Log)
	protected.Post("/touros/:id/compra", touroHandler.Comprar)

	// Reprodução (fluxo de eventos e campos derivados)
	reproducaoHandler := NewReproducaoHandler(deps.ReproducaoUC, deps.Log)
	reproducaoGroup := protected.Group("/reproducao")
	reproducaoGroup.Post("/ia", reproducaoHandler.RegistrarIA)
	reproducaoGroup.Post("/diagnostico", reproducaoHandler.RegistrarDiagnostico)
	reproducaoGroup.Post("/parto", reproducaoHandler.RegistrarParto)
	reproducaoGroup.Post("/pre-parto", reproducaoHandler.RegistrarPreParto)
	reproducaoGroup.Post("/secagem", reproducaoHandler.RegistrarSecagem)
	reproducaoGroup.Post("/decisao", reproducaoHandler.RegistrarDecisao)
	reproducaoGroup.Get("/eventos/animal/:id", reproducaoHandler.ListarEventos)
	reproducaoGroup.Post("/recalcular/:id", reproducaoHandler.RecomputarSituacao)

	// Protocolos: aplicação de etapas além do CRUD.
	protected.Post("/protocolos/:id/aplicar", reproducaoHandler.AplicarProtocolo)

	// CRUD genérico dos recursos de cadastro, um grupo por engine.
	for nome, engine := range deps.Engines {
		h := NewResourceHandler(engine, deps.Log)
		grupo := protected.Group("/" + nome)
		grupo.Get("/", h.List)
		grupo.Post("/", h.Create)
		grupo.Get("/:id", h.Get)
		grupo.Put("/:id", h.Update)
		grupo.Delete("/:id", h.Delete)
	}
}
