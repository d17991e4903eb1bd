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

	"github.com/agrodata/fazenda-api/internal/application/auth"
	"github.com/agrodata/fazenda-api/internal/application/reproducao"
	"github.com/agrodata/fazenda-api/internal/application/resource"
	"github.com/agrodata/fazenda-api/internal/application/usecase"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
	"github.com/agrodata/fazenda-api/internal/infrastructure/postgres"
	httpRouter "github.com/agrodata/fazenda-api/internal/interfaces/http"
	"github.com/agrodata/fazenda-api/pkg/config"
	"github.com/agrodata/fazenda-api/pkg/logger"
)

// tabelas introspectadas no boot. Tabela ausente vira esquema vazio: os
// recursos sobre ela degradam para o mínimo, sem derrubar a aplicação.
var tabelasCatalogo = []string{
	"animais", "touros", "protocolos", "eventos_reproducao",
	"lotes", "insumos", "consumos", "agenda_eventos", "users",
}

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

	catalogo := postgres.LoadCatalog(ctx, pool, log, tabelasCatalogo...)

	animalRepo := postgres.NewAnimalRepository(pool, catalogo)
	touroRepo := postgres.NewTouroRepository(pool, catalogo)
	eventoRepo := postgres.NewEventoRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool, catalogo)
	protocoloRepo := postgres.NewProtocoloRepository(pool, catalogo)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool, catalogo)

	// Estratégia de lotação: coluna dedicada quando o esquema a tem, documento
	// embutido caso contrário. Com coluna primária, o documento fica de reserva.
	var primario, reserva repository.LotacaoStore
	if catalogo.HasColumn("animais", "lote_id") {
		primario = postgres.NewLotacaoColumnStore(pool, catalogo)
		reserva = postgres.NewLotacaoDocumentStore(pool, catalogo)
	} else {
		primario = postgres.NewLotacaoDocumentStore(pool, catalogo)
	}
	log.Info().
		Str("fonte", primario.Fonte()).
		Bool("touros_modelo_moderno", touroRepo.Moderno()).
		Msg("estratégias resolvidas pelo catálogo de esquema")

	reproducaoUC := reproducao.NewUseCase(txRunner, animalRepo, eventoRepo, protocoloRepo, log)
	lotacaoUC := usecase.NewLotacaoUseCase(primario, reserva, animalRepo, loteRepo, log)
	historicoUC := usecase.NewHistoricoUseCase(animalRepo)
	touroUC := usecase.NewTouroUseCase(touroRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Motor genérico: uma engine por entidade, ligada ao esquema real no boot.
	resourceRepo := postgres.NewResourceRepository(pool)
	engines := map[string]*resource.Engine{}
	for _, rc := range resource.Configs(resource.Hooks{LoteRemovido: lotacaoUC.LoteRemovido}) {
		engines[rc.Name] = resource.NewEngine(rc.Bind(catalogo), resourceRepo, log)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fazenda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engines:      engines,
		ReproducaoUC: reproducaoUC,
		LotacaoUC:    lotacaoUC,
		HistoricoUC:  historicoUC,
		TouroUC:      touroUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, fechando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
