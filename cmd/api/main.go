package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"
	"golang.org/x/text/language"

	"github.com/jhoicas/retail-pos/docs"
	"github.com/jhoicas/retail-pos/internal/application/auth"
	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/application/sales"
	"github.com/jhoicas/retail-pos/internal/application/usecase"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
	"github.com/jhoicas/retail-pos/internal/infrastructure/memory"
	"github.com/jhoicas/retail-pos/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/retail-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/retail-pos/internal/interfaces/http"
	"github.com/jhoicas/retail-pos/pkg/config"
	"github.com/jhoicas/retail-pos/pkg/logger"
)

// backend repositorios fuera de transacción, runner transaccional y cierre del almacén.
type backend struct {
	stores   repository.Stores
	users    repository.UserRepository
	txRunner inventory.TxRunner
	close    func()
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	if cfg.Store.Driver == config.DriverMemory {
		store := memory.NewStore()
		return &backend{
			stores: repository.Stores{
				Products:    store.Products(),
				Transitions: store.Transitions(),
				Returns:     store.Returns(),
				Orders:      store.Orders(),
			},
			users:    store.Users(),
			txRunner: memory.NewTxRunner(store),
			close:    store.Close,
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptionsFrom(cfg, "api"))
	if err != nil {
		return nil, err
	}
	return &backend{
		stores:   postgres.Stores(pool),
		users:    postgres.NewUserRepository(pool),
		txRunner: postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		App:       cfg.App.Name,
		Env:       cfg.App.Env,
		Level:     cfg.App.LogLevel,
		Component: "api",
	})
	log.Info().
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén")
	}
	defer be.close()

	m := metrics.New()
	limits := inventory.PageLimits{Default: cfg.Ledger.DefaultPageSize, Max: cfg.Ledger.MaxPageSize}

	ledger := inventory.NewLedgerWriter(be.txRunner, m)
	ledgerQuery := inventory.NewLedgerQuery(be.stores.Transitions).WithLimits(limits)
	reporter := inventory.NewLedgerReporter(be.stores.Transitions, infrapdf.NewLedgerReportGenerator(language.Spanish))
	returnProcessor := inventory.NewReturnProcessor(be.txRunner, be.stores.Transitions, be.stores.Returns, m, log).WithLimits(limits)
	reconciler := inventory.NewReconciler(be.stores.Transitions, be.stores.Returns, m, log)
	productUC := usecase.NewProductUseCase(be.stores.Products, be.stores.Transitions, be.txRunner, ledger).WithLimits(limits)
	checkoutUC := sales.NewCheckoutUseCase(be.txRunner, ledger, be.stores.Orders, m)
	userUC := usecase.NewUserUseCase(be.users)
	authUC := auth.NewAuthUseCase(be.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Admin.Email != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(m.Middleware())
	app.Use(httpRouter.RequestLogger(log))

	if cfg.Swagger.Enabled {
		// Swagger UI en local: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Retail POS API",
		}))
		app.Get("/openapi.json", func(c *fiber.Ctx) error {
			doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
			if err != nil {
				return err
			}
			c.Type("json")
			return c.SendString(doc)
		})
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		UserUC:          userUC,
		ProductUC:       productUC,
		Ledger:          ledger,
		LedgerQuery:     ledgerQuery,
		LedgerReporter:  reporter,
		ReturnProcessor: returnProcessor,
		Reconciler:      reconciler,
		CheckoutUC:      checkoutUC,
		JWTSecret:       cfg.JWT.Secret,
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
