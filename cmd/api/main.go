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
	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/catalogfile"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stockledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/webhook"
	httpRouter "github.com/jhoicas/stockledger-api/internal/interfaces/http"
	"github.com/jhoicas/stockledger-api/internal/scheduler"
	"github.com/jhoicas/stockledger-api/pkg/config"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// storage backend elegido por STORAGE_DRIVER.
type storage struct {
	tx     inventory.TxRunner
	reader inventory.Repositories
	close  func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: todas las rutas protegidas responderán 401")
	}
	// antes de abrir el pool: log.Fatal no ejecuta los defer
	if err := scheduler.Validate(cfg.Alerts.LowStockCron); err != nil {
		log.Fatal().Err(err).Str("cron", cfg.Alerts.LowStockCron).Msg("ALERTS_LOW_STOCK_CRON inválido")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	engine := inventory.NewMovementEngine(store.tx, log, nil)
	movementQueryUC := inventory.NewMovementQueryUseCase(store.reader)
	transferUC := inventory.NewTransferUseCase(store.tx, engine, store.reader, log, nil)
	balanceUC := inventory.NewBalanceUseCase(store.reader, nil)

	// PDF: comprobante imprimible de la transferencia
	slipUC := inventory.NewTransferSlipUseCase(transferUC, infrapdf.NewMarotoSlipGenerator())

	// Alertas de estoque bajo: webhook si hay URL, si no solo log
	var notifier inventory.LowStockNotifier = webhook.NewLogNotifier(log)
	if cfg.Alerts.WebhookURL != "" {
		notifier = webhook.NewNotifier(cfg.Alerts)
	}
	lowStockUC := inventory.NewLowStockAlertUseCase(balanceUC, notifier, log)
	sched := scheduler.New(cfg.Alerts.LowStockCron, lowStockUC, log)
	if err := sched.Start(); err != nil {
		store.close()
		log.Fatal().Err(err).Str("cron", cfg.Alerts.LowStockCron).Msg("arrancar scheduler")
	}

	json := jsoniter.ConfigCompatibleWithStandardLibrary
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:        engine,
		Movements:     movementQueryUC,
		Transfers:     transferUC,
		TransferSlip:  slipUC,
		Balances:      balanceUC,
		Logger:        log,
		JWTSecret:     cfg.JWT.Secret,
		AppName:       cfg.App.Name,
		StorageDriver: cfg.App.StorageDriver,
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

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.StorageDriver == config.StorageMemory {
		mem := memory.NewStore()
		if cfg.App.CatalogFile != "" {
			cat, err := catalogfile.Load(cfg.App.CatalogFile)
			if err != nil {
				return nil, err
			}
			cat.ApplyTo(mem)
			log.Info().
				Int("products", len(cat.Products)).
				Int("locations", len(cat.Locations)).
				Int("users", len(cat.Users)).
				Msg("catálogo cargado en memoria")
		}
		return &storage{tx: mem, reader: mem.Repositories(), close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	return &storage{
		tx:     postgres.NewTxRunner(pool, cfg.DB.TxMaxAttempts, log),
		reader: postgres.NewRepositories(pool),
		close:  pool.Close,
	}, nil
}
