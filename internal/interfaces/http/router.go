package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine        *inventory.MovementEngine
	Movements     *inventory.MovementQueryUseCase
	Transfers     *inventory.TransferUseCase
	TransferSlip  *inventory.TransferSlipUseCase
	Balances      *inventory.BalanceUseCase
	Logger        *logger.Logger
	JWTSecret     string
	AppName       string
	StorageDriver string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	errs := errorMapper{log: log.Component("http")}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", App: deps.AppName, Storage: deps.StorageDriver})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", ActorMiddleware(deps.JWTSecret, log))

	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Engine, deps.Movements, errs)
	movements.Post("/", movementHandler.RecordMovement)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)

	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.Transfers, deps.TransferSlip, errs)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Get("/:id/slip", transferHandler.DownloadSlip)

	// low-stock antes de :id
	balances := protected.Group("/balances")
	balanceHandler := NewBalanceHandler(deps.Balances, errs)
	balances.Post("/", balanceHandler.Create)
	balances.Get("/", balanceHandler.List)
	balances.Get("/low-stock", balanceHandler.ListLowStock)
	balances.Get("/:id", balanceHandler.GetByID)

	protected.Get("/products/:id/stock", balanceHandler.ProductStock)
}
