package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-pos/internal/application/auth"
	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/application/sales"
	"github.com/jhoicas/retail-pos/internal/application/usecase"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	ProductUC       *usecase.ProductUseCase
	Ledger          *inventory.LedgerWriter
	LedgerQuery     *inventory.LedgerQuery
	LedgerReporter  *inventory.LedgerReporter
	ReturnProcessor *inventory.ReturnProcessor
	Reconciler      *inventory.Reconciler
	CheckoutUC      *sales.CheckoutUseCase
	JWTSecret       string
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Module("http")
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/users", RequireRole(entity.RoleAdmin), authHandler.CreateUser)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Libro de inventario
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.LedgerQuery, deps.LedgerReporter, deps.Reconciler, log)
	invGroup.Post("/transitions", inventoryHandler.CreateTransition)
	invGroup.Get("/transitions", inventoryHandler.ListTransitions)
	invGroup.Get("/transitions/report", RequireRole(entity.RoleAdmin, entity.RoleManager), inventoryHandler.Report)
	invGroup.Post("/reconcile", RequireRole(entity.RoleAdmin), inventoryHandler.Reconcile)

	// Devoluciones
	returnHandler := NewReturnHandler(deps.ReturnProcessor, log)
	invGroup.Post("/returns", returnHandler.Create)
	invGroup.Get("/returns", returnHandler.List)
	invGroup.Get("/returns/:id", returnHandler.GetByID)

	// Caja
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CheckoutUC, log)
	orders.Post("/", orderHandler.Checkout)
	orders.Get("/:id", orderHandler.GetByID)
}
