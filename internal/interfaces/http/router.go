package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/pawsitive-care/inventory-api/internal/application/analytics"
	"github.com/pawsitive-care/inventory-api/internal/application/auth"
	"github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/application/purchasing"
	"github.com/pawsitive-care/inventory-api/internal/application/usecase"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ItemUC        *usecase.ItemUseCase
	SupplierUC    *usecase.SupplierUseCase
	Movements     *inventory.MovementUseCase
	Query         *inventory.QueryUseCase
	Reconcile     *inventory.ReconcileUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Export        *inventory.ExportUseCase
	Pricing       *inventory.PricingUseCase
	Purchasing    *purchasing.UseCase
	DashboardUC   *appanalytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	read := RequireCapability(entity.CapInventoryRead)
	move := RequireCapability(entity.CapInventoryMove)
	write := RequireCapability(entity.CapInventoryWrite)
	admin := RequireCapability(entity.CapInventoryAdmin)
	export := RequireCapability(entity.CapReportsExport)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)
	users.Patch("/:id/status", authHandler.SetUserStatus)

	// Items
	itemHandler := NewItemHandler(deps.ItemUC)
	items := protected.Group("/items")
	items.Get("/", read, itemHandler.List)
	items.Post("/", write, itemHandler.Create)
	items.Get("/:id", read, itemHandler.GetByID)
	items.Put("/:id", write, itemHandler.Update)
	items.Delete("/:id", admin, itemHandler.Deactivate)

	// Inventory: movimientos, estado, alertas, reconciliación
	inventoryHandler := NewInventoryHandler(deps.Movements, deps.Query, deps.Reconcile, deps.Replenishment)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", move, inventoryHandler.RegisterMovement)
	invGroup.Post("/movements/batch", move, inventoryHandler.RegisterMovementBatch)
	invGroup.Get("/movements", read, inventoryHandler.MovementReport)
	invGroup.Get("/alerts", read, inventoryHandler.Alerts)
	invGroup.Get("/replenishment-list", write, inventoryHandler.GetReplenishmentList)
	invGroup.Get("/reconcile", admin, inventoryHandler.Reconcile)
	invGroup.Get("/items/:id/history", read, inventoryHandler.History)
	invGroup.Get("/items/:id/status", read, inventoryHandler.Status)
	invGroup.Get("/items/:id/reconcile", admin, inventoryHandler.ReconcileItem)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", read, supplierHandler.List)
	suppliers.Post("/", write, supplierHandler.Create)
	suppliers.Get("/:id", read, supplierHandler.GetByID)
	suppliers.Put("/:id", write, supplierHandler.Update)
	suppliers.Delete("/:id", write, supplierHandler.Deactivate)

	// Purchase orders
	poHandler := NewPurchaseOrderHandler(deps.Purchasing)
	pos := protected.Group("/purchase-orders")
	pos.Get("/", read, poHandler.List)
	pos.Post("/", write, poHandler.Create)
	pos.Get("/:id", read, poHandler.GetByID)
	pos.Patch("/:id/status", write, poHandler.ChangeStatus)
	pos.Post("/:id/receive", write, poHandler.Receive)

	// Dashboard (forma según rol)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", read, dashboardHandler.GetSummary)
	protected.Get("/dashboard/categories", read, dashboardHandler.GetCategories)
	protected.Get("/dashboard/suppliers", read, dashboardHandler.GetSuppliers)

	// Export
	exportHandler := NewExportHandler(deps.Export)
	exports := protected.Group("/export", export)
	exports.Get("/items.csv", exportHandler.ItemsCSV)
	exports.Get("/movements.csv", exportHandler.MovementsCSV)
	exports.Get("/stock-report.pdf", exportHandler.StockReportPDF)

	// Pricing (todos los roles)
	pricingHandler := NewPricingHandler(deps.Pricing)
	pricing := protected.Group("/pricing", RequireCapability(entity.CapPricingQuote))
	pricing.Post("/quote", pricingHandler.Quote)
	pricing.Get("/policies", pricingHandler.Policies)
}
