package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/adjustment"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/auth"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/delivery"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/receipt"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/requisition"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/stock"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/usecase"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC   *usecase.WarehouseUseCase
	ProductUC     *usecase.ProductUseCase
	ReceiptUC     *receipt.UseCase
	DeliveryUC    *delivery.UseCase
	RequisitionUC *requisition.UseCase
	AdjustmentUC  *adjustment.UseCase
	StockUC       *stock.UseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
	MetricsPath   string // "" = sin endpoint de métricas
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsPath != "" {
		app.Get(deps.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	operadores := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	gerencia := RequireRole(entity.RoleAdmin, entity.RoleGerente)
	todos := RequireRole(entity.RoleAdmin, entity.RoleGerente, entity.RoleBodeguero)

	// Warehouses: lectura para todos, escritura solo admin
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", todos, warehouseHandler.List)
	warehouses.Get("/:id", todos, warehouseHandler.GetByID)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)
	warehouses.Post("/:id/locations", adminOnly, warehouseHandler.CreateLocation)
	warehouses.Get("/:id/locations", todos, warehouseHandler.ListLocations)

	// Products: lectura para todos, escritura solo admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", todos, productHandler.List)
	products.Get("/:id", todos, productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Receipts: flujo del bodeguero
	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	receipts.Post("/", operadores, receiptHandler.Create)
	receipts.Get("/", todos, receiptHandler.List)
	receipts.Get("/:id", todos, receiptHandler.GetByID)
	receipts.Put("/:id", operadores, receiptHandler.Update)
	receipts.Post("/:id/confirm", operadores, receiptHandler.Confirm)
	receipts.Post("/:id/validate", operadores, receiptHandler.Validate)

	// Deliveries: creación y validación en gerencia; aceptar en destino
	// también puede hacerlo el bodeguero
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Post("/", gerencia, deliveryHandler.Create)
	deliveries.Get("/", todos, deliveryHandler.List)
	deliveries.Get("/:id", todos, deliveryHandler.GetByID)
	deliveries.Put("/:id", gerencia, deliveryHandler.Update)
	deliveries.Post("/:id/confirm", gerencia, deliveryHandler.Confirm)
	deliveries.Post("/:id/ready", gerencia, deliveryHandler.MarkReady)
	deliveries.Post("/:id/validate", gerencia, deliveryHandler.Validate)
	deliveries.Post("/:id/accept", todos, deliveryHandler.Accept)

	// Requisitions: cualquier rol solicita, gerencia decide
	requisitions := protected.Group("/requisitions")
	requisitionHandler := NewRequisitionHandler(deps.RequisitionUC)
	requisitions.Post("/", todos, requisitionHandler.Create)
	requisitions.Get("/", todos, requisitionHandler.List)
	requisitions.Get("/:id", todos, requisitionHandler.GetByID)
	requisitions.Put("/:id", todos, requisitionHandler.Update)
	requisitions.Post("/:id/submit", todos, requisitionHandler.Submit)
	requisitions.Post("/:id/approve", gerencia, requisitionHandler.Approve)
	requisitions.Post("/:id/reject", gerencia, requisitionHandler.Reject)

	// Adjustments: flujo del bodeguero
	adjustments := protected.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", operadores, adjustmentHandler.Apply)
	adjustments.Get("/", todos, adjustmentHandler.List)
	adjustments.Get("/:id", todos, adjustmentHandler.GetByID)

	// Stock: consultas del libro y la vista materializada
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/levels", todos, stockHandler.ListLevels)
	stockGroup.Get("/levels/one", todos, stockHandler.GetLevel)
	stockGroup.Get("/movements", todos, stockHandler.ListMovements)
	stockGroup.Get("/audit", gerencia, stockHandler.Audit)
	stockGroup.Get("/transfers/unbalanced", gerencia, stockHandler.UnbalancedTransfers)
}
