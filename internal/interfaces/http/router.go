package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ordenes-api/internal/application/orders"
	"github.com/jhoicas/Ordenes-api/internal/application/reports"
	"github.com/jhoicas/Ordenes-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	Ledger    *orders.LedgerUseCase
	Reports   *reports.ReportsUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Orders (libro de pedidos)
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.Ledger, deps.Reports)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Post("/bulk", orderHandler.BulkCreate)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", orderHandler.Delete)

	// Reports (solo lectura)
	reportsGroup := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reportsGroup.Get("/summary", reportHandler.Summary)
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
	reportsGroup.Get("/top-customers", reportHandler.TopCustomers)
	reportsGroup.Get("/unordered", reportHandler.Unordered)
}
