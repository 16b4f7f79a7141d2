package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineResult fila cruda de una orden con los datos de su producto.
// La produce la DB; el use case de reportes la agrega o convierte en DTO.
type OrderLineResult struct {
	OrderID      string
	ProductID    string
	ProductName  string
	UnitPrice    decimal.Decimal
	CustomerName string
	Quantity     decimal.Decimal
	OrderDate    time.Time
}

// ProductStockResult fila cruda de producto para reportes de stock.
type ProductStockResult struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Stock       decimal.Decimal
}

// ReportRepository define las consultas de solo lectura para reportes.
// Las implementaciones no modifican datos; cada método es una lectura
// consistente (una sola consulta).
type ReportRepository interface {
	// ListOrderLines devuelve todas las órdenes con nombre y precio del producto.
	ListOrderLines(ctx context.Context) ([]OrderLineResult, error)

	// ListProducts devuelve todos los productos (para el resumen por producto).
	ListProducts(ctx context.Context) ([]ProductStockResult, error)

	// GetLowStockProducts devuelve los productos con stock por debajo del umbral.
	GetLowStockProducts(ctx context.Context, threshold decimal.Decimal) ([]ProductStockResult, error)

	// GetUnorderedProducts devuelve los productos sin ninguna orden asociada.
	GetUnorderedProducts(ctx context.Context) ([]ProductStockResult, error)
}
