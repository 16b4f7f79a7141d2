package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	ProductID    string          `json:"product_id" validate:"required"`
	CustomerName string          `json:"customer_name" validate:"required,min=1,max=200"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// UpdateOrderRequest body para PUT /api/orders/:id (solo cantidad).
type UpdateOrderRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// BulkCreateOrdersRequest body para POST /api/orders/bulk.
// Las entradas se procesan en orden dentro de una sola transacción:
// o se crean todas las órdenes o ninguna.
type BulkCreateOrdersRequest struct {
	Orders []CreateOrderRequest `json:"orders" validate:"required,min=1"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	CustomerName string          `json:"customer_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	OrderDate    time.Time       `json:"order_date"`
}

// OrderWithProductResponse orden con los datos de su producto (listado).
type OrderWithProductResponse struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	OrderDate    time.Time       `json:"order_date"`
	ProductName  string          `json:"product_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}
