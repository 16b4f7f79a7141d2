package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa un pedido de un cliente sobre un producto.
// Cada orden viva tiene descontada su Quantity del stock del producto;
// OrderDate se fija al crear y no se modifica después.
type Order struct {
	ID           string
	ProductID    string
	CustomerName string
	Quantity     decimal.Decimal
	OrderDate    time.Time
}
