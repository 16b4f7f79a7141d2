package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock disponible.
// Stock solo se modifica a través de las operaciones del libro de pedidos
// (crear/actualizar/eliminar orden) y nunca puede quedar negativo.
type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	Stock     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
