package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ordenes-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// GetByID devuelve (nil, nil) si la orden no existe.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	UpdateQuantity(id string, newQuantity decimal.Decimal) error
	Delete(id string) error
}
