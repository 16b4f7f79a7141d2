package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ordenes-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
	// Usar dentro de transacciones del libro de pedidos para serializar
	// la verificación y el ajuste de stock sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(id string, newStock decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
}
