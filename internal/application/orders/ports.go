package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ordenes-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de pedidos:
// el ajuste de stock y la mutación de la orden se confirman juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// Tipos de evento del ciclo de vida de una orden.
const (
	EventTypeOrderCreated = "order.created"
	EventTypeOrderUpdated = "order.updated"
	EventTypeOrderDeleted = "order.deleted"
)

// OrderEvent evento de ciclo de vida publicado tras el commit de una operación.
type OrderEvent struct {
	EventType    string          `json:"event_type"`
	OrderID      string          `json:"order_id"`
	ProductID    string          `json:"product_id"`
	CustomerName string          `json:"customer_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Timestamp    time.Time       `json:"timestamp"`
}

// EventPublisher puerto de publicación de eventos de órdenes (Kafka en infraestructura).
// Las implementaciones no deben bloquear el request más allá del envío síncrono.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}
