package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ordenes-api/internal/domain"
	"github.com/jhoicas/Ordenes-api/internal/domain/entity"
	"github.com/jhoicas/Ordenes-api/internal/domain/repository"
	"github.com/jhoicas/Ordenes-api/internal/metrics"
)

// LedgerUseCase mantiene el invariante de conservación entre Product.Stock y
// las cantidades de las órdenes vivas: crear debita stock, actualizar ajusta
// por el delta, eliminar acredita de vuelta. Cada operación corre en una
// transacción con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type LedgerUseCase struct {
	txRunner  TxRunner
	publisher EventPublisher         // puede ser nil (eventos deshabilitados)
	metrics   *metrics.LedgerMetrics // puede ser nil (sin métricas en tests)
}

// NewLedgerUseCase construye el caso de uso del libro de pedidos.
func NewLedgerUseCase(txRunner TxRunner, publisher EventPublisher, m *metrics.LedgerMetrics) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, publisher: publisher, metrics: m}
}

// CreateOrderInput entrada para crear una orden (también cada entrada de un bulk).
type CreateOrderInput struct {
	ProductID    string
	CustomerName string
	Quantity     decimal.Decimal
}

func (in CreateOrderInput) validate() error {
	if in.ProductID == "" || in.CustomerName == "" {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// CreateOrder debita el stock del producto e inserta la orden, atómicamente.
// Falla con ErrNotFound si el producto no existe y con ErrInsufficientStock
// si la cantidad supera el stock disponible; en ambos casos no queda ningún
// cambio confirmado.
func (uc *LedgerUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	start := time.Now()
	if err := input.validate(); err != nil {
		uc.reject(err)
		return nil, err
	}

	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Stock.LessThan(input.Quantity) {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(product.ID, product.Stock.Sub(input.Quantity)); err != nil {
			return err
		}
		order = &entity.Order{
			ID:           uuid.New().String(),
			ProductID:    input.ProductID,
			CustomerName: input.CustomerName,
			Quantity:     input.Quantity,
			OrderDate:    time.Now(),
		}
		return orderRepo.Create(order)
	})
	if err != nil {
		uc.reject(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.OrderCreated()
		uc.metrics.ObserveOperation("create", time.Since(start))
	}
	uc.publish(ctx, EventTypeOrderCreated, order)
	return order, nil
}

// UpdateOrder cambia la cantidad de una orden ajustando el stock por el delta
// (newQuantity - cantidad actual) en una sola escritura; un delta negativo
// acredita stock de vuelta. Ambas mutaciones se confirman juntas.
func (uc *LedgerUseCase) UpdateOrder(ctx context.Context, orderID string, newQuantity decimal.Decimal) (*entity.Order, error) {
	start := time.Now()
	if orderID == "" || !newQuantity.GreaterThan(decimal.Zero) {
		uc.reject(domain.ErrInvalidInput)
		return nil, domain.ErrInvalidInput
	}

	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		var err error
		order, err = orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(order.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		delta := newQuantity.Sub(order.Quantity)
		if product.Stock.LessThan(delta) {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(product.ID, product.Stock.Sub(delta)); err != nil {
			return err
		}
		if err := orderRepo.UpdateQuantity(orderID, newQuantity); err != nil {
			return err
		}
		order.Quantity = newQuantity
		return nil
	})
	if err != nil {
		uc.reject(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.OrderUpdated()
		uc.metrics.ObserveOperation("update", time.Since(start))
	}
	uc.publish(ctx, EventTypeOrderUpdated, order)
	return order, nil
}

// DeleteOrder elimina la orden y acredita su cantidad de vuelta al stock,
// atómicamente. Tras eliminar, el stock queda exactamente como antes de crearla.
func (uc *LedgerUseCase) DeleteOrder(ctx context.Context, orderID string) error {
	start := time.Now()
	if orderID == "" {
		uc.reject(domain.ErrInvalidInput)
		return domain.ErrInvalidInput
	}

	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		var err error
		order, err = orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(order.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := productRepo.UpdateStock(product.ID, product.Stock.Add(order.Quantity)); err != nil {
			return err
		}
		return orderRepo.Delete(orderID)
	})
	if err != nil {
		uc.reject(err)
		return err
	}

	if uc.metrics != nil {
		uc.metrics.OrderDeleted()
		uc.metrics.ObserveOperation("delete", time.Since(start))
	}
	uc.publish(ctx, EventTypeOrderDeleted, order)
	return nil
}

// BulkCreateOrders procesa las entradas en orden dentro de una sola transacción.
// Cada verificación de stock ve los débitos ya aplicados por entradas anteriores
// del mismo lote; el primer fallo revierte todo el lote (ninguna orden queda
// insertada) y el error nombra el producto ofensor.
func (uc *LedgerUseCase) BulkCreateOrders(ctx context.Context, inputs []CreateOrderInput) ([]*entity.Order, error) {
	start := time.Now()
	if len(inputs) == 0 {
		uc.reject(domain.ErrInvalidInput)
		return nil, domain.ErrInvalidInput
	}
	for i, input := range inputs {
		if err := input.validate(); err != nil {
			uc.reject(err)
			return nil, fmt.Errorf("entrada %d (producto %q): %w", i, input.ProductID, err)
		}
	}

	created := make([]*entity.Order, 0, len(inputs))
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		for _, input := range inputs {
			product, err := productRepo.GetForUpdate(input.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("producto %s: %w", input.ProductID, domain.ErrNotFound)
			}
			if product.Stock.LessThan(input.Quantity) {
				return fmt.Errorf("producto %s: %w", input.ProductID, domain.ErrInsufficientStock)
			}
			if err := productRepo.UpdateStock(product.ID, product.Stock.Sub(input.Quantity)); err != nil {
				return err
			}
			order := &entity.Order{
				ID:           uuid.New().String(),
				ProductID:    input.ProductID,
				CustomerName: input.CustomerName,
				Quantity:     input.Quantity,
				OrderDate:    time.Now(),
			}
			if err := orderRepo.Create(order); err != nil {
				return err
			}
			created = append(created, order)
		}
		return nil
	})
	if err != nil {
		uc.reject(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.BulkOrdersCreated(len(created))
		uc.metrics.ObserveOperation("bulk_create", time.Since(start))
	}
	for _, order := range created {
		uc.publish(ctx, EventTypeOrderCreated, order)
	}
	return created, nil
}

// publish emite el evento tras el commit. El producer registra sus propios
// fallos; un error de publicación no revierte una operación ya confirmada.
func (uc *LedgerUseCase) publish(ctx context.Context, eventType string, order *entity.Order) {
	if uc.publisher == nil || order == nil {
		return
	}
	_ = uc.publisher.PublishOrderEvent(ctx, OrderEvent{
		EventType:    eventType,
		OrderID:      order.ID,
		ProductID:    order.ProductID,
		CustomerName: order.CustomerName,
		Quantity:     order.Quantity,
		Timestamp:    time.Now(),
	})
}

func (uc *LedgerUseCase) reject(err error) {
	if uc.metrics == nil {
		return
	}
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		uc.metrics.Rejected("insufficient_stock")
	case errors.Is(err, domain.ErrNotFound):
		uc.metrics.Rejected("not_found")
	case errors.Is(err, domain.ErrInvalidInput):
		uc.metrics.Rejected("invalid_input")
	default:
		uc.metrics.Rejected("internal")
	}
}
