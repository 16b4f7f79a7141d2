package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ordenes-api/internal/application/orders"
	"github.com/jhoicas/Ordenes-api/internal/domain"
	"github.com/jhoicas/Ordenes-api/internal/domain/entity"
	"github.com/jhoicas/Ordenes-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore estado compartido de los fakes. El TxRunner fake toma un snapshot
// antes de ejecutar el callback y lo restaura si falla, reproduciendo la
// semántica Commit/Rollback de la transacción real.
type memStore struct {
	products map[string]*entity.Product
	orders   map[string]*entity.Order
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		orders:   make(map[string]*entity.Order),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, o := range s.orders {
		co := *o
		c.orders[id] = &co
	}
	return c
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate en memoria no bloquea nada; el aislamiento lo da el runner fake.
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) UpdateStock(id string, newStock decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = newStock
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	co := *o
	r.s.orders[o.ID] = &co
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	co := *o
	return &co, nil
}

func (r *fakeOrderRepo) UpdateQuantity(id string, q decimal.Decimal) error {
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Quantity = q
	return nil
}

func (r *fakeOrderRepo) Delete(id string) error {
	delete(r.s.orders, id)
	return nil
}

// fakeTxRunner ejecuta el callback sobre el store y restaura el snapshot si
// el callback devuelve error (rollback).
type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	snapshot := t.s.clone()
	if err := fn(&fakeProductRepo{s: t.s}, &fakeOrderRepo{s: t.s}); err != nil {
		*t.s = *snapshot
		return err
	}
	return nil
}

// fakePublisher acumula los eventos publicados.
type fakePublisher struct{ events []orders.OrderEvent }

func (p *fakePublisher) PublishOrderEvent(ctx context.Context, e orders.OrderEvent) error {
	p.events = append(p.events, e)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestUC(store *memStore) (*orders.LedgerUseCase, *fakePublisher) {
	pub := &fakePublisher{}
	return orders.NewLedgerUseCase(&fakeTxRunner{s: store}, pub, nil), pub
}

func seedProduct(store *memStore, id, stock string) {
	store.products[id] = &entity.Product{
		ID:        id,
		Name:      "producto " + id,
		UnitPrice: dec("10"),
		Stock:     dec(stock),
	}
}

// sumOrderQuantities suma las cantidades de las órdenes vivas de un producto.
func sumOrderQuantities(store *memStore, productID string) decimal.Decimal {
	total := decimal.Zero
	for _, o := range store.orders {
		if o.ProductID == productID {
			total = total.Add(o.Quantity)
		}
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_DebitaStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "10")
	uc, pub := newTestUC(store)

	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		ProductID: "p1", CustomerName: "Carlos", Quantity: dec("4"),
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.True(t, store.products["p1"].Stock.Equal(dec("6")), "el stock debe quedar en 6")
	assert.False(t, order.OrderDate.IsZero(), "OrderDate debe fijarse al crear")
	require.Len(t, pub.events, 1)
	assert.Equal(t, orders.EventTypeOrderCreated, pub.events[0].EventType)
}

func TestCreateOrder_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc, pub := newTestUC(store)

	_, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		ProductID: "no-existe", CustomerName: "Carlos", Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, pub.events, "no debe publicarse evento si la operación falla")
}

// Atomicidad ante fallo: stock intacto y ninguna orden insertada.
func TestCreateOrder_StockInsuficiente(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "3")
	uc, pub := newTestUC(store)

	_, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		ProductID: "p1", CustomerName: "Carlos", Quantity: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.products["p1"].Stock.Equal(dec("3")), "el stock no debe cambiar")
	assert.Empty(t, store.orders, "no debe quedar ninguna orden")
	assert.Empty(t, pub.events)
}

func TestCreateOrder_Validacion(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "10")
	uc, _ := newTestUC(store)

	cases := []struct {
		name  string
		input orders.CreateOrderInput
	}{
		{"cliente vacío", orders.CreateOrderInput{ProductID: "p1", CustomerName: "", Quantity: dec("1")}},
		{"producto vacío", orders.CreateOrderInput{ProductID: "", CustomerName: "Carlos", Quantity: dec("1")}},
		{"cantidad cero", orders.CreateOrderInput{ProductID: "p1", CustomerName: "Carlos", Quantity: decimal.Zero}},
		{"cantidad negativa", orders.CreateOrderInput{ProductID: "p1", CustomerName: "Carlos", Quantity: dec("-2")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateOrder(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// CreateOrder con cantidad exactamente igual al stock debe dejar stock en cero.
func TestCreateOrder_ConsumeTodoElStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "7")
	uc, _ := newTestUC(store)

	_, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		ProductID: "p1", CustomerName: "Ana", Quantity: dec("7"),
	})
	require.NoError(t, err)
	assert.True(t, store.products["p1"].Stock.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateOrder
// ──────────────────────────────────────────────────────────────────────────────

// Corrección del delta: tras crear q1=4 sobre stock 10 y actualizar a q2=7,
// el stock queda en 10-7=3 (no 10-4-7).
func TestUpdateOrder_AjustaPorDelta(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "10")
	uc, pub := newTestUC(store)

	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		ProductID: "p1", CustomerName: "Ana", Quantity: dec("4"),
	})
	require.NoError(t, err)

	updated, err := uc.UpdateOrder(context.Background(), order.ID, dec("7"))
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(dec("7")))
	assert.True(t, store.products["p1"].Stock.Equal(dec("3")), "stock = 10 - 7")

	// Bajar la cantidad acredita stock de vuelta
	_, err = uc.UpdateOrder(context.Background(), order.ID, dec("2"))
	require.NoError(t, err)
	assert.True(t, store.products["p1"].Stock.Equal(dec("8")), "stock = 10 - 2")

	require.Len(t, pub.events, 3)
	assert.Equal(t, orders.EventTypeOrderUpdated, pub.events[1].EventType)
}

func TestUpdateOrder_NoExiste(t *testing.T) {
	store := newMemStore()
	uc, _ := newTestUC(store)

	_, err := uc.UpdateOrder(context.Background(), "no-existe", dec("5"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateOrder_DeltaExcedeStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "10")
	uc, _ := newTestUC(store)

	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		ProductID: "p1", CustomerName: "Ana", Quantity: dec("4"),
	})
	require.NoError(t, err)

	// Stock disponible 6; subir de 4 a 11 requiere delta 7 > 6
	_, err = uc.UpdateOrder(context.Background(), order.ID, dec("11"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.products["p1"].Stock.Equal(dec("6")), "el stock no debe cambiar")
	assert.True(t, store.orders[order.ID].Quantity.Equal(dec("4")), "la cantidad no debe cambiar")
}

func TestUpdateOrder_CantidadInvalida(t *testing.T) {
	store := newMemStore()
	uc, _ := newTestUC(store)

	_, err := uc.UpdateOrder(context.Background(), "alguna", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteOrder
// ──────────────────────────────────────────────────────────────────────────────

// Reversión exacta: eliminar tras crear deja el stock como antes de crear.
func TestDeleteOrder_AcreditaStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "10")
	uc, pub := newTestUC(store)

	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		ProductID: "p1", CustomerName: "Ana", Quantity: dec("4"),
	})
	require.NoError(t, err)
	require.True(t, store.products["p1"].Stock.Equal(dec("6")))

	require.NoError(t, uc.DeleteOrder(context.Background(), order.ID))
	assert.True(t, store.products["p1"].Stock.Equal(dec("10")), "el stock vuelve al valor previo")
	assert.Empty(t, store.orders)

	require.Len(t, pub.events, 2)
	assert.Equal(t, orders.EventTypeOrderDeleted, pub.events[1].EventType)
}

func TestDeleteOrder_NoExiste(t *testing.T) {
	store := newMemStore()
	uc, _ := newTestUC(store)

	err := uc.DeleteOrder(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// BulkCreateOrders
// ──────────────────────────────────────────────────────────────────────────────

// Todo o nada: con stock 10 el lote [{4},{8}] falla en la segunda entrada
// (quedaban 6) y no debe quedar ninguna orden ni débito.
func TestBulkCreateOrders_TodoONada(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "10")
	uc, pub := newTestUC(store)

	_, err := uc.BulkCreateOrders(context.Background(), []orders.CreateOrderInput{
		{ProductID: "p1", CustomerName: "Ana", Quantity: dec("4")},
		{ProductID: "p1", CustomerName: "Luis", Quantity: dec("8")},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "p1", "el error debe nombrar el producto ofensor")

	assert.True(t, store.products["p1"].Stock.Equal(dec("10")), "el stock no debe cambiar")
	assert.Empty(t, store.orders, "ninguna orden del lote debe quedar insertada")
	assert.Empty(t, pub.events)
}

// Los débitos de entradas anteriores del lote son visibles para las siguientes.
func TestBulkCreateOrders_DebitosVisiblesDentroDelLote(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "10")
	uc, pub := newTestUC(store)

	created, err := uc.BulkCreateOrders(context.Background(), []orders.CreateOrderInput{
		{ProductID: "p1", CustomerName: "Ana", Quantity: dec("4")},
		{ProductID: "p1", CustomerName: "Luis", Quantity: dec("6")},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.True(t, store.products["p1"].Stock.IsZero(), "10 - 4 - 6 = 0")
	assert.Len(t, store.orders, 2)
	assert.Len(t, pub.events, 2)
}

func TestBulkCreateOrders_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "10")
	uc, _ := newTestUC(store)

	_, err := uc.BulkCreateOrders(context.Background(), []orders.CreateOrderInput{
		{ProductID: "p1", CustomerName: "Ana", Quantity: dec("4")},
		{ProductID: "fantasma", CustomerName: "Luis", Quantity: dec("1")},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "fantasma")
	assert.True(t, store.products["p1"].Stock.Equal(dec("10")))
	assert.Empty(t, store.orders)
}

func TestBulkCreateOrders_LoteVacio(t *testing.T) {
	store := newMemStore()
	uc, _ := newTestUC(store)

	_, err := uc.BulkCreateOrders(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBulkCreateOrders_ValidaEntradasAntesDeTocarNada(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "10")
	uc, _ := newTestUC(store)

	_, err := uc.BulkCreateOrders(context.Background(), []orders.CreateOrderInput{
		{ProductID: "p1", CustomerName: "Ana", Quantity: dec("4")},
		{ProductID: "p1", CustomerName: "", Quantity: dec("1")},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, store.products["p1"].Stock.Equal(dec("10")))
	assert.Empty(t, store.orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades del libro
// ──────────────────────────────────────────────────────────────────────────────

// Conservación: tras cualquier secuencia de operaciones exitosas,
// stock + Σ cantidades de órdenes vivas == stock inicial.
func TestConservacion(t *testing.T) {
	store := newMemStore()
	s0 := dec("100")
	seedProduct(store, "p1", "100")
	uc, _ := newTestUC(store)
	ctx := context.Background()

	checkInvariant := func(label string) {
		t.Helper()
		total := store.products["p1"].Stock.Add(sumOrderQuantities(store, "p1"))
		assert.True(t, total.Equal(s0), "invariante roto tras %s: stock+órdenes = %s", label, total)
		assert.False(t, store.products["p1"].Stock.IsNegative(), "stock negativo tras %s", label)
	}

	o1, err := uc.CreateOrder(ctx, orders.CreateOrderInput{ProductID: "p1", CustomerName: "Ana", Quantity: dec("30")})
	require.NoError(t, err)
	checkInvariant("create o1")

	o2, err := uc.CreateOrder(ctx, orders.CreateOrderInput{ProductID: "p1", CustomerName: "Luis", Quantity: dec("20")})
	require.NoError(t, err)
	checkInvariant("create o2")

	_, err = uc.UpdateOrder(ctx, o1.ID, dec("45"))
	require.NoError(t, err)
	checkInvariant("update o1")

	require.NoError(t, uc.DeleteOrder(ctx, o2.ID))
	checkInvariant("delete o2")

	_, err = uc.BulkCreateOrders(ctx, []orders.CreateOrderInput{
		{ProductID: "p1", CustomerName: "Marta", Quantity: dec("10")},
		{ProductID: "p1", CustomerName: "Pedro", Quantity: dec("45")},
	})
	require.NoError(t, err)
	checkInvariant("bulk")

	// Un intento que excede el stock restante no debe alterar nada
	_, err = uc.CreateOrder(ctx, orders.CreateOrderInput{ProductID: "p1", CustomerName: "Eva", Quantity: dec("1")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	checkInvariant("create rechazado")
}
