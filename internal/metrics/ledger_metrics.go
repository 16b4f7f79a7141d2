package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics métricas Prometheus de las operaciones del libro de pedidos.
type LedgerMetrics struct {
	ordersCreated prometheus.Counter
	ordersUpdated prometheus.Counter
	ordersDeleted prometheus.Counter
	bulkOrders    prometheus.Counter

	// Rechazos por motivo: not_found, insufficient_stock, invalid_input
	rejected *prometheus.CounterVec

	opDuration *prometheus.HistogramVec
}

// NewLedgerMetrics registra las métricas en el registerer por defecto.
func NewLedgerMetrics() *LedgerMetrics {
	return newLedgerMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newLedgerMetricsWithRegisterer(registerer prometheus.Registerer) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &LedgerMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ordenes_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersUpdated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ordenes_orders_updated_total",
			Help: "Total number of orders updated",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ordenes_orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
		bulkOrders: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ordenes_orders_bulk_created_total",
			Help: "Total number of orders created through bulk requests",
		}),
		rejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "ordenes_ledger_rejected_total",
			Help: "Total number of rejected ledger operations by reason",
		}, []string{"reason"}),
		opDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "ordenes_ledger_operation_duration_seconds",
			Help:    "Duration of ledger operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"operation"}),
	}
}

// OrderCreated incrementa el contador de órdenes creadas.
func (m *LedgerMetrics) OrderCreated() { m.ordersCreated.Inc() }

// OrderUpdated incrementa el contador de órdenes actualizadas.
func (m *LedgerMetrics) OrderUpdated() { m.ordersUpdated.Inc() }

// OrderDeleted incrementa el contador de órdenes eliminadas.
func (m *LedgerMetrics) OrderDeleted() { m.ordersDeleted.Inc() }

// BulkOrdersCreated suma n órdenes creadas por un bulk exitoso.
func (m *LedgerMetrics) BulkOrdersCreated(n int) { m.bulkOrders.Add(float64(n)) }

// Rejected incrementa el contador de rechazos para el motivo dado.
func (m *LedgerMetrics) Rejected(reason string) { m.rejected.WithLabelValues(reason).Inc() }

// ObserveOperation registra la duración de una operación del libro.
func (m *LedgerMetrics) ObserveOperation(operation string, d time.Duration) {
	m.opDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
