package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ordenes-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes de productos y órdenes.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// ListOrderLines devuelve todas las órdenes con nombre y precio unitario del producto.
func (r *ReportRepo) ListOrderLines(ctx context.Context) ([]repository.OrderLineResult, error) {
	const query = `
	SELECT
	    o.id,
	    o.product_id,
	    p.name,
	    p.unit_price,
	    o.customer_name,
	    o.quantity,
	    o.order_date
	FROM orders o
	JOIN products p ON p.id = o.product_id
	ORDER BY o.order_date`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.ListOrderLines: %w", err)
	}
	defer rows.Close()

	var results []repository.OrderLineResult
	for rows.Next() {
		var row repository.OrderLineResult
		if err := rows.Scan(
			&row.OrderID,
			&row.ProductID,
			&row.ProductName,
			&row.UnitPrice,
			&row.CustomerName,
			&row.Quantity,
			&row.OrderDate,
		); err != nil {
			return nil, fmt.Errorf("reports.ListOrderLines scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ListProducts devuelve todos los productos ordenados por nombre (base del resumen).
func (r *ReportRepo) ListProducts(ctx context.Context) ([]repository.ProductStockResult, error) {
	const query = `
	SELECT id, name, unit_price, stock
	FROM products
	ORDER BY name`
	return r.queryProductStocks(ctx, query)
}

// GetLowStockProducts devuelve los productos con stock por debajo del umbral.
func (r *ReportRepo) GetLowStockProducts(ctx context.Context, threshold decimal.Decimal) ([]repository.ProductStockResult, error) {
	const query = `
	SELECT id, name, unit_price, stock
	FROM products
	WHERE stock < $1
	ORDER BY stock`
	return r.queryProductStocks(ctx, query, threshold)
}

// GetUnorderedProducts devuelve los productos sin ninguna orden asociada.
func (r *ReportRepo) GetUnorderedProducts(ctx context.Context) ([]repository.ProductStockResult, error) {
	const query = `
	SELECT p.id, p.name, p.unit_price, p.stock
	FROM products p
	WHERE NOT EXISTS (SELECT 1 FROM orders o WHERE o.product_id = p.id)
	ORDER BY p.name`
	return r.queryProductStocks(ctx, query)
}

func (r *ReportRepo) queryProductStocks(ctx context.Context, query string, args ...any) ([]repository.ProductStockResult, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports product query: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductStockResult
	for rows.Next() {
		var row repository.ProductStockResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.UnitPrice, &row.Stock); err != nil {
			return nil, fmt.Errorf("reports product scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
