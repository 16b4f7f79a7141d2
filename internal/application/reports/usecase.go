package reports

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ordenes-api/internal/application/dto"
	"github.com/jhoicas/Ordenes-api/internal/domain/repository"
)

// DefaultTopCustomersLimit cantidad de clientes del ranking si no se indica otra.
const DefaultTopCustomersLimit = 3

// DefaultLowStockThreshold umbral de bajo stock si no se indica otro.
var DefaultLowStockThreshold = decimal.NewFromInt(100)

// ReportsUseCase consultas de solo lectura sobre productos y órdenes.
// Cada reporte sale de una única lectura consistente; la agregación de
// Summary y TopCustomers se hace en memoria con aritmética decimal.
type ReportsUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReportsUseCase construye el caso de uso de reportes.
func NewReportsUseCase(reportRepo repository.ReportRepository) *ReportsUseCase {
	return &ReportsUseCase{reportRepo: reportRepo}
}

// ListOrders devuelve todas las órdenes con nombre y precio unitario del producto.
func (uc *ReportsUseCase) ListOrders(ctx context.Context) ([]dto.OrderWithProductResponse, error) {
	lines, err := uc.reportRepo.ListOrderLines(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderWithProductResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.OrderWithProductResponse{
			ID:           l.OrderID,
			CustomerName: l.CustomerName,
			Quantity:     l.Quantity,
			OrderDate:    l.OrderDate,
			ProductName:  l.ProductName,
			UnitPrice:    l.UnitPrice,
		})
	}
	return out, nil
}

// Summary devuelve, por cada producto, la cantidad total pedida y el ingreso
// total (Σ cantidad × precio unitario). Productos sin órdenes reportan cero.
func (uc *ReportsUseCase) Summary(ctx context.Context) ([]dto.ProductSummaryDTO, error) {
	products, err := uc.reportRepo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := uc.reportRepo.ListOrderLines(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal, len(products))
	for _, l := range lines {
		totals[l.ProductID] = totals[l.ProductID].Add(l.Quantity)
	}

	out := make([]dto.ProductSummaryDTO, 0, len(products))
	for _, p := range products {
		qty := totals[p.ProductID] // cero si no hay órdenes
		out = append(out, dto.ProductSummaryDTO{
			ProductID:     p.ProductID,
			ProductName:   p.ProductName,
			TotalQuantity: qty,
			TotalRevenue:  qty.Mul(p.UnitPrice),
		})
	}
	return out, nil
}

// TopCustomers devuelve los `limit` clientes con mayor cantidad total pedida,
// descendente. Empates se resuelven por nombre de cliente ascendente para que
// el ranking sea determinista. limit <= 0 usa DefaultTopCustomersLimit.
func (uc *ReportsUseCase) TopCustomers(ctx context.Context, limit int) ([]dto.TopCustomerDTO, error) {
	if limit <= 0 {
		limit = DefaultTopCustomersLimit
	}
	lines, err := uc.reportRepo.ListOrderLines(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, l := range lines {
		totals[l.CustomerName] = totals[l.CustomerName].Add(l.Quantity)
	}

	ranking := make([]dto.TopCustomerDTO, 0, len(totals))
	for name, qty := range totals {
		ranking = append(ranking, dto.TopCustomerDTO{CustomerName: name, TotalQuantity: qty})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		if !a.TotalQuantity.Equal(b.TotalQuantity) {
			return a.TotalQuantity.GreaterThan(b.TotalQuantity)
		}
		return a.CustomerName < b.CustomerName
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

// LowStock devuelve los productos con stock por debajo del umbral.
// threshold nulo o negativo usa DefaultLowStockThreshold.
func (uc *ReportsUseCase) LowStock(ctx context.Context, threshold decimal.Decimal) ([]dto.ProductStockDTO, error) {
	if !threshold.GreaterThan(decimal.Zero) {
		threshold = DefaultLowStockThreshold
	}
	rows, err := uc.reportRepo.GetLowStockProducts(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return toProductStockDTOs(rows), nil
}

// UnorderedProducts devuelve los productos sin ninguna orden asociada.
func (uc *ReportsUseCase) UnorderedProducts(ctx context.Context) ([]dto.ProductStockDTO, error) {
	rows, err := uc.reportRepo.GetUnorderedProducts(ctx)
	if err != nil {
		return nil, err
	}
	return toProductStockDTOs(rows), nil
}

func toProductStockDTOs(rows []repository.ProductStockResult) []dto.ProductStockDTO {
	out := make([]dto.ProductStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductStockDTO{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			UnitPrice:   r.UnitPrice,
			Stock:       r.Stock,
		})
	}
	return out
}
