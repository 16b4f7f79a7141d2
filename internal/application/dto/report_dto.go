package dto

import "github.com/shopspring/decimal"

// ProductSummaryDTO total vendido y facturado por producto.
// TotalQuantity y TotalRevenue son cero para productos sin órdenes.
type ProductSummaryDTO struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// TopCustomerDTO cliente con su cantidad total pedida, para el ranking.
type TopCustomerDTO struct {
	CustomerName  string          `json:"customer_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// ProductStockDTO producto con su stock, para reportes de bajo stock y sin órdenes.
type ProductStockDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       decimal.Decimal `json:"stock"`
}
