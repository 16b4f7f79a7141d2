package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ordenes-api/internal/application/dto"
	"github.com/jhoicas/Ordenes-api/internal/application/reports"
)

// ReportHandler maneja las consultas de reportes (solo lectura).
type ReportHandler struct {
	uc *reports.ReportsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen por producto
// @Description  Cantidad total pedida e ingreso total por producto (cero si no tiene órdenes).
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.ProductSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(summary)
}

// LowStock godoc
// @Summary      Productos con bajo stock
// @Tags         reports
// @Produce      json
// @Param        threshold  query  number  false  "Umbral de stock (por defecto 100)"
// @Success      200  {array}   dto.ProductStockDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	threshold := decimal.Zero
	if raw := c.Query("threshold"); raw != "" {
		var err error
		threshold, err = decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold inválido"})
		}
	}
	list, err := h.uc.LowStock(c.Context(), threshold)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "products": list})
}

// TopCustomers godoc
// @Summary      Ranking de clientes por cantidad total pedida
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Cantidad de clientes (por defecto 3)"
// @Success      200  {array}   dto.TopCustomerDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/top-customers [get]
func (h *ReportHandler) TopCustomers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	list, err := h.uc.TopCustomers(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "customers": list})
}

// Unordered godoc
// @Summary      Productos sin órdenes
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.ProductStockDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/unordered [get]
func (h *ReportHandler) Unordered(c *fiber.Ctx) error {
	list, err := h.uc.UnorderedProducts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "products": list})
}
