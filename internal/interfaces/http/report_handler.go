package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-inventario-api/internal/application/analytics"
	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
)

// ReportHandler maneja los reportes de solo lectura.
type ReportHandler struct {
	uc  *analytics.ReportUseCase
	now func() time.Time
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, now: time.Now}
}

// Sales godoc
// @Summary      Ventas por período
// @Tags         reportes
// @Produce      json
// @Param        fecha_inicio  query  string  true   "YYYY-MM-DD o RFC 3339"
// @Param        fecha_fin     query  string  true   "YYYY-MM-DD (inclusive) o RFC 3339"
// @Param        categoria_id  query  int     false  "Filtrar por categoría"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reportes/ventas/ [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	in, err := salesRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SalesByPeriod(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesPDF godoc
// @Summary      Reporte de ventas en PDF
// @Description  Mismos filtros que /reportes/ventas/, con la tabla de productos más vendidos del período.
// @Tags         reportes
// @Produce      application/pdf
// @Param        fecha_inicio  query  string  true   "YYYY-MM-DD o RFC 3339"
// @Param        fecha_fin     query  string  true   "YYYY-MM-DD (inclusive) o RFC 3339"
// @Param        categoria_id  query  int     false  "Filtrar por categoría"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reportes/ventas/pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	in, err := salesRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	data, filename, err := h.uc.SalesReportPDF(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// BestSellers godoc
// @Summary      Productos más vendidos
// @Tags         reportes
// @Produce      json
// @Param        limite        query  int     false  "Cantidad de productos (1-100)"  default(10)
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD o RFC 3339"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD (inclusive) o RFC 3339"
// @Success      200  {array}   dto.BestSellerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reportes/productos-mas-vendidos/ [get]
func (h *ReportHandler) BestSellers(c *fiber.Ctx) error {
	in := dto.BestSellersRequest{
		FechaInicio: c.Query("fecha_inicio"),
		FechaFin:    c.Query("fecha_fin"),
	}
	if raw := c.Query("limite"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return writeError(c, domain.NewValidation("limite", "debe ser un entero mayor que 0"))
		}
		in.Limite = n
	}
	out, err := h.uc.BestSellers(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SupplierSummary godoc
// @Summary      Resumen de proveedor
// @Description  Cantidad de entregas, total comprado y fecha de la última entrega.
// @Tags         proveedores
// @Produce      json
// @Param        id   path      int  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/proveedores/{id}/resumen [get]
func (h *ReportHandler) SupplierSummary(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SupplierSummary(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Panel de ventas
// @Description  Ventas de hoy, ventas del mes y top 5 de productos del mes.
// @Tags         reportes
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/v1/reportes/panel/ [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), h.now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func salesRequest(c *fiber.Ctx) (dto.SalesReportRequest, error) {
	categoryID, err := queryInt64(c, "categoria_id")
	if err != nil {
		return dto.SalesReportRequest{}, err
	}
	return dto.SalesReportRequest{
		FechaInicio: c.Query("fecha_inicio"),
		FechaFin:    c.Query("fecha_fin"),
		CategoriaID: categoryID,
	}, nil
}
