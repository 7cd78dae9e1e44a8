package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-inventario-api/internal/application/analytics"
	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos e inventario.
type InventoryHandler struct {
	uc             *inventory.RegisterMovementUseCase
	reconciliation *inventory.ReconciliationUseCase
	reports        *analytics.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	uc *inventory.RegisterMovementUseCase,
	reconciliation *inventory.ReconciliationUseCase,
	reports *analytics.ReportUseCase,
) *InventoryHandler {
	return &InventoryHandler{uc: uc, reconciliation: reconciliation, reports: reports}
}

// RegisterInbound godoc
// @Summary      Registrar entrada de inventario
// @Description  Inserta la entrada y suma la cantidad al stock del producto en una misma transacción.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterInboundRequest  true  "fecha (opcional), id_producto, cantidad, precio_unitario, id_proveedor"
// @Success      201   {object}  dto.InboundResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/inventario/entradas/ [post]
func (h *InventoryHandler) RegisterInbound(c *fiber.Ctx) error {
	var in dto.RegisterInboundRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RecordInboundFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterOutbound godoc
// @Summary      Registrar salida de inventario
// @Description  Rechaza la salida con 400 si el stock disponible no alcanza; en ese caso no se escribe nada.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterOutboundRequest  true  "fecha (opcional), id_producto, cantidad, precio_unitario, id_cliente"
// @Success      201   {object}  dto.OutboundResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/inventario/salidas/ [post]
func (h *InventoryHandler) RegisterOutbound(c *fiber.Ctx) error {
	var in dto.RegisterOutboundRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RecordOutboundFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Entradas y salidas unificadas, más recientes primero.
// @Tags         inventario
// @Produce      json
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD o RFC 3339"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD (inclusive) o RFC 3339"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/inventario/movimientos/ [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovementsFromRequest(c.UserContext(), c.Query("fecha_inicio"), c.Query("fecha_fin"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado del inventario
// @Description  Stock actual, valor total y fechas del último movimiento por producto.
// @Tags         inventario
// @Produce      json
// @Success      200  {array}  dto.InventoryStatusResponse
// @Router       /api/v1/inventario/ [get]
func (h *InventoryHandler) Status(c *fiber.Ctx) error {
	out, err := h.reports.InventoryStatus(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliación de stock
// @Description  Compara el stock registrado con stock_inicial + entradas - salidas. Solo lectura.
// @Tags         inventario
// @Produce      json
// @Success      200  {object}  dto.ReconciliationReport
// @Router       /api/v1/inventario/conciliacion/ [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.reconciliation.Audit(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
