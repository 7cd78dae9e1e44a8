package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterInboundRequest body para POST /inventario/entradas/. Fecha omitida = ahora.
type RegisterInboundRequest struct {
	Fecha          *time.Time      `json:"fecha"`
	IDProducto     int64           `json:"id_producto" validate:"required,gt=0"`
	Cantidad       int64           `json:"cantidad" validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	IDProveedor    int64           `json:"id_proveedor" validate:"required,gt=0"`
}

// RegisterOutboundRequest body para POST /inventario/salidas/. Fecha omitida = ahora.
type RegisterOutboundRequest struct {
	Fecha          *time.Time      `json:"fecha"`
	IDProducto     int64           `json:"id_producto" validate:"required,gt=0"`
	Cantidad       int64           `json:"cantidad" validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	IDCliente      int64           `json:"id_cliente" validate:"required,gt=0"`
}

// InboundResponse entrada registrada.
type InboundResponse struct {
	IDEntrada      int64           `json:"id_entrada"`
	IDTransaccion  string          `json:"id_transaccion"`
	Fecha          time.Time       `json:"fecha"`
	IDProducto     int64           `json:"id_producto"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	IDProveedor    int64           `json:"id_proveedor"`
}

// OutboundResponse salida registrada.
type OutboundResponse struct {
	IDSalida       int64           `json:"id_salida"`
	IDTransaccion  string          `json:"id_transaccion"`
	Fecha          time.Time       `json:"fecha"`
	IDProducto     int64           `json:"id_producto"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	IDCliente      int64           `json:"id_cliente"`
}

// MovementResponse fila del historial unificado (GET /inventario/movimientos/).
// Los campos de proveedor solo aplican a entradas y los de cliente a salidas.
type MovementResponse struct {
	TipoMovimiento  string          `json:"tipo_movimiento"`
	IDMovimiento    int64           `json:"id_movimiento"`
	Fecha           time.Time       `json:"fecha"`
	IDProducto      int64           `json:"id_producto"`
	NombreProducto  string          `json:"nombre_producto"`
	Cantidad        int64           `json:"cantidad"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario"`
	IDProveedor     *int64          `json:"id_proveedor"`
	NombreProveedor *string         `json:"nombre_proveedor"`
	IDCliente       *int64          `json:"id_cliente"`
	NombreCliente   *string         `json:"nombre_cliente"`
}

// InventoryStatusResponse estado de inventario de un producto (GET /inventario/).
type InventoryStatusResponse struct {
	IDProducto     int64           `json:"id_producto"`
	NombreProducto string          `json:"nombre_producto"`
	StockActual    int64           `json:"stock_actual"`
	ValorTotal     decimal.Decimal `json:"valor_total"`
	UltimaEntrada  *time.Time      `json:"ultima_entrada"`
	UltimaSalida   *time.Time      `json:"ultima_salida"`
}

// ReconciliationItem comparación entre stock materializado y stock derivado del libro.
type ReconciliationItem struct {
	IDProducto      int64  `json:"id_producto"`
	NombreProducto  string `json:"nombre_producto"`
	StockRegistrado int64  `json:"stock_registrado"`
	StockCalculado  int64  `json:"stock_calculado"`
	StockInicial    int64  `json:"stock_inicial"`
	TotalEntradas   int64  `json:"total_entradas"`
	TotalSalidas    int64  `json:"total_salidas"`
	Consistente     bool   `json:"consistente"`
}

// ReconciliationReport resultado de GET /inventario/conciliacion/.
type ReconciliationReport struct {
	TotalProductos    int                  `json:"total_productos"`
	TotalInconsistent int                  `json:"total_inconsistentes"`
	Productos         []ReconciliationItem `json:"productos"`
}
