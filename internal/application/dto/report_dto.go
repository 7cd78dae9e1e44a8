package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReportRequest query de GET /reportes/ventas/ (fechas YYYY-MM-DD o RFC 3339).
type SalesReportRequest struct {
	FechaInicio string
	FechaFin    string
	CategoriaID *int64
}

// SalesReportResponse totales de ventas de un período.
type SalesReportResponse struct {
	FechaInicio       time.Time       `json:"fecha_inicio"`
	FechaFin          time.Time       `json:"fecha_fin"`
	TotalVentas       decimal.Decimal `json:"total_ventas"`
	ProductosVendidos int64           `json:"productos_vendidos"`
	ClientesAtendidos int64           `json:"clientes_atendidos"`
}

// BestSellersRequest query de GET /reportes/productos-mas-vendidos/. Limite 0 = por defecto.
type BestSellersRequest struct {
	Limite      int
	FechaInicio string
	FechaFin    string
}

// BestSellerResponse fila del ranking de productos más vendidos.
type BestSellerResponse struct {
	IDProducto        int64           `json:"id_producto"`
	Nombre            string          `json:"nombre"`
	CantidadVendida   int64           `json:"cantidad_vendida"`
	IngresosGenerados decimal.Decimal `json:"ingresos_generados"`
	Categoria         string          `json:"categoria"`
}

// SupplierSummaryResponse resumen de GET /proveedores/{id}/resumen.
type SupplierSummaryResponse struct {
	IDProveedor                 int64           `json:"id_proveedor"`
	Nombre                      string          `json:"nombre"`
	TotalProductosSuministrados int64           `json:"total_productos_suministrados"`
	TotalCompras                decimal.Decimal `json:"total_compras"`
	UltimaEntrega               *time.Time      `json:"ultima_entrega"`
}

// DashboardResponse panel de GET /reportes/panel/.
type DashboardResponse struct {
	EtiquetaMes  string               `json:"etiqueta_mes"`
	VentasHoy    SalesReportResponse  `json:"ventas_hoy"`
	VentasMes    SalesReportResponse  `json:"ventas_mes"`
	TopProductos []BestSellerResponse `json:"top_productos"`
}
