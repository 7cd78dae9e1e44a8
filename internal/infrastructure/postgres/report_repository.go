package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre el libro de movimientos y las entidades.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesByPeriod suma las salidas del período; categoryID nil = todas.
func (r *ReportRepo) SalesByPeriod(ctx context.Context, from, to time.Time, categoryID *int64) (repository.SalesTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(s.cantidad * s.precio_unitario), 0) AS total_ventas,
	    COALESCE(SUM(s.cantidad), 0)::bigint             AS productos_vendidos,
	    COUNT(DISTINCT s.id_cliente)                     AS clientes_atendidos
	FROM salidas_inventario s
	JOIN productos p ON p.id_producto = s.id_producto
	WHERE s.fecha BETWEEN $1 AND $2
	  AND ($3::bigint IS NULL OR p.id_categoria = $3)`

	var t repository.SalesTotals
	err := r.pool.QueryRow(ctx, query, from, to, categoryID).Scan(&t.TotalSales, &t.UnitsSold, &t.CustomersServed)
	if err != nil {
		return t, fmt.Errorf("ventas por periodo: %w", err)
	}
	return t, nil
}

// BestSellers ranking por cantidad vendida; desempate por id de producto.
func (r *ReportRepo) BestSellers(ctx context.Context, from, to *time.Time, limit int) ([]repository.BestSeller, error) {
	const query = `
	SELECT
	    p.id_producto,
	    p.nombre,
	    c.nombre                             AS categoria,
	    SUM(s.cantidad)::bigint              AS cantidad_vendida,
	    SUM(s.cantidad * s.precio_unitario)  AS ingresos_generados
	FROM productos p
	JOIN categorias c         ON c.id_categoria = p.id_categoria
	JOIN salidas_inventario s ON s.id_producto  = p.id_producto
	WHERE ($1::timestamptz IS NULL OR s.fecha >= $1)
	  AND ($2::timestamptz IS NULL OR s.fecha <= $2)
	GROUP BY p.id_producto, p.nombre, c.nombre
	ORDER BY cantidad_vendida DESC, p.id_producto
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("productos mas vendidos: %w", err)
	}
	defer rows.Close()
	out := make([]repository.BestSeller, 0)
	for rows.Next() {
		var b repository.BestSeller
		if err := rows.Scan(&b.ProductID, &b.ProductName, &b.CategoryName, &b.QuantitySold, &b.Revenue); err != nil {
			return nil, fmt.Errorf("scan mas vendido: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SupplierSummary resumen de entregas; (nil, nil) si el proveedor no existe.
func (r *ReportRepo) SupplierSummary(ctx context.Context, supplierID int64) (*repository.SupplierSummary, error) {
	const query = `
	SELECT
	    pr.id_proveedor,
	    pr.nombre,
	    COUNT(e.id_entrada)                                AS total_productos_suministrados,
	    COALESCE(SUM(e.cantidad * e.precio_unitario), 0)   AS total_compras,
	    MAX(e.fecha)                                       AS ultima_entrega
	FROM proveedores pr
	LEFT JOIN entradas_inventario e ON e.id_proveedor = pr.id_proveedor
	WHERE pr.id_proveedor = $1
	GROUP BY pr.id_proveedor, pr.nombre`

	var s repository.SupplierSummary
	err := r.pool.QueryRow(ctx, query, supplierID).Scan(
		&s.SupplierID, &s.Name, &s.DeliveryCount, &s.TotalPurchases, &s.LastDelivery,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("resumen proveedor: %w", err)
	}
	return &s, nil
}

// InventoryStatus stock, precio y fechas del último movimiento de cada producto.
func (r *ReportRepo) InventoryStatus(ctx context.Context) ([]repository.InventoryStatus, error) {
	const query = `
	SELECT
	    p.id_producto,
	    p.nombre,
	    p.stock,
	    p.precio,
	    (SELECT MAX(e.fecha) FROM entradas_inventario e WHERE e.id_producto = p.id_producto) AS ultima_entrada,
	    (SELECT MAX(s.fecha) FROM salidas_inventario s  WHERE s.id_producto = p.id_producto) AS ultima_salida
	FROM productos p
	ORDER BY p.id_producto`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("estado inventario: %w", err)
	}
	defer rows.Close()
	out := make([]repository.InventoryStatus, 0)
	for rows.Next() {
		var s repository.InventoryStatus
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.Stock, &s.Price, &s.LastInbound, &s.LastOutbound); err != nil {
			return nil, fmt.Errorf("scan estado inventario: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LedgerBalances stock materializado frente a los totales del libro, producto por producto.
func (r *ReportRepo) LedgerBalances(ctx context.Context) ([]repository.LedgerBalance, error) {
	const query = `
	SELECT
	    p.id_producto,
	    p.nombre,
	    p.stock,
	    p.stock_inicial,
	    COALESCE((SELECT SUM(e.cantidad) FROM entradas_inventario e WHERE e.id_producto = p.id_producto), 0)::bigint AS total_entradas,
	    COALESCE((SELECT SUM(s.cantidad) FROM salidas_inventario s  WHERE s.id_producto = p.id_producto), 0)::bigint AS total_salidas
	FROM productos p
	ORDER BY p.id_producto`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("balances del libro: %w", err)
	}
	defer rows.Close()
	out := make([]repository.LedgerBalance, 0)
	for rows.Next() {
		var b repository.LedgerBalance
		if err := rows.Scan(&b.ProductID, &b.ProductName, &b.Stock, &b.InitialStock, &b.InboundTotal, &b.OutboundTotal); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
