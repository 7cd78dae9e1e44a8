package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo libro de entradas y salidas (solo inserción).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// CreateInbound inserta una entrada y asigna el ID generado.
func (r *InventoryMovementRepo) CreateInbound(ctx context.Context, m *entity.InboundMovement) error {
	query := `
		INSERT INTO entradas_inventario (id_transaccion, fecha, id_producto, cantidad, precio_unitario, id_proveedor, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_entrada`
	err := r.q.QueryRow(ctx, query,
		m.TransactionID, m.Date, m.ProductID, m.Quantity, m.UnitPrice, m.SupplierID, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return notFoundFromConstraint(err, map[string]int64{
				domain.EntityProduct:  m.ProductID,
				domain.EntitySupplier: m.SupplierID,
			})
		}
		return fmt.Errorf("insert entrada: %w", err)
	}
	return nil
}

// CreateOutbound inserta una salida y asigna el ID generado.
func (r *InventoryMovementRepo) CreateOutbound(ctx context.Context, m *entity.OutboundMovement) error {
	query := `
		INSERT INTO salidas_inventario (id_transaccion, fecha, id_producto, cantidad, precio_unitario, id_cliente, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_salida`
	err := r.q.QueryRow(ctx, query,
		m.TransactionID, m.Date, m.ProductID, m.Quantity, m.UnitPrice, m.CustomerID, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return notFoundFromConstraint(err, map[string]int64{
				domain.EntityProduct:  m.ProductID,
				domain.EntityCustomer: m.CustomerID,
			})
		}
		return fmt.Errorf("insert salida: %w", err)
	}
	return nil
}

// List une entradas y salidas con los nombres de producto y contraparte, más recientes primero.
func (r *InventoryMovementRepo) List(ctx context.Context, from, to *time.Time) ([]entity.Movement, error) {
	query := `
		SELECT tipo, id, fecha, id_producto, nombre_producto, cantidad, precio_unitario, id_contraparte, nombre_contraparte
		FROM (
			SELECT 'entrada' AS tipo, e.id_entrada AS id, e.fecha, e.id_producto, p.nombre AS nombre_producto,
			       e.cantidad, e.precio_unitario, e.id_proveedor AS id_contraparte, pr.nombre AS nombre_contraparte
			FROM entradas_inventario e
			JOIN productos p    ON p.id_producto   = e.id_producto
			JOIN proveedores pr ON pr.id_proveedor = e.id_proveedor
			UNION ALL
			SELECT 'salida', s.id_salida, s.fecha, s.id_producto, p.nombre,
			       s.cantidad, s.precio_unitario, s.id_cliente, c.nombre
			FROM salidas_inventario s
			JOIN productos p ON p.id_producto = s.id_producto
			JOIN clientes c  ON c.id_cliente  = s.id_cliente
		) m
		WHERE ($1::timestamptz IS NULL OR m.fecha >= $1)
		  AND ($2::timestamptz IS NULL OR m.fecha <= $2)
		ORDER BY m.fecha DESC, m.id DESC`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Movement, 0)
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.Type, &m.ID, &m.Date, &m.ProductID, &m.ProductName,
			&m.Quantity, &m.UnitPrice, &m.CounterpartyID, &m.CounterpartyName,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
