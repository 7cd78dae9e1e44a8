package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo lee y escribe la columna productos.stock. Pensado para usarse con una tx.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate obtiene el stock y bloquea la fila del producto (SELECT FOR UPDATE).
// Otras transacciones sobre el mismo producto esperan hasta el commit o rollback.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID int64) (*entity.Stock, error) {
	query := `
		SELECT id_producto, stock, actualizado_en
		FROM productos WHERE id_producto = $1
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID).Scan(&s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Update escribe la nueva cantidad; el CHECK (stock >= 0) de la tabla rechaza negativos.
func (r *StockRepo) Update(ctx context.Context, s *entity.Stock) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE productos SET stock = $2, actualizado_en = $3 WHERE id_producto = $1`,
		s.ProductID, s.Quantity, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("update stock: producto %d no actualizado", s.ProductID)
	}
	return nil
}
