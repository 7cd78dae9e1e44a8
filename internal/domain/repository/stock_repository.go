package repository

import (
	"context"

	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
)

// StockRepository define el puerto para leer/escribir el stock materializado de un producto.
// Solo se usa dentro de transacciones, por el motor de movimientos.
type StockRepository interface {
	// GetForUpdate lee el stock y bloquea la fila del producto hasta el fin de la transacción
	// (SELECT ... FOR UPDATE). Devuelve (nil, nil) si el producto no existe.
	GetForUpdate(ctx context.Context, productID int64) (*entity.Stock, error)
	// Update escribe la nueva cantidad. La cantidad nunca puede ser negativa.
	Update(ctx context.Context, stock *entity.Stock) error
}
