package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto del libro de movimientos (solo inserción).
type InventoryMovementRepository interface {
	CreateInbound(ctx context.Context, movement *entity.InboundMovement) error
	CreateOutbound(ctx context.Context, movement *entity.OutboundMovement) error
	// List devuelve entradas y salidas unificadas, ordenadas por fecha descendente.
	// from/to nil = sin límite.
	List(ctx context.Context, from, to *time.Time) ([]entity.Movement, error)
}
