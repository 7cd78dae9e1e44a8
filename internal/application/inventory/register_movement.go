package inventory

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

var tracer = otel.Tracer("github.com/jhoicas/tienda-inventario-api/internal/application/inventory")

// RegisterMovementUseCase registra entradas y salidas de inventario de forma transaccional.
// Es el único escritor del stock de productos: cada movimiento bloquea la fila del producto
// (SELECT FOR UPDATE), inserta el registro en el libro y actualiza el contador en la misma tx.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.InventoryMovementRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
// movRepo se usa solo para lecturas del historial (fuera de transacción).
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	movRepo repository.InventoryMovementRepository,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		log:      log,
		now:      time.Now,
	}
}

// InboundInput entrada para registrar una entrada de mercancía. Date cero = ahora.
type InboundInput struct {
	Date       time.Time
	ProductID  int64
	Quantity   int64
	UnitPrice  decimal.Decimal
	SupplierID int64
}

// OutboundInput entrada para registrar una salida (venta). Date cero = ahora.
type OutboundInput struct {
	Date       time.Time
	ProductID  int64
	Quantity   int64
	UnitPrice  decimal.Decimal
	CustomerID int64
}

// RecordInbound registra una entrada: resuelve producto y proveedor, inserta la entrada
// y suma la cantidad al stock, todo en una transacción.
func (uc *RegisterMovementUseCase) RecordInbound(ctx context.Context, in InboundInput) (*entity.InboundMovement, error) {
	if err := validateMovement(in.ProductID, in.Quantity, in.UnitPrice); err != nil {
		return nil, err
	}
	if in.SupplierID <= 0 {
		return nil, domain.NewValidation("id_proveedor", "debe ser un id válido")
	}

	ctx, span := tracer.Start(ctx, "inventory.RecordInbound", trace.WithAttributes(
		attribute.Int64("producto.id", in.ProductID),
		attribute.Int64("proveedor.id", in.SupplierID),
		attribute.Int64("cantidad", in.Quantity),
	))
	defer span.End()

	now := uc.now()
	mov := &entity.InboundMovement{
		TransactionID: uuid.New().String(),
		Date:          dateOrNow(in.Date, now),
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		SupplierID:    in.SupplierID,
		CreatedAt:     now,
	}

	var newStock int64
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepositories) error {
		// Bloquea la fila del producto para serializar escrituras concurrentes sobre su stock
		stock, err := repos.Stock.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.NewNotFound(domain.EntityProduct, in.ProductID)
		}
		supplier, err := repos.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.NewNotFound(domain.EntitySupplier, in.SupplierID)
		}

		if stock.Quantity > math.MaxInt64-in.Quantity {
			return domain.NewValidation("cantidad", "el stock resultante excede el máximo admitido")
		}

		if err := repos.Movements.CreateInbound(ctx, mov); err != nil {
			return err
		}
		stock.Quantity += in.Quantity
		stock.UpdatedAt = now
		newStock = stock.Quantity
		return repos.Stock.Update(ctx, stock)
	})
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("stock.nuevo", newStock))
	uc.log.Debug().
		Int64("id_entrada", mov.ID).
		Int64("id_producto", mov.ProductID).
		Int64("cantidad", mov.Quantity).
		Int64("stock", newStock).
		Msg("entrada registrada")
	return mov, nil
}

// RecordOutbound registra una salida. El stock se lee dentro de la misma transacción que lo
// descuenta; si no alcanza devuelve InsufficientStockError y no escribe nada.
func (uc *RegisterMovementUseCase) RecordOutbound(ctx context.Context, in OutboundInput) (*entity.OutboundMovement, error) {
	if err := validateMovement(in.ProductID, in.Quantity, in.UnitPrice); err != nil {
		return nil, err
	}
	if in.CustomerID <= 0 {
		return nil, domain.NewValidation("id_cliente", "debe ser un id válido")
	}

	ctx, span := tracer.Start(ctx, "inventory.RecordOutbound", trace.WithAttributes(
		attribute.Int64("producto.id", in.ProductID),
		attribute.Int64("cliente.id", in.CustomerID),
		attribute.Int64("cantidad", in.Quantity),
	))
	defer span.End()

	now := uc.now()
	mov := &entity.OutboundMovement{
		TransactionID: uuid.New().String(),
		Date:          dateOrNow(in.Date, now),
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		CustomerID:    in.CustomerID,
		CreatedAt:     now,
	}

	var newStock int64
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepositories) error {
		stock, err := repos.Stock.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.NewNotFound(domain.EntityProduct, in.ProductID)
		}
		customer, err := repos.Customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NewNotFound(domain.EntityCustomer, in.CustomerID)
		}
		if stock.Quantity < in.Quantity {
			return &domain.InsufficientStockError{
				ProductID: in.ProductID,
				Requested: in.Quantity,
				Available: stock.Quantity,
			}
		}

		if err := repos.Movements.CreateOutbound(ctx, mov); err != nil {
			return err
		}
		stock.Quantity -= in.Quantity
		stock.UpdatedAt = now
		newStock = stock.Quantity
		return repos.Stock.Update(ctx, stock)
	})
	if err != nil {
		recordSpanError(span, err)
		var ise *domain.InsufficientStockError
		if errors.As(err, &ise) {
			uc.log.Warn().
				Int64("id_producto", ise.ProductID).
				Int64("solicitado", ise.Requested).
				Int64("disponible", ise.Available).
				Msg("salida rechazada: stock insuficiente")
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int64("stock.nuevo", newStock))
	uc.log.Debug().
		Int64("id_salida", mov.ID).
		Int64("id_producto", mov.ProductID).
		Int64("cantidad", mov.Quantity).
		Int64("stock", newStock).
		Msg("salida registrada")
	return mov, nil
}

// ListMovements devuelve entradas y salidas unificadas, más recientes primero.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, from, to *time.Time) ([]entity.Movement, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.NewValidation("fecha_inicio", "no puede ser posterior a fecha_fin")
	}
	return uc.movRepo.List(ctx, from, to)
}

func validateMovement(productID, quantity int64, unitPrice decimal.Decimal) error {
	if productID <= 0 {
		return domain.NewValidation("id_producto", "debe ser un id válido")
	}
	if quantity <= 0 {
		return domain.NewValidation("cantidad", "debe ser mayor que 0")
	}
	return domain.ValidateMoney("precio_unitario", unitPrice)
}

func dateOrNow(date, now time.Time) time.Time {
	if date.IsZero() {
		return now
	}
	return date
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
