package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "entrada"
	MovementTypeOUT = "salida"
)

// InboundMovement es una entrada de mercancía desde un proveedor. Inmutable una vez creada.
type InboundMovement struct {
	ID            int64
	TransactionID string
	Date          time.Time
	ProductID     int64
	Quantity      int64
	UnitPrice     decimal.Decimal
	SupplierID    int64
	CreatedAt     time.Time
}

// OutboundMovement es una salida (venta) hacia un cliente. Inmutable una vez creada.
type OutboundMovement struct {
	ID            int64
	TransactionID string
	Date          time.Time
	ProductID     int64
	Quantity      int64
	UnitPrice     decimal.Decimal
	CustomerID    int64
	CreatedAt     time.Time
}

// Movement vista unificada de entradas y salidas para el historial.
// CounterpartyID es el proveedor (entrada) o el cliente (salida).
type Movement struct {
	Type             string
	ID               int64
	Date             time.Time
	ProductID        int64
	ProductName      string
	Quantity         int64
	UnitPrice        decimal.Decimal
	CounterpartyID   int64
	CounterpartyName string
}
