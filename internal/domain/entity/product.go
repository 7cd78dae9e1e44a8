package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Stock es materializado: solo el motor de movimientos lo modifica.
// InitialStock es el saldo de apertura registrado al crear el producto.
type Product struct {
	ID           int64
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int64
	InitialStock int64
	CategoryID   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductWithCategory producto con el nombre de su categoría (listados).
type ProductWithCategory struct {
	Product
	CategoryName string
}
