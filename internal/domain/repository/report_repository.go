package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotals resultado crudo del reporte de ventas de un período.
type SalesTotals struct {
	TotalSales      decimal.Decimal
	UnitsSold       int64
	CustomersServed int64
}

// BestSeller fila del ranking de productos más vendidos.
type BestSeller struct {
	ProductID    int64
	ProductName  string
	CategoryName string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// SupplierSummary resumen de entregas de un proveedor.
type SupplierSummary struct {
	SupplierID     int64
	Name           string
	DeliveryCount  int64
	TotalPurchases decimal.Decimal
	LastDelivery   *time.Time
}

// InventoryStatus estado de inventario de un producto.
type InventoryStatus struct {
	ProductID    int64
	ProductName  string
	Stock        int64
	Price        decimal.Decimal
	LastInbound  *time.Time
	LastOutbound *time.Time
}

// LedgerBalance stock materializado frente a los totales del libro para un producto.
type LedgerBalance struct {
	ProductID     int64
	ProductName   string
	Stock         int64
	InitialStock  int64
	InboundTotal  int64
	OutboundTotal int64
}

// ReportRepository consultas de solo lectura sobre el libro y las entidades.
// Las implementaciones no modifican datos.
type ReportRepository interface {
	// SalesByPeriod suma las salidas en [from, to]. categoryID nil = todas las categorías.
	SalesByPeriod(ctx context.Context, from, to time.Time, categoryID *int64) (SalesTotals, error)
	// BestSellers ordena por cantidad vendida descendente, como máximo limit filas.
	BestSellers(ctx context.Context, from, to *time.Time, limit int) ([]BestSeller, error)
	// SupplierSummary devuelve (nil, nil) si el proveedor no existe.
	SupplierSummary(ctx context.Context, supplierID int64) (*SupplierSummary, error)
	InventoryStatus(ctx context.Context) ([]InventoryStatus, error)
	LedgerBalances(ctx context.Context) ([]LedgerBalance, error)
}
