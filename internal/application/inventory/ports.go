package inventory

import (
	"context"

	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

// TxRepositories repositorios atados a una misma transacción de BD.
type TxRepositories struct {
	Categories repository.CategoryRepository
	Suppliers  repository.SupplierRepository
	Customers  repository.CustomerRepository
	Products   repository.ProductRepository
	Stock      repository.StockRepository
	Movements  repository.InventoryMovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El ctx que recibe fn lleva el timeout de la transacción y es el que deben usar los repositorios.
// Commit si fn devuelve nil; Rollback completo en cualquier otro caso (error, panic o ctx cancelado).
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
