package repository

import (
	"context"

	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter filtros opcionales del listado de productos (nil = sin filtro).
type ProductFilter struct {
	MinStock   *int64
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create persiste Stock = InitialStock; después de eso el stock solo cambia vía StockRepository.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.ProductWithCategory, error)
}
