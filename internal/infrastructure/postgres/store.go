package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

// Store agrupa los adaptadores PostgreSQL sobre un mismo pool.
type Store struct {
	pool *pgxpool.Pool
	*TxRunner
}

// NewStore construye el store; txTimeout acota cada transacción.
func NewStore(pool *pgxpool.Pool, txTimeout time.Duration) *Store {
	return &Store{pool: pool, TxRunner: NewTxRunner(pool, txTimeout)}
}

// Ping verifica la conexión (health check).
func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Categories() repository.CategoryRepository { return NewCategoryRepository(s.pool) }
func (s *Store) Suppliers() repository.SupplierRepository  { return NewSupplierRepository(s.pool) }
func (s *Store) Customers() repository.CustomerRepository  { return NewCustomerRepository(s.pool) }
func (s *Store) Products() repository.ProductRepository    { return NewProductRepository(s.pool) }
func (s *Store) Movements() repository.InventoryMovementRepository {
	return NewInventoryMovementRepository(s.pool)
}
func (s *Store) Reports() repository.ReportRepository { return NewReportRepository(s.pool) }
