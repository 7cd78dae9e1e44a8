package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/application/inventory"
	"github.com/jhoicas/tienda-inventario-api/internal/application/usecase"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-inventario-api/pkg/config"
)

// newTestStore aplica las migraciones sobre TEST_DATABASE_URL y deja las tablas vacías.
func newTestStore(t *testing.T) (*postgres.Store, *pgxpool.Pool) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}

	mg, err := postgres.NewMigrator(url)
	require.NoError(t, err)
	require.NoError(t, mg.Up())
	require.NoError(t, mg.Close())

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 20})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE salidas_inventario, entradas_inventario, productos, clientes, proveedores, categorias RESTART IDENTITY`)
	require.NoError(t, err)
	return postgres.NewStore(pool, 10*time.Second), pool
}

type pgFixture struct {
	store                             *postgres.Store
	pool                              *pgxpool.Pool
	mov                               *inventory.RegisterMovementUseCase
	productID, supplierID, customerID int64
}

func newPGFixture(t *testing.T, stock int64) *pgFixture {
	t.Helper()
	s, pool := newTestStore(t)
	ctx := context.Background()

	cat, err := usecase.NewCategoryUseCase(s, s.Categories()).Create(ctx, dto.CreateCategoryRequest{Nombre: "Laptops"})
	require.NoError(t, err)
	p, err := usecase.NewProductUseCase(s, s.Products(), zerolog.Nop()).Create(ctx, dto.CreateProductRequest{
		Nombre: "ThinkPad", Precio: decimal.RequireFromString("1500.50"), Stock: stock, IDCategoria: cat.IDCategoria,
	})
	require.NoError(t, err)
	sup, err := usecase.NewSupplierUseCase(s, s.Suppliers()).Create(ctx, dto.CreateSupplierRequest{Nombre: "Lenovo", Telefono: "300", Direccion: "Calle 1"})
	require.NoError(t, err)
	cus, err := usecase.NewCustomerUseCase(s, s.Customers()).Create(ctx, dto.CreateCustomerRequest{Nombre: "Ana", Correo: "ana@x.com", Telefono: "301"})
	require.NoError(t, err)

	return &pgFixture{
		store:      s,
		pool:       pool,
		mov:        inventory.NewRegisterMovementUseCase(s, s.Movements(), zerolog.Nop()),
		productID:  p.IDProducto,
		supplierID: sup.IDProveedor,
		customerID: cus.IDCliente,
	}
}

func (f *pgFixture) stock(t *testing.T) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), f.productID)
	require.NoError(t, err)
	return p.Stock
}

func TestPostgres_SalidaConcurrenteNoSobrevende(t *testing.T) {
	const n, q = 20, 2
	f := newPGFixture(t, n*q-1)

	var ok, insufficient atomic.Int64
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := f.mov.RecordOutbound(context.Background(), inventory.OutboundInput{
				ProductID: f.productID, Quantity: q, UnitPrice: decimal.NewFromInt(10), CustomerID: f.customerID,
			})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int64(n-1), ok.Load())
	assert.Equal(t, int64(1), insufficient.Load())
	assert.Equal(t, int64(q-1), f.stock(t))

	audit, err := inventory.NewReconciliationUseCase(f.store.Reports(), zerolog.Nop()).Audit(context.Background())
	require.NoError(t, err)
	assert.Zero(t, audit.TotalInconsistent)
}

func TestPostgres_EntradaProveedorInexistente(t *testing.T) {
	f := newPGFixture(t, 5)

	_, err := f.mov.RecordInbound(context.Background(), inventory.InboundInput{
		ProductID: f.productID, Quantity: 20, UnitPrice: decimal.NewFromInt(1), SupplierID: f.supplierID + 100,
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.EntitySupplier, nf.Entity)
	assert.Equal(t, int64(5), f.stock(t))
}

func TestPostgres_ConstraintUnicoSeTraduce(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Categories().Create(ctx, &entity.Category{Name: "Audio"}))
	err := s.Categories().Create(ctx, &entity.Category{Name: "Audio"})
	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, domain.EntityCategory, dup.Entity)
}

func TestPostgres_LibroEsSoloInsercion(t *testing.T) {
	f := newPGFixture(t, 5)
	ctx := context.Background()

	_, err := f.mov.RecordInbound(ctx, inventory.InboundInput{
		ProductID: f.productID, Quantity: 1, UnitPrice: decimal.NewFromInt(1), SupplierID: f.supplierID,
	})
	require.NoError(t, err)

	_, err = f.pool.Exec(ctx, `UPDATE entradas_inventario SET cantidad = 100`)
	require.Error(t, err)
	_, err = f.pool.Exec(ctx, `DELETE FROM entradas_inventario`)
	require.Error(t, err)

	movs, err := f.mov.ListMovements(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "Lenovo", movs[0].CounterpartyName)
	assert.Equal(t, int64(6), f.stock(t))
}
