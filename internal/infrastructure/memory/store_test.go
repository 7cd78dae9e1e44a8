package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-inventario-api/internal/application/inventory"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, s *memory.Store, name string, stock int64) *entity.Product {
	t.Helper()
	ctx := context.Background()
	cat := &entity.Category{Name: "cat-" + name}
	require.NoError(t, s.Categories().Create(ctx, cat))
	p := &entity.Product{Name: name, Price: decimal.NewFromInt(100), InitialStock: stock, CategoryID: cat.ID}
	require.NoError(t, s.Products().Create(ctx, p))
	return p
}

func TestRun_RollbackDescartaEscrituras(t *testing.T) {
	s := memory.NewStore(time.Second)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(ctx context.Context, repos inventory.TxRepositories) error {
		require.NoError(t, repos.Categories.Create(ctx, &entity.Category{Name: "Laptops"}))
		// visible dentro de la propia transacción
		c, err := repos.Categories.GetByName(ctx, "Laptops")
		require.NoError(t, err)
		require.NotNil(t, c)
		return boom
	})
	require.ErrorIs(t, err, boom)

	c, err := s.Categories().GetByName(ctx, "Laptops")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestRun_EscriturasNoVisiblesAntesDelCommit(t *testing.T) {
	s := memory.NewStore(time.Second)
	ctx := context.Background()

	err := s.Run(ctx, func(ctx context.Context, repos inventory.TxRepositories) error {
		require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{Name: "Ana", Email: "ana@x.com"}))
		other, err := s.Customers().GetByEmail(ctx, "ana@x.com")
		require.NoError(t, err)
		assert.Nil(t, other)
		return nil
	})
	require.NoError(t, err)

	got, err := s.Customers().GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)
}

func TestCommit_ClaveDuplicadaPublicadaEntreMedias(t *testing.T) {
	s := memory.NewStore(time.Second)
	ctx := context.Background()

	err := s.Run(ctx, func(ctx context.Context, repos inventory.TxRepositories) error {
		require.NoError(t, repos.Categories.Create(ctx, &entity.Category{Name: "Audio"}))
		// otra escritura publica el mismo nombre antes de nuestro commit
		require.NoError(t, s.Categories().Create(ctx, &entity.Category{Name: "Audio"}))
		return nil
	})
	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, domain.EntityCategory, dup.Entity)

	list, err := s.Categories().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetForUpdate_BloqueaHastaElCommit(t *testing.T) {
	s := memory.NewStore(5 * time.Second)
	p := seedProduct(t, s, "Mouse", 10)
	ctx := context.Background()

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, func(ctx context.Context, repos inventory.TxRepositories) error {
			st, err := repos.Stock.GetForUpdate(ctx, p.ID)
			if err != nil {
				return err
			}
			close(locked)
			<-release
			st.Quantity = 3
			return repos.Stock.Update(ctx, st)
		})
	}()
	<-locked

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	err := s.Run(waitCtx, func(ctx context.Context, repos inventory.TxRepositories) error {
		_, err := repos.Stock.GetForUpdate(ctx, p.ID)
		return err
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-done)

	err = s.Run(ctx, func(ctx context.Context, repos inventory.TxRepositories) error {
		st, err := repos.Stock.GetForUpdate(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), st.Quantity)
		return nil
	})
	require.NoError(t, err)
}

func TestGetForUpdate_ProductoInexistente(t *testing.T) {
	s := memory.NewStore(time.Second)
	err := s.Run(context.Background(), func(ctx context.Context, repos inventory.TxRepositories) error {
		st, err := repos.Stock.GetForUpdate(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, st)
		return nil
	})
	require.NoError(t, err)
}

func TestStockUpdate_RechazaNegativo(t *testing.T) {
	s := memory.NewStore(time.Second)
	p := seedProduct(t, s, "Teclado", 1)

	err := s.Run(context.Background(), func(ctx context.Context, repos inventory.TxRepositories) error {
		st, err := repos.Stock.GetForUpdate(ctx, p.ID)
		require.NoError(t, err)
		st.Quantity = -1
		return repos.Stock.Update(ctx, st)
	})
	require.Error(t, err)

	got, err := s.Products().GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Stock)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	s := memory.NewStore(time.Second)
	err := s.Products().Create(context.Background(), &entity.Product{Name: "X", CategoryID: 42})

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.EntityCategory, nf.Entity)
	assert.Equal(t, int64(42), nf.ID)
}

func TestMovementsList_OrdenDescendenteYRango(t *testing.T) {
	s := memory.NewStore(time.Second)
	ctx := context.Background()
	p := seedProduct(t, s, "Monitor", 5)
	sup := &entity.Supplier{Name: "Acme", Phone: "555"}
	require.NoError(t, s.Suppliers().Create(ctx, sup))
	cus := &entity.Customer{Name: "Luis", Email: "luis@x.com"}
	require.NoError(t, s.Customers().Create(ctx, cus))

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Movements().CreateInbound(ctx, &entity.InboundMovement{Date: base, ProductID: p.ID, Quantity: 2, SupplierID: sup.ID}))
	require.NoError(t, s.Movements().CreateOutbound(ctx, &entity.OutboundMovement{Date: base.Add(2 * time.Hour), ProductID: p.ID, Quantity: 1, CustomerID: cus.ID}))
	require.NoError(t, s.Movements().CreateInbound(ctx, &entity.InboundMovement{Date: base.Add(24 * time.Hour), ProductID: p.ID, Quantity: 4, SupplierID: sup.ID}))

	all, err := s.Movements().List(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, base.Add(24*time.Hour), all[0].Date)
	assert.Equal(t, entity.MovementTypeOUT, all[1].Type)
	assert.Equal(t, "Luis", all[1].CounterpartyName)
	assert.Equal(t, "Monitor", all[2].ProductName)

	from, to := base, base.Add(3*time.Hour)
	window, err := s.Movements().List(ctx, &from, &to)
	require.NoError(t, err)
	assert.Len(t, window, 2)
}
