package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/application/inventory"
	"github.com/jhoicas/tienda-inventario-api/internal/application/usecase"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/infrastructure/memory"
)

func TestCategoryCreate_DuplicadoLaptops(t *testing.T) {
	s := memory.NewStore(time.Second)
	uc := usecase.NewCategoryUseCase(s, s.Categories())
	ctx := context.Background()

	first, err := uc.Create(ctx, dto.CreateCategoryRequest{Nombre: "Laptops"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Nombre: "Laptops"})
	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Laptops", dup.Value)

	got, err := uc.GetByID(ctx, first.IDCategoria)
	require.NoError(t, err)
	assert.Equal(t, "Laptops", got.Nombre)
	assert.Equal(t, first.CreadoEn, got.CreadoEn)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCategoryCreate_ConcurrenteSoloUnoGana(t *testing.T) {
	s := memory.NewStore(time.Second)
	uc := usecase.NewCategoryUseCase(s, s.Categories())

	var g errgroup.Group
	results := make([]error, 10)
	for i := range results {
		i := i
		g.Go(func() error {
			_, results[i] = uc.Create(context.Background(), dto.CreateCategoryRequest{Nombre: "Audio"})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	created := 0
	for _, err := range results {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	}
	assert.Equal(t, 1, created)
}

func TestCategoryGetByID_NoEncontrada(t *testing.T) {
	s := memory.NewStore(time.Second)
	uc := usecase.NewCategoryUseCase(s, s.Categories())

	_, err := uc.GetByID(context.Background(), 5)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.EntityCategory, nf.Entity)
}

func TestSupplierCreate_ClaveNombreTelefono(t *testing.T) {
	s := memory.NewStore(time.Second)
	uc := usecase.NewSupplierUseCase(s, s.Suppliers())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSupplierRequest{Nombre: "Acme", Telefono: "555", Direccion: "Calle 1"})
	require.NoError(t, err)
	// mismo nombre, otro teléfono: permitido
	_, err = uc.Create(ctx, dto.CreateSupplierRequest{Nombre: "Acme", Telefono: "556", Direccion: "Calle 2"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateSupplierRequest{Nombre: "Acme", Telefono: "555", Direccion: "Otra"})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCustomerCreate_CorreoUnico(t *testing.T) {
	s := memory.NewStore(time.Second)
	uc := usecase.NewCustomerUseCase(s, s.Customers())
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateCustomerRequest{Nombre: "Ana", Correo: "ana@example.com", Telefono: "300"})
	require.NoError(t, err)
	assert.NotZero(t, c.IDCliente)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Nombre: "Otra Ana", Correo: "ana@example.com", Telefono: "301"})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.GetByID(ctx, 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_CategoriaInexistenteYDuplicado(t *testing.T) {
	s := memory.NewStore(time.Second)
	cats := usecase.NewCategoryUseCase(s, s.Categories())
	uc := usecase.NewProductUseCase(s, s.Products(), zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Nombre: "Mouse", Precio: decimal.NewFromInt(10), IDCategoria: 9})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.EntityCategory, nf.Entity)
	assert.Equal(t, int64(9), nf.ID)

	cat, err := cats.Create(ctx, dto.CreateCategoryRequest{Nombre: "Accesorios"})
	require.NoError(t, err)
	p, err := uc.Create(ctx, dto.CreateProductRequest{Nombre: "Mouse", Precio: decimal.NewFromInt(10), Stock: 7, IDCategoria: cat.IDCategoria})
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.Stock)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Nombre: "Mouse", Precio: decimal.NewFromInt(12), IDCategoria: cat.IDCategoria})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Nombre: "Cable", Precio: decimal.NewFromInt(-1), IDCategoria: cat.IDCategoria})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductBulkCreate_TresValidosDosInvalidos(t *testing.T) {
	s := memory.NewStore(time.Second)
	cats := usecase.NewCategoryUseCase(s, s.Categories())
	uc := usecase.NewProductUseCase(s, s.Products(), zerolog.Nop())
	ctx := context.Background()

	cat, err := cats.Create(ctx, dto.CreateCategoryRequest{Nombre: "Laptops"})
	require.NoError(t, err)

	items := []dto.CreateProductRequest{
		{Nombre: "A", Precio: decimal.NewFromInt(1), Stock: 1, IDCategoria: cat.IDCategoria},
		{Nombre: "B", Precio: decimal.NewFromInt(2), Stock: 2, IDCategoria: 404},
		{Nombre: "C", Precio: decimal.NewFromInt(3), Stock: 3, IDCategoria: cat.IDCategoria},
		{Nombre: "D", Precio: decimal.NewFromInt(4), Stock: 4, IDCategoria: 405},
		{Nombre: "E", Precio: decimal.NewFromInt(5), Stock: 5, IDCategoria: cat.IDCategoria},
	}
	res, err := uc.BulkCreate(ctx, items)
	require.NoError(t, err)
	assert.NotEmpty(t, res.IDLote)
	assert.Equal(t, 3, res.TotalCreados)
	assert.Equal(t, 2, res.TotalFallidos)
	assert.Equal(t, "B", res.Fallidos[0].Producto.Nombre)
	assert.Contains(t, res.Fallidos[0].Error, "404")

	list, err := uc.List(ctx, dto.ProductFilterRequest{})
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Nombre)
		assert.Equal(t, "Laptops", p.CategoriaNombre)
	}
	assert.Equal(t, []string{"A", "C", "E"}, names)
}

func TestProductBulkCreate_ValidaNombreYPrecio(t *testing.T) {
	s := memory.NewStore(time.Second)
	cats := usecase.NewCategoryUseCase(s, s.Categories())
	uc := usecase.NewProductUseCase(s, s.Products(), zerolog.Nop())
	ctx := context.Background()

	cat, err := cats.Create(ctx, dto.CreateCategoryRequest{Nombre: "Cables"})
	require.NoError(t, err)

	res, err := uc.BulkCreate(ctx, []dto.CreateProductRequest{
		{Nombre: strings.Repeat("x", 150), Precio: decimal.NewFromInt(1), IDCategoria: cat.IDCategoria},
		{Nombre: "HDMI", Precio: decimal.RequireFromString("1.005"), IDCategoria: cat.IDCategoria},
		{Nombre: "USB", Precio: decimal.RequireFromString("10000000000"), IDCategoria: cat.IDCategoria},
		{Nombre: "VGA", Precio: decimal.RequireFromString("9.99"), IDCategoria: cat.IDCategoria},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCreados)
	assert.Equal(t, 3, res.TotalFallidos)
	assert.Contains(t, res.Fallidos[0].Error, "nombre")
	assert.Contains(t, res.Fallidos[1].Error, "precio")
	assert.Contains(t, res.Fallidos[2].Error, "precio")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Nombre: "DVI", Precio: decimal.RequireFromString("2.125"), IDCategoria: cat.IDCategoria})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "precio", ve.Field)
}

type failingRunner struct{ err error }

func (r failingRunner) Run(context.Context, func(context.Context, inventory.TxRepositories) error) error {
	return r.err
}

func TestProductBulkCreate_ErrorDeAlmacenamientoNoSeExpone(t *testing.T) {
	s := memory.NewStore(time.Second)
	runner := failingRunner{err: errors.New("pgx: conn closed: write tcp 10.0.0.5:5432: broken pipe")}
	uc := usecase.NewProductUseCase(runner, s.Products(), zerolog.Nop())

	res, err := uc.BulkCreate(context.Background(), []dto.CreateProductRequest{
		{Nombre: "Mouse", Precio: decimal.NewFromInt(10), IDCategoria: 1},
	})
	require.NoError(t, err)
	require.Len(t, res.Fallidos, 1)
	assert.Equal(t, "error interno del servidor", res.Fallidos[0].Error)
	assert.NotContains(t, res.Fallidos[0].Error, "pgx")
}

func TestProductList_Filtros(t *testing.T) {
	s := memory.NewStore(time.Second)
	cats := usecase.NewCategoryUseCase(s, s.Categories())
	uc := usecase.NewProductUseCase(s, s.Products(), zerolog.Nop())
	ctx := context.Background()

	a, err := cats.Create(ctx, dto.CreateCategoryRequest{Nombre: "A"})
	require.NoError(t, err)
	b, err := cats.Create(ctx, dto.CreateCategoryRequest{Nombre: "B"})
	require.NoError(t, err)
	for _, in := range []dto.CreateProductRequest{
		{Nombre: "p1", Precio: decimal.NewFromInt(10), Stock: 0, IDCategoria: a.IDCategoria},
		{Nombre: "p2", Precio: decimal.NewFromInt(50), Stock: 5, IDCategoria: a.IDCategoria},
		{Nombre: "p3", Precio: decimal.NewFromInt(90), Stock: 9, IDCategoria: b.IDCategoria},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	minStock := int64(5)
	list, err := uc.List(ctx, dto.ProductFilterRequest{StockMinimo: &minStock})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	catID := a.IDCategoria
	list, err = uc.List(ctx, dto.ProductFilterRequest{CategoriaID: &catID})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	lo, hi := decimal.NewFromInt(20), decimal.NewFromInt(60)
	list, err = uc.List(ctx, dto.ProductFilterRequest{PrecioMinimo: &lo, PrecioMaximo: &hi})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].Nombre)
	assert.Equal(t, int64(5), list[0].StockDisponible)

	_, err = uc.List(ctx, dto.ProductFilterRequest{PrecioMinimo: &hi, PrecioMaximo: &lo})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
