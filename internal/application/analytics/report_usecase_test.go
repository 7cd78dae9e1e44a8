package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-inventario-api/internal/application/analytics"
	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/application/inventory"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/infrastructure/memory"
)

type fakePDF struct {
	sales dto.SalesReportResponse
	top   []dto.BestSellerResponse
	err   error
}

func (f *fakePDF) GenerateSalesReportPDF(_ context.Context, sales dto.SalesReportResponse, top []dto.BestSellerResponse) ([]byte, error) {
	f.sales, f.top = sales, top
	return []byte("%PDF-fake"), f.err
}

type seeded struct {
	store      *memory.Store
	laptops    *entity.Category
	audio      *entity.Category
	thinkpad   *entity.Product
	headphones *entity.Product
	supplier   *entity.Supplier
	ana, luis  *entity.Customer
}

var day = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

// Seed: 2 categorías, 2 productos, ventas el 10 y 11 de mayo.
func seed(t *testing.T) *seeded {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore(time.Second)
	sd := &seeded{store: s}

	sd.laptops = &entity.Category{Name: "Laptops"}
	sd.audio = &entity.Category{Name: "Audio"}
	require.NoError(t, s.Categories().Create(ctx, sd.laptops))
	require.NoError(t, s.Categories().Create(ctx, sd.audio))
	sd.thinkpad = &entity.Product{Name: "ThinkPad", Price: decimal.NewFromInt(1000), InitialStock: 10, CategoryID: sd.laptops.ID}
	sd.headphones = &entity.Product{Name: "Audífonos", Price: decimal.NewFromInt(50), InitialStock: 100, CategoryID: sd.audio.ID}
	require.NoError(t, s.Products().Create(ctx, sd.thinkpad))
	require.NoError(t, s.Products().Create(ctx, sd.headphones))
	sd.supplier = &entity.Supplier{Name: "Mayorista", Phone: "123"}
	require.NoError(t, s.Suppliers().Create(ctx, sd.supplier))
	sd.ana = &entity.Customer{Name: "Ana", Email: "ana@x.com"}
	sd.luis = &entity.Customer{Name: "Luis", Email: "luis@x.com"}
	require.NoError(t, s.Customers().Create(ctx, sd.ana))
	require.NoError(t, s.Customers().Create(ctx, sd.luis))

	mov := inventory.NewRegisterMovementUseCase(s, s.Movements(), zerolog.Nop())
	out := func(p *entity.Product, c *entity.Customer, qty int64, price int64, at time.Time) {
		_, err := mov.RecordOutbound(ctx, inventory.OutboundInput{Date: at, ProductID: p.ID, Quantity: qty, UnitPrice: decimal.NewFromInt(price), CustomerID: c.ID})
		require.NoError(t, err)
	}
	out(sd.thinkpad, sd.ana, 2, 1100, day)
	out(sd.headphones, sd.luis, 5, 60, day)
	out(sd.headphones, sd.ana, 10, 55, day.Add(24*time.Hour))

	_, err := mov.RecordInbound(ctx, inventory.InboundInput{Date: day.Add(-48 * time.Hour), ProductID: sd.thinkpad.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(800), SupplierID: sd.supplier.ID})
	require.NoError(t, err)
	_, err = mov.RecordInbound(ctx, inventory.InboundInput{Date: day.Add(-24 * time.Hour), ProductID: sd.headphones.ID, Quantity: 20, UnitPrice: decimal.NewFromInt(30), SupplierID: sd.supplier.ID})
	require.NoError(t, err)
	return sd
}

func TestSalesByPeriod_TotalesYCategoria(t *testing.T) {
	sd := seed(t)
	uc := analytics.NewReportUseCase(sd.store.Reports(), nil)
	ctx := context.Background()

	res, err := uc.SalesByPeriod(ctx, dto.SalesReportRequest{FechaInicio: "2024-05-10T00:00:00Z", FechaFin: "2024-05-10T23:59:59Z"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2*1100+5*60).Equal(res.TotalVentas), res.TotalVentas.String())
	assert.Equal(t, int64(7), res.ProductosVendidos)
	assert.Equal(t, int64(2), res.ClientesAtendidos)

	catID := sd.audio.ID
	res, err = uc.SalesByPeriod(ctx, dto.SalesReportRequest{FechaInicio: "2024-05-01T00:00:00Z", FechaFin: "2024-05-31T00:00:00Z", CategoriaID: &catID})
	require.NoError(t, err)
	assert.Equal(t, int64(15), res.ProductosVendidos)
}

func TestSalesByPeriod_FechasRequeridasYValidas(t *testing.T) {
	uc := analytics.NewReportUseCase(memory.NewStore(time.Second).Reports(), nil)
	ctx := context.Background()

	_, err := uc.SalesByPeriod(ctx, dto.SalesReportRequest{FechaFin: "2024-05-10"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SalesByPeriod(ctx, dto.SalesReportRequest{FechaInicio: "10/05/2024", FechaFin: "2024-05-10"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SalesByPeriod(ctx, dto.SalesReportRequest{FechaInicio: "2024-05-11", FechaFin: "2024-05-10"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBestSellers_OrdenYLimite(t *testing.T) {
	sd := seed(t)
	uc := analytics.NewReportUseCase(sd.store.Reports(), nil)
	ctx := context.Background()

	top, err := uc.BestSellers(ctx, dto.BestSellersRequest{})
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, sd.headphones.ID, top[0].IDProducto)
	assert.Equal(t, int64(15), top[0].CantidadVendida)
	assert.Equal(t, "Audio", top[0].Categoria)
	assert.True(t, decimal.NewFromInt(5*60+10*55).Equal(top[0].IngresosGenerados))

	top, err = uc.BestSellers(ctx, dto.BestSellersRequest{Limite: 1})
	require.NoError(t, err)
	assert.Len(t, top, 1)

	top, err = uc.BestSellers(ctx, dto.BestSellersRequest{FechaInicio: "2024-05-11T00:00:00Z"})
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(10), top[0].CantidadVendida)

	_, err = uc.BestSellers(ctx, dto.BestSellersRequest{Limite: -3})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplierSummary(t *testing.T) {
	sd := seed(t)
	uc := analytics.NewReportUseCase(sd.store.Reports(), nil)
	ctx := context.Background()

	sum, err := uc.SupplierSummary(ctx, sd.supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.TotalProductosSuministrados)
	assert.True(t, decimal.NewFromInt(3*800+20*30).Equal(sum.TotalCompras))
	require.NotNil(t, sum.UltimaEntrega)
	assert.True(t, sum.UltimaEntrega.Equal(day.Add(-24*time.Hour)))

	_, err = uc.SupplierSummary(ctx, 999)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.EntitySupplier, nf.Entity)
}

func TestInventoryStatus_ValorTotal(t *testing.T) {
	sd := seed(t)
	uc := analytics.NewReportUseCase(sd.store.Reports(), nil)

	status, err := uc.InventoryStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, status, 2)
	// ThinkPad: 10 + 3 − 2 = 11 unidades a 1000
	assert.Equal(t, int64(11), status[0].StockActual)
	assert.True(t, decimal.NewFromInt(11000).Equal(status[0].ValorTotal))
	require.NotNil(t, status[0].UltimaSalida)
	assert.True(t, status[0].UltimaSalida.Equal(day))
}

func TestDashboard_HoyMesYTop(t *testing.T) {
	sd := seed(t)
	uc := analytics.NewReportUseCase(sd.store.Reports(), nil)

	panel, err := uc.Dashboard(context.Background(), day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Mayo 2024", panel.EtiquetaMes)
	assert.Equal(t, int64(10), panel.VentasHoy.ProductosVendidos)
	assert.Equal(t, int64(17), panel.VentasMes.ProductosVendidos)
	assert.Len(t, panel.TopProductos, 2)
}

func TestSalesReportPDF(t *testing.T) {
	sd := seed(t)
	gen := &fakePDF{}
	uc := analytics.NewReportUseCase(sd.store.Reports(), gen)

	data, name, err := uc.SalesReportPDF(context.Background(), dto.SalesReportRequest{FechaInicio: "2024-05-10T00:00:00Z", FechaFin: "2024-05-11T23:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(data))
	assert.Equal(t, "ventas_20240510_20240511.pdf", name)
	assert.Equal(t, int64(17), gen.sales.ProductosVendidos)
	assert.Len(t, gen.top, 2)

	gen.err = errors.New("sin fuentes")
	_, _, err = uc.SalesReportPDF(context.Background(), dto.SalesReportRequest{FechaInicio: "2024-05-10", FechaFin: "2024-05-11"})
	require.Error(t, err)
}
