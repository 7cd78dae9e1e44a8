package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "999,90", formatMoney(decimal.RequireFromString("999.9")))
	assert.Equal(t, "25.000,00", formatMoney(decimal.NewFromInt(25000)))
	assert.Equal(t, "1.234.567,50", formatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-1.000,00", formatMoney(decimal.NewFromInt(-1000)))
}

func TestGenerateSalesReportPDF(t *testing.T) {
	g := NewMarotoReportGenerator("Tienda Central")
	g.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }

	sales := dto.SalesReportResponse{
		FechaInicio:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		FechaFin:          time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC),
		TotalVentas:       decimal.RequireFromString("15230.75"),
		ProductosVendidos: 42,
		ClientesAtendidos: 7,
	}
	top := []dto.BestSellerResponse{
		{IDProducto: 1, Nombre: "ThinkPad", Categoria: "Laptops", CantidadVendida: 30, IngresosGenerados: decimal.NewFromInt(12000)},
		{IDProducto: 2, Nombre: "Audífonos", Categoria: "Audio", CantidadVendida: 12, IngresosGenerados: decimal.RequireFromString("3230.75")},
	}

	data, err := g.GenerateSalesReportPDF(context.Background(), sales, top)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	empty, err := g.GenerateSalesReportPDF(context.Background(), dto.SalesReportResponse{}, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF")))
}

func TestGenerateSalesReportPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoReportGenerator("x").GenerateSalesReportPDF(ctx, dto.SalesReportResponse{}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
