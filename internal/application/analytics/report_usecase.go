// Package analytics contiene el proyector de reportes: agregaciones de solo lectura sobre el
// libro de movimientos y las entidades (ventas, más vendidos, proveedores, panel y PDF).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

const (
	defaultBestSellersLimit = 10
	maxBestSellersLimit     = 100
)

// SalesPDFGenerator puerto de salida para renderizar el reporte de ventas.
type SalesPDFGenerator interface {
	GenerateSalesReportPDF(ctx context.Context, sales dto.SalesReportResponse, top []dto.BestSellerResponse) ([]byte, error)
}

// ReportUseCase casos de uso de reportes. Nunca escribe.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	pdf        SalesPDFGenerator
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si no se expone el PDF.
func NewReportUseCase(reportRepo repository.ReportRepository, pdf SalesPDFGenerator) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, pdf: pdf}
}

// SalesByPeriod totales de ventas entre fecha_inicio y fecha_fin (ambas requeridas).
func (uc *ReportUseCase) SalesByPeriod(ctx context.Context, in dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	from, to, err := requiredPeriod(in.FechaInicio, in.FechaFin)
	if err != nil {
		return nil, err
	}
	return uc.sales(ctx, from, to, in.CategoriaID)
}

// BestSellers ranking por cantidad vendida. Limite 0 = 10; máximo 100.
func (uc *ReportUseCase) BestSellers(ctx context.Context, in dto.BestSellersRequest) ([]dto.BestSellerResponse, error) {
	limit, err := normalizeLimit(in.Limite)
	if err != nil {
		return nil, err
	}
	from, to, err := optionalPeriod(in.FechaInicio, in.FechaFin)
	if err != nil {
		return nil, err
	}
	return uc.bestSellers(ctx, from, to, limit)
}

// SupplierSummary resumen de entregas de un proveedor; NotFoundError si no existe.
func (uc *ReportUseCase) SupplierSummary(ctx context.Context, supplierID int64) (*dto.SupplierSummaryResponse, error) {
	s, err := uc.reportRepo.SupplierSummary(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("resumen proveedor: %w", err)
	}
	if s == nil {
		return nil, domain.NewNotFound(domain.EntitySupplier, supplierID)
	}
	return &dto.SupplierSummaryResponse{
		IDProveedor:                 s.SupplierID,
		Nombre:                      s.Name,
		TotalProductosSuministrados: s.DeliveryCount,
		TotalCompras:                s.TotalPurchases.Round(2),
		UltimaEntrega:               s.LastDelivery,
	}, nil
}

// InventoryStatus estado de cada producto; valor_total = stock × precio.
func (uc *ReportUseCase) InventoryStatus(ctx context.Context) ([]dto.InventoryStatusResponse, error) {
	rows, err := uc.reportRepo.InventoryStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("estado inventario: %w", err)
	}
	out := make([]dto.InventoryStatusResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InventoryStatusResponse{
			IDProducto:     r.ProductID,
			NombreProducto: r.ProductName,
			StockActual:    r.Stock,
			ValorTotal:     r.Price.Mul(decimal.NewFromInt(r.Stock)).Round(2),
			UltimaEntrada:  r.LastInbound,
			UltimaSalida:   r.LastOutbound,
		})
	}
	return out, nil
}

// SalesReportPDF genera el PDF del reporte de ventas con el ranking del mismo período.
// Devuelve los bytes y el nombre de archivo sugerido.
func (uc *ReportUseCase) SalesReportPDF(ctx context.Context, in dto.SalesReportRequest) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("reporte pdf: generador no configurado")
	}
	from, to, err := requiredPeriod(in.FechaInicio, in.FechaFin)
	if err != nil {
		return nil, "", err
	}
	sales, err := uc.sales(ctx, from, to, in.CategoriaID)
	if err != nil {
		return nil, "", err
	}
	top, err := uc.bestSellers(ctx, &from, &to, defaultBestSellersLimit)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.GenerateSalesReportPDF(ctx, *sales, top)
	if err != nil {
		return nil, "", fmt.Errorf("reporte pdf: %w", err)
	}
	filename := fmt.Sprintf("ventas_%s_%s.pdf", from.Format("20060102"), to.Format("20060102"))
	return data, filename, nil
}

func (uc *ReportUseCase) sales(ctx context.Context, from, to time.Time, categoryID *int64) (*dto.SalesReportResponse, error) {
	totals, err := uc.reportRepo.SalesByPeriod(ctx, from, to, categoryID)
	if err != nil {
		return nil, fmt.Errorf("reporte ventas: %w", err)
	}
	return &dto.SalesReportResponse{
		FechaInicio:       from,
		FechaFin:          to,
		TotalVentas:       totals.TotalSales.Round(2),
		ProductosVendidos: totals.UnitsSold,
		ClientesAtendidos: totals.CustomersServed,
	}, nil
}

func (uc *ReportUseCase) bestSellers(ctx context.Context, from, to *time.Time, limit int) ([]dto.BestSellerResponse, error) {
	rows, err := uc.reportRepo.BestSellers(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("productos más vendidos: %w", err)
	}
	out := make([]dto.BestSellerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BestSellerResponse{
			IDProducto:        r.ProductID,
			Nombre:            r.ProductName,
			CantidadVendida:   r.QuantitySold,
			IngresosGenerados: r.Revenue.Round(2),
			Categoria:         r.CategoryName,
		})
	}
	return out, nil
}

func requiredPeriod(fechaInicio, fechaFin string) (time.Time, time.Time, error) {
	if fechaInicio == "" {
		return time.Time{}, time.Time{}, domain.NewValidation("fecha_inicio", "es requerida")
	}
	if fechaFin == "" {
		return time.Time{}, time.Time{}, domain.NewValidation("fecha_fin", "es requerida")
	}
	from, to, err := optionalPeriod(fechaInicio, fechaFin)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return *from, *to, nil
}

func optionalPeriod(fechaInicio, fechaFin string) (*time.Time, *time.Time, error) {
	from, err := dto.ParseDate("fecha_inicio", fechaInicio, false)
	if err != nil {
		return nil, nil, err
	}
	to, err := dto.ParseDate("fecha_fin", fechaFin, true)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, domain.NewValidation("fecha_inicio", "no puede ser posterior a fecha_fin")
	}
	return from, to, nil
}

func normalizeLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return defaultBestSellersLimit, nil
	case limit < 0:
		return 0, domain.NewValidation("limite", "debe ser mayor que 0")
	case limit > maxBestSellersLimit:
		return maxBestSellersLimit, nil
	}
	return limit, nil
}
