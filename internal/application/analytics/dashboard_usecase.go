package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
)

const dashboardTopProducts = 5 // número de productos en el widget del panel

// Dashboard genera el panel de ventas del día y del mes en curso.
//
// Tres lecturas en paralelo:
//  1. ventas de hoy
//  2. ventas del mes
//  3. top 5 productos del mes
func (uc *ReportUseCase) Dashboard(ctx context.Context, now time.Time) (*dto.DashboardResponse, error) {
	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		today, month *dto.SalesReportResponse
		top          []dto.BestSellerResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if today, err = uc.sales(gctx, todayStart, todayEnd, nil); err != nil {
			return fmt.Errorf("panel: ventas de hoy: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if month, err = uc.sales(gctx, monthStart, todayEnd, nil); err != nil {
			return fmt.Errorf("panel: ventas del mes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if top, err = uc.bestSellers(gctx, &monthStart, &todayEnd, dashboardTopProducts); err != nil {
			return fmt.Errorf("panel: top productos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		EtiquetaMes:  monthLabel(now),
		VentasHoy:    *today,
		VentasMes:    *month,
		TopProductos: top,
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
