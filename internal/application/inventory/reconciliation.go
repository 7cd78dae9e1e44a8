package inventory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

// ReconciliationUseCase audita que el stock materializado de cada producto coincida con
// stock_inicial + Σ entradas − Σ salidas. Solo lectura: nunca corrige.
type ReconciliationUseCase struct {
	reportRepo repository.ReportRepository
	log        zerolog.Logger
}

// NewReconciliationUseCase construye el caso de uso.
func NewReconciliationUseCase(reportRepo repository.ReportRepository, log zerolog.Logger) *ReconciliationUseCase {
	return &ReconciliationUseCase{reportRepo: reportRepo, log: log}
}

// Audit compara producto por producto y cuenta las inconsistencias.
func (uc *ReconciliationUseCase) Audit(ctx context.Context) (*dto.ReconciliationReport, error) {
	balances, err := uc.reportRepo.LedgerBalances(ctx)
	if err != nil {
		return nil, err
	}
	report := &dto.ReconciliationReport{
		TotalProductos: len(balances),
		Productos:      make([]dto.ReconciliationItem, 0, len(balances)),
	}
	for _, b := range balances {
		derived := b.InitialStock + b.InboundTotal - b.OutboundTotal
		item := dto.ReconciliationItem{
			IDProducto:      b.ProductID,
			NombreProducto:  b.ProductName,
			StockRegistrado: b.Stock,
			StockCalculado:  derived,
			StockInicial:    b.InitialStock,
			TotalEntradas:   b.InboundTotal,
			TotalSalidas:    b.OutboundTotal,
			Consistente:     derived == b.Stock && b.Stock >= 0,
		}
		if !item.Consistente {
			report.TotalInconsistent++
			uc.log.Error().
				Int64("id_producto", b.ProductID).
				Int64("stock_registrado", b.Stock).
				Int64("stock_calculado", derived).
				Msg("stock inconsistente con el libro de movimientos")
		}
		report.Productos = append(report.Productos, item)
	}
	return report, nil
}
