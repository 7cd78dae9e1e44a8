package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

type reportRepo struct {
	s *Store
}

var _ repository.ReportRepository = (*reportRepo)(nil)

func (r *reportRepo) SalesByPeriod(_ context.Context, from, to time.Time, categoryID *int64) (repository.SalesTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := repository.SalesTotals{TotalSales: decimal.Zero}
	customers := make(map[int64]struct{})
	for _, m := range r.s.outbound {
		if !inRange(m.Date, &from, &to) {
			continue
		}
		if categoryID != nil {
			p, ok := r.s.products[m.ProductID]
			if !ok || p.CategoryID != *categoryID {
				continue
			}
		}
		totals.TotalSales = totals.TotalSales.Add(m.UnitPrice.Mul(decimal.NewFromInt(m.Quantity)))
		totals.UnitsSold += m.Quantity
		customers[m.CustomerID] = struct{}{}
	}
	totals.CustomersServed = int64(len(customers))
	return totals, nil
}

func (r *reportRepo) BestSellers(_ context.Context, from, to *time.Time, limit int) ([]repository.BestSeller, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byProduct := make(map[int64]*repository.BestSeller)
	for _, m := range r.s.outbound {
		if !inRange(m.Date, from, to) {
			continue
		}
		b, ok := byProduct[m.ProductID]
		if !ok {
			b = &repository.BestSeller{ProductID: m.ProductID, Revenue: decimal.Zero}
			if p, found := r.s.products[m.ProductID]; found {
				b.ProductName = p.Name
				if c, found := r.s.categories[p.CategoryID]; found {
					b.CategoryName = c.Name
				}
			}
			byProduct[m.ProductID] = b
		}
		b.QuantitySold += m.Quantity
		b.Revenue = b.Revenue.Add(m.UnitPrice.Mul(decimal.NewFromInt(m.Quantity)))
	}
	out := make([]repository.BestSeller, 0, len(byProduct))
	for _, b := range byProduct {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuantitySold != out[j].QuantitySold {
			return out[i].QuantitySold > out[j].QuantitySold
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *reportRepo) SupplierSummary(_ context.Context, supplierID int64) (*repository.SupplierSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[supplierID]
	if !ok {
		return nil, nil
	}
	sum := &repository.SupplierSummary{SupplierID: sp.ID, Name: sp.Name, TotalPurchases: decimal.Zero}
	for _, m := range r.s.inbound {
		if m.SupplierID != supplierID {
			continue
		}
		sum.DeliveryCount++
		sum.TotalPurchases = sum.TotalPurchases.Add(m.UnitPrice.Mul(decimal.NewFromInt(m.Quantity)))
		if sum.LastDelivery == nil || m.Date.After(*sum.LastDelivery) {
			d := m.Date
			sum.LastDelivery = &d
		}
	}
	return sum, nil
}

func (r *reportRepo) InventoryStatus(_ context.Context) ([]repository.InventoryStatus, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lastIn := make(map[int64]time.Time)
	for _, m := range r.s.inbound {
		if m.Date.After(lastIn[m.ProductID]) {
			lastIn[m.ProductID] = m.Date
		}
	}
	lastOut := make(map[int64]time.Time)
	for _, m := range r.s.outbound {
		if m.Date.After(lastOut[m.ProductID]) {
			lastOut[m.ProductID] = m.Date
		}
	}
	out := make([]repository.InventoryStatus, 0, len(r.s.products))
	for _, p := range r.s.products {
		st := repository.InventoryStatus{ProductID: p.ID, ProductName: p.Name, Stock: p.Stock, Price: p.Price}
		if d, ok := lastIn[p.ID]; ok {
			st.LastInbound = &d
		}
		if d, ok := lastOut[p.ID]; ok {
			st.LastOutbound = &d
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *reportRepo) LedgerBalances(_ context.Context) ([]repository.LedgerBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	in := make(map[int64]int64)
	for _, m := range r.s.inbound {
		in[m.ProductID] += m.Quantity
	}
	outQty := make(map[int64]int64)
	for _, m := range r.s.outbound {
		outQty[m.ProductID] += m.Quantity
	}
	out := make([]repository.LedgerBalance, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, repository.LedgerBalance{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Stock:         p.Stock,
			InitialStock:  p.InitialStock,
			InboundTotal:  in[p.ID],
			OutboundTotal: outQty[p.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}
