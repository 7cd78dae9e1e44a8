package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

// ── Stock ─────────────────────────────────────────────────────────────────────

type stockRepo struct {
	s *Store
	t *tx
}

var _ repository.StockRepository = (*stockRepo)(nil)

// GetForUpdate toma el candado del producto (hasta commit/rollback) y lee su stock.
func (r *stockRepo) GetForUpdate(ctx context.Context, productID int64) (*entity.Stock, error) {
	if r.t == nil || r.t.closed {
		return nil, errors.New("memory: GetForUpdate requiere una transacción activa")
	}
	r.s.mu.Lock()
	exists := r.t.productLocked(r.s, productID) != nil
	r.s.mu.Unlock()
	if !exists {
		return nil, nil
	}
	if _, held := r.t.locked[productID]; !held {
		if err := r.s.lockRow(ctx, productID); err != nil {
			return nil, err
		}
		r.t.locked[productID] = struct{}{}
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.t.productLocked(r.s, productID)
	return &entity.Stock{ProductID: p.ID, Quantity: p.Stock, UpdatedAt: p.UpdatedAt}, nil
}

// Update escribe el stock de un producto bloqueado por esta transacción.
func (r *stockRepo) Update(_ context.Context, stock *entity.Stock) error {
	if r.t == nil || r.t.closed {
		return errors.New("memory: Update de stock requiere una transacción activa")
	}
	if _, held := r.t.locked[stock.ProductID]; !held {
		return fmt.Errorf("memory: producto %d no bloqueado por la transacción", stock.ProductID)
	}
	if stock.Quantity < 0 {
		return fmt.Errorf("memory: stock negativo para producto %d", stock.ProductID)
	}
	r.t.stock[stock.ProductID] = *stock
	return nil
}

// ── Libro de movimientos ──────────────────────────────────────────────────────

type movementRepo struct {
	s *Store
	t *tx
}

var _ repository.InventoryMovementRepository = (*movementRepo)(nil)

func (r *movementRepo) CreateInbound(ctx context.Context, m *entity.InboundMovement) error {
	if r.t == nil {
		return r.s.autocommit(ctx, func(t *tx) error {
			return (&movementRepo{s: r.s, t: t}).CreateInbound(ctx, m)
		})
	}
	if r.t.closed {
		return errTxClosed
	}
	if m.Quantity <= 0 {
		return domain.NewValidation("cantidad", "debe ser mayor que 0")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.t.productLocked(r.s, m.ProductID) == nil {
		return domain.NewNotFound(domain.EntityProduct, m.ProductID)
	}
	if r.t.supplierLocked(r.s, m.SupplierID) == nil {
		return domain.NewNotFound(domain.EntitySupplier, m.SupplierID)
	}
	r.s.seqInbound++
	m.ID = r.s.seqInbound
	cp := *m
	r.t.inbound = append(r.t.inbound, &cp)
	return nil
}

func (r *movementRepo) CreateOutbound(ctx context.Context, m *entity.OutboundMovement) error {
	if r.t == nil {
		return r.s.autocommit(ctx, func(t *tx) error {
			return (&movementRepo{s: r.s, t: t}).CreateOutbound(ctx, m)
		})
	}
	if r.t.closed {
		return errTxClosed
	}
	if m.Quantity <= 0 {
		return domain.NewValidation("cantidad", "debe ser mayor que 0")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.t.productLocked(r.s, m.ProductID) == nil {
		return domain.NewNotFound(domain.EntityProduct, m.ProductID)
	}
	if r.t.customerLocked(r.s, m.CustomerID) == nil {
		return domain.NewNotFound(domain.EntityCustomer, m.CustomerID)
	}
	r.s.seqOutbound++
	m.ID = r.s.seqOutbound
	cp := *m
	r.t.outbound = append(r.t.outbound, &cp)
	return nil
}

// List une entradas y salidas publicadas, más recientes primero.
func (r *movementRepo) List(_ context.Context, from, to *time.Time) ([]entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Movement, 0, len(r.s.inbound)+len(r.s.outbound))
	for _, m := range r.s.inbound {
		if !inRange(m.Date, from, to) {
			continue
		}
		out = append(out, entity.Movement{
			Type:             entity.MovementTypeIN,
			ID:               m.ID,
			Date:             m.Date,
			ProductID:        m.ProductID,
			ProductName:      r.s.productName(m.ProductID),
			Quantity:         m.Quantity,
			UnitPrice:        m.UnitPrice,
			CounterpartyID:   m.SupplierID,
			CounterpartyName: r.s.suppliers[m.SupplierID].Name,
		})
	}
	for _, m := range r.s.outbound {
		if !inRange(m.Date, from, to) {
			continue
		}
		out = append(out, entity.Movement{
			Type:             entity.MovementTypeOUT,
			ID:               m.ID,
			Date:             m.Date,
			ProductID:        m.ProductID,
			ProductName:      r.s.productName(m.ProductID),
			Quantity:         m.Quantity,
			UnitPrice:        m.UnitPrice,
			CounterpartyID:   m.CustomerID,
			CounterpartyName: r.s.customers[m.CustomerID].Name,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) productName(id int64) string {
	if p, ok := s.products[id]; ok {
		return p.Name
	}
	return ""
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
