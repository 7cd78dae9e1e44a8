// Package memory implementa los repositorios y el TxRunner en memoria del proceso.
//
// Reproduce la semántica que el motor de movimientos espera de PostgreSQL: cada transacción
// escribe en un área propia que solo se publica al hacer commit, GetForUpdate toma un candado
// por producto que se mantiene hasta el fin de la transacción, y las claves de negocio se
// vuelven a verificar al publicar (equivalente a los constraints UNIQUE).
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/tienda-inventario-api/internal/application/inventory"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

var errTxClosed = errors.New("memory: transacción finalizada")

type supplierKey struct{ name, phone string }

// Store base de datos en memoria. Segura para uso concurrente.
type Store struct {
	mu        sync.Mutex
	txTimeout time.Duration

	categories map[int64]*entity.Category
	suppliers  map[int64]*entity.Supplier
	customers  map[int64]*entity.Customer
	products   map[int64]*entity.Product
	inbound    []*entity.InboundMovement
	outbound   []*entity.OutboundMovement

	categoryByName  map[string]int64
	supplierByKey   map[supplierKey]int64
	customerByEmail map[string]int64
	productByName   map[string]int64

	seqCategory, seqSupplier, seqCustomer, seqProduct, seqInbound, seqOutbound int64

	// Un semáforo por producto; equivale al candado de fila de SELECT ... FOR UPDATE.
	rowLocks map[int64]chan struct{}
}

// NewStore crea un store vacío. txTimeout <= 0 desactiva el timeout por transacción.
func NewStore(txTimeout time.Duration) *Store {
	return &Store{
		txTimeout:       txTimeout,
		categories:      make(map[int64]*entity.Category),
		suppliers:       make(map[int64]*entity.Supplier),
		customers:       make(map[int64]*entity.Customer),
		products:        make(map[int64]*entity.Product),
		categoryByName:  make(map[string]int64),
		supplierByKey:   make(map[supplierKey]int64),
		customerByEmail: make(map[string]int64),
		productByName:   make(map[string]int64),
		rowLocks:        make(map[int64]chan struct{}),
	}
}

var _ inventory.TxRunner = (*Store)(nil)

// Ping siempre responde; existe para el health check.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Categories repositorio de categorías en modo autocommit.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s: s} }

// Suppliers repositorio de proveedores en modo autocommit.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{s: s} }

// Customers repositorio de clientes en modo autocommit.
func (s *Store) Customers() repository.CustomerRepository { return &customerRepo{s: s} }

// Products repositorio de productos en modo autocommit.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Movements repositorio del libro en modo autocommit.
func (s *Store) Movements() repository.InventoryMovementRepository { return &movementRepo{s: s} }

// Reports repositorio de reportes (solo lectura).
func (s *Store) Reports() repository.ReportRepository { return &reportRepo{s: s} }

// Run ejecuta fn en una transacción. Commit si fn devuelve nil; en cualquier otro caso
// (error, panic, ctx cancelado o timeout) descarta todo lo escrito.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepositories) error) (err error) {
	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}
	t := newTx(s)
	defer func() {
		if p := recover(); p != nil {
			t.rollback()
			panic(p)
		}
		if err != nil {
			t.rollback()
		}
	}()

	if err = fn(ctx, t.repositories()); err != nil {
		return err
	}
	return t.commit(ctx)
}

// autocommit envuelve una escritura fuera de transacción.
func (s *Store) autocommit(ctx context.Context, fn func(t *tx) error) error {
	t := newTx(s)
	if err := fn(t); err != nil {
		t.rollback()
		return err
	}
	return t.commit(ctx)
}

func (s *Store) lockRow(ctx context.Context, productID int64) error {
	s.mu.Lock()
	ch, ok := s.rowLocks[productID]
	if !ok {
		ch = make(chan struct{}, 1)
		s.rowLocks[productID] = ch
	}
	s.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("bloquear producto %d: %w", productID, ctx.Err())
	}
}

func (s *Store) unlockRow(productID int64) {
	s.mu.Lock()
	ch := s.rowLocks[productID]
	s.mu.Unlock()
	<-ch
}

// tx área de escritura de una transacción. La usa una sola goroutine.
type tx struct {
	s      *Store
	closed bool
	locked map[int64]struct{}

	categories []*entity.Category
	suppliers  []*entity.Supplier
	customers  []*entity.Customer
	products   []*entity.Product
	inbound    []*entity.InboundMovement
	outbound   []*entity.OutboundMovement
	stock      map[int64]entity.Stock
}

func newTx(s *Store) *tx {
	return &tx{s: s, locked: make(map[int64]struct{}), stock: make(map[int64]entity.Stock)}
}

func (t *tx) repositories() inventory.TxRepositories {
	return inventory.TxRepositories{
		Categories: &categoryRepo{s: t.s, t: t},
		Suppliers:  &supplierRepo{s: t.s, t: t},
		Customers:  &customerRepo{s: t.s, t: t},
		Products:   &productRepo{s: t.s, t: t},
		Stock:      &stockRepo{s: t.s, t: t},
		Movements:  &movementRepo{s: t.s, t: t},
	}
}

func (t *tx) rollback() {
	if t.closed {
		return
	}
	t.closed = true
	t.release()
}

func (t *tx) release() {
	for id := range t.locked {
		t.s.unlockRow(id)
	}
	t.locked = nil
}

// commit verifica claves de negocio contra lo ya publicado y aplica todo bajo el mutex.
func (t *tx) commit(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	s := t.s
	s.mu.Lock()
	err := func() error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		if err := t.checkUniqueLocked(); err != nil {
			return err
		}
		t.applyLocked()
		return nil
	}()
	s.mu.Unlock()

	if err != nil {
		t.rollback()
		return err
	}
	t.closed = true
	t.release()
	return nil
}

func (t *tx) checkUniqueLocked() error {
	s := t.s
	for _, c := range t.categories {
		if _, ok := s.categoryByName[c.Name]; ok {
			return &domain.DuplicateKeyError{Entity: domain.EntityCategory, Key: "nombre", Value: c.Name}
		}
	}
	for _, sp := range t.suppliers {
		if _, ok := s.supplierByKey[supplierKey{sp.Name, sp.Phone}]; ok {
			return &domain.DuplicateKeyError{Entity: domain.EntitySupplier, Key: "nombre+telefono", Value: sp.Name + "/" + sp.Phone}
		}
	}
	for _, c := range t.customers {
		if _, ok := s.customerByEmail[c.Email]; ok {
			return &domain.DuplicateKeyError{Entity: domain.EntityCustomer, Key: "correo", Value: c.Email}
		}
	}
	for _, p := range t.products {
		if _, ok := s.productByName[p.Name]; ok {
			return &domain.DuplicateKeyError{Entity: domain.EntityProduct, Key: "nombre", Value: p.Name}
		}
	}
	return nil
}

func (t *tx) applyLocked() {
	s := t.s
	for _, c := range t.categories {
		s.categories[c.ID] = c
		s.categoryByName[c.Name] = c.ID
	}
	for _, sp := range t.suppliers {
		s.suppliers[sp.ID] = sp
		s.supplierByKey[supplierKey{sp.Name, sp.Phone}] = sp.ID
	}
	for _, c := range t.customers {
		s.customers[c.ID] = c
		s.customerByEmail[c.Email] = c.ID
	}
	for _, p := range t.products {
		s.products[p.ID] = p
		s.productByName[p.Name] = p.ID
	}
	s.inbound = append(s.inbound, t.inbound...)
	s.outbound = append(s.outbound, t.outbound...)
	for id, st := range t.stock {
		if p, ok := s.products[id]; ok {
			p.Stock = st.Quantity
			p.UpdatedAt = st.UpdatedAt
		}
	}
}

// Búsquedas que ven lo publicado más lo escrito por la transacción (t puede ser nil).
// Requieren s.mu tomado.

func (t *tx) categoryLocked(s *Store, id int64) *entity.Category {
	if c, ok := s.categories[id]; ok {
		return c
	}
	if t != nil {
		for _, c := range t.categories {
			if c.ID == id {
				return c
			}
		}
	}
	return nil
}

func (t *tx) supplierLocked(s *Store, id int64) *entity.Supplier {
	if sp, ok := s.suppliers[id]; ok {
		return sp
	}
	if t != nil {
		for _, sp := range t.suppliers {
			if sp.ID == id {
				return sp
			}
		}
	}
	return nil
}

func (t *tx) customerLocked(s *Store, id int64) *entity.Customer {
	if c, ok := s.customers[id]; ok {
		return c
	}
	if t != nil {
		for _, c := range t.customers {
			if c.ID == id {
				return c
			}
		}
	}
	return nil
}

// productLocked devuelve una copia con el stock escrito por la transacción, si lo hay.
func (t *tx) productLocked(s *Store, id int64) *entity.Product {
	var found *entity.Product
	if p, ok := s.products[id]; ok {
		found = p
	} else if t != nil {
		for _, p := range t.products {
			if p.ID == id {
				found = p
				break
			}
		}
	}
	if found == nil {
		return nil
	}
	cp := *found
	if t != nil {
		if st, ok := t.stock[id]; ok {
			cp.Stock = st.Quantity
			cp.UpdatedAt = st.UpdatedAt
		}
	}
	return &cp
}
