package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

// ── Categorías ────────────────────────────────────────────────────────────────

type categoryRepo struct {
	s *Store
	t *tx
}

var _ repository.CategoryRepository = (*categoryRepo)(nil)

func (r *categoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if r.t == nil {
		return r.s.autocommit(ctx, func(t *tx) error {
			return (&categoryRepo{s: r.s, t: t}).Create(ctx, category)
		})
	}
	if r.t.closed {
		return errTxClosed
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categoryByName[category.Name]; ok || r.t.hasCategoryName(category.Name) {
		return &domain.DuplicateKeyError{Entity: domain.EntityCategory, Key: "nombre", Value: category.Name}
	}
	r.s.seqCategory++
	category.ID = r.s.seqCategory
	cp := *category
	r.t.categories = append(r.t.categories, &cp)
	return nil
}

func (r *categoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c := r.t.categoryLocked(r.s, id); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	r.s.mu.Lock()
	id, ok := r.s.categoryByName[name]
	if !ok && r.t != nil {
		for _, c := range r.t.categories {
			if c.Name == name {
				id, ok = c.ID, true
			}
		}
	}
	r.s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *tx) hasCategoryName(name string) bool {
	for _, c := range t.categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ── Proveedores ───────────────────────────────────────────────────────────────

type supplierRepo struct {
	s *Store
	t *tx
}

var _ repository.SupplierRepository = (*supplierRepo)(nil)

func (r *supplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	if r.t == nil {
		return r.s.autocommit(ctx, func(t *tx) error {
			return (&supplierRepo{s: r.s, t: t}).Create(ctx, supplier)
		})
	}
	if r.t.closed {
		return errTxClosed
	}
	key := supplierKey{supplier.Name, supplier.Phone}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, taken := r.s.supplierByKey[key]
	for _, sp := range r.t.suppliers {
		if (supplierKey{sp.Name, sp.Phone}) == key {
			taken = true
		}
	}
	if taken {
		return &domain.DuplicateKeyError{Entity: domain.EntitySupplier, Key: "nombre+telefono", Value: supplier.Name + "/" + supplier.Phone}
	}
	r.s.seqSupplier++
	supplier.ID = r.s.seqSupplier
	cp := *supplier
	r.t.suppliers = append(r.t.suppliers, &cp)
	return nil
}

func (r *supplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sp := r.t.supplierLocked(r.s, id); sp != nil {
		cp := *sp
		return &cp, nil
	}
	return nil, nil
}

func (r *supplierRepo) GetByNameAndPhone(ctx context.Context, name, phone string) (*entity.Supplier, error) {
	key := supplierKey{name, phone}
	r.s.mu.Lock()
	id, ok := r.s.supplierByKey[key]
	if !ok && r.t != nil {
		for _, sp := range r.t.suppliers {
			if (supplierKey{sp.Name, sp.Phone}) == key {
				id, ok = sp.ID, true
			}
		}
	}
	r.s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *supplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sp := range r.s.suppliers {
		cp := *sp
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type customerRepo struct {
	s *Store
	t *tx
}

var _ repository.CustomerRepository = (*customerRepo)(nil)

func (r *customerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if r.t == nil {
		return r.s.autocommit(ctx, func(t *tx) error {
			return (&customerRepo{s: r.s, t: t}).Create(ctx, customer)
		})
	}
	if r.t.closed {
		return errTxClosed
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, taken := r.s.customerByEmail[customer.Email]
	for _, c := range r.t.customers {
		if c.Email == customer.Email {
			taken = true
		}
	}
	if taken {
		return &domain.DuplicateKeyError{Entity: domain.EntityCustomer, Key: "correo", Value: customer.Email}
	}
	r.s.seqCustomer++
	customer.ID = r.s.seqCustomer
	cp := *customer
	r.t.customers = append(r.t.customers, &cp)
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c := r.t.customerLocked(r.s, id); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *customerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	r.s.mu.Lock()
	id, ok := r.s.customerByEmail[email]
	if !ok && r.t != nil {
		for _, c := range r.t.customers {
			if c.Email == email {
				id, ok = c.ID, true
			}
		}
	}
	r.s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *customerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

type productRepo struct {
	s *Store
	t *tx
}

var _ repository.ProductRepository = (*productRepo)(nil)

// Create persiste el producto con Stock = InitialStock. La categoría debe existir (FK).
func (r *productRepo) Create(ctx context.Context, product *entity.Product) error {
	if r.t == nil {
		return r.s.autocommit(ctx, func(t *tx) error {
			return (&productRepo{s: r.s, t: t}).Create(ctx, product)
		})
	}
	if r.t.closed {
		return errTxClosed
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.t.categoryLocked(r.s, product.CategoryID) == nil {
		return domain.NewNotFound(domain.EntityCategory, product.CategoryID)
	}
	_, taken := r.s.productByName[product.Name]
	for _, p := range r.t.products {
		if p.Name == product.Name {
			taken = true
		}
	}
	if taken {
		return &domain.DuplicateKeyError{Entity: domain.EntityProduct, Key: "nombre", Value: product.Name}
	}
	r.s.seqProduct++
	product.ID = r.s.seqProduct
	product.Stock = product.InitialStock
	cp := *product
	r.t.products = append(r.t.products, &cp)
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.t.productLocked(r.s, id), nil
}

func (r *productRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	r.s.mu.Lock()
	id, ok := r.s.productByName[name]
	if !ok && r.t != nil {
		for _, p := range r.t.products {
			if p.Name == name {
				id, ok = p.ID, true
			}
		}
	}
	r.s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *productRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.ProductWithCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.ProductWithCategory, 0, len(r.s.products))
	for _, p := range r.s.products {
		if !matchesFilter(p, filter) {
			continue
		}
		item := &entity.ProductWithCategory{Product: *p}
		if c, ok := r.s.categories[p.CategoryID]; ok {
			item.CategoryName = c.Name
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func matchesFilter(p *entity.Product, f repository.ProductFilter) bool {
	if f.MinStock != nil && p.Stock < *f.MinStock {
		return false
	}
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}
