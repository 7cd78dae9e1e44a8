package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id_producto, p.nombre, p.descripcion, p.precio, p.stock, p.stock_inicial,
	p.id_categoria, p.creado_en, p.actualizado_en`

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto con stock = stock_inicial.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO productos (nombre, descripcion, precio, stock, stock_inicial, id_categoria, creado_en, actualizado_en)
		VALUES ($1, $2, $3, $4, $4, $5, $6, $6)
		RETURNING id_producto`
	err := r.q.QueryRow(ctx, query,
		p.Name, p.Description, p.Price, p.InitialStock, p.CategoryID, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return duplicateFromConstraint(err, p.Name)
		case isForeignKeyViolation(err):
			return notFoundFromConstraint(err, map[string]int64{domain.EntityCategory: p.CategoryID})
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	p.Stock = p.InitialStock
	p.UpdatedAt = p.CreatedAt
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos p WHERE p.id_producto = $1`, id)
}

// GetByName obtiene un producto por nombre exacto.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos p WHERE p.nombre = $1`, name)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.InitialStock,
		&p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// List lista productos con el nombre de su categoría. Los filtros nil se omiten.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.ProductWithCategory, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.MinStock != nil {
		add("p.stock >= $%d", *f.MinStock)
	}
	if f.CategoryID != nil {
		add("p.id_categoria = $%d", *f.CategoryID)
	}
	if f.MinPrice != nil {
		add("p.precio >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("p.precio <= $%d", *f.MaxPrice)
	}

	query := `SELECT ` + productColumns + `, c.nombre
		FROM productos p
		JOIN categorias c ON c.id_categoria = p.id_categoria`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.id_producto"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ProductWithCategory, 0)
	for rows.Next() {
		var p entity.ProductWithCategory
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.InitialStock,
			&p.CategoryID, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
