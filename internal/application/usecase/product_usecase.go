package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/application/inventory"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

// ProductUseCase casos de uso para productos. Stock se maneja vía movimientos; aquí solo se
// fija el saldo de apertura.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
	log      zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, log: log}
}

// Create crea un producto. La categoría debe existir y el nombre no debe estar en uso.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := newProduct(in)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepositories) error {
		return createProduct(ctx, repos, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// BulkCreate crea varios productos; cada ítem corre en su propia transacción, de modo que un
// fallo no revierte los ítems ya creados ni impide los siguientes.
func (uc *ProductUseCase) BulkCreate(ctx context.Context, items []dto.CreateProductRequest) (*dto.BulkProductResult, error) {
	if len(items) == 0 {
		return nil, domain.NewValidation("", "la lista de productos está vacía")
	}
	result := &dto.BulkProductResult{
		IDLote:   uuid.New().String(),
		Creados:  make([]dto.ProductResponse, 0, len(items)),
		Fallidos: make([]dto.BulkProductFailure, 0),
	}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		created, err := uc.Create(ctx, item)
		if err != nil {
			result.Fallidos = append(result.Fallidos, dto.BulkProductFailure{Producto: item, Error: uc.failureMessage(err)})
			continue
		}
		result.Creados = append(result.Creados, *created)
	}
	result.TotalCreados = len(result.Creados)
	result.TotalFallidos = len(result.Fallidos)
	uc.log.Info().
		Str("id_lote", result.IDLote).
		Int("creados", result.TotalCreados).
		Int("fallidos", result.TotalFallidos).
		Msg("carga masiva de productos")
	return result, nil
}

// failureMessage expone el texto de los errores de dominio; los demás se registran y se
// reportan con un mensaje genérico.
func (uc *ProductUseCase) failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrInvalidInput):
		return err.Error()
	}
	uc.log.Error().Err(err).Msg("carga masiva: fallo al crear producto")
	return "error interno del servidor"
}

// GetByID obtiene un producto; NotFoundError si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound(domain.EntityProduct, id)
	}
	return toProductResponse(product), nil
}

// List lista productos con el nombre de su categoría, aplicando los filtros presentes.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest) ([]dto.ProductListItem, error) {
	if in.PrecioMinimo != nil && in.PrecioMaximo != nil && in.PrecioMinimo.GreaterThan(*in.PrecioMaximo) {
		return nil, domain.NewValidation("precio_minimo", "no puede ser mayor que precio_maximo")
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		MinStock:   in.StockMinimo,
		CategoryID: in.CategoriaID,
		MinPrice:   in.PrecioMinimo,
		MaxPrice:   in.PrecioMaximo,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductListItem, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductListItem{
			ProductResponse: *toProductResponse(&p.Product),
			CategoriaNombre: p.CategoryName,
			StockDisponible: p.Stock,
		})
	}
	return out, nil
}

func newProduct(in dto.CreateProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Nombre)
	if err := domain.ValidateName("nombre", name); err != nil {
		return nil, err
	}
	if err := domain.ValidateMoney("precio", in.Precio); err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, domain.NewValidation("stock", "no puede ser negativo")
	}
	if in.IDCategoria <= 0 {
		return nil, domain.NewValidation("id_categoria", "debe ser un id válido")
	}
	now := time.Now()
	return &entity.Product{
		Name:         name,
		Description:  strings.TrimSpace(in.Descripcion),
		Price:        in.Precio,
		Stock:        in.Stock,
		InitialStock: in.Stock,
		CategoryID:   in.IDCategoria,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func createProduct(ctx context.Context, repos inventory.TxRepositories, product *entity.Product) error {
	category, err := repos.Categories.GetByID(ctx, product.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.NewNotFound(domain.EntityCategory, product.CategoryID)
	}
	existing, err := repos.Products.GetByName(ctx, product.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return &domain.DuplicateKeyError{Entity: domain.EntityProduct, Key: "nombre", Value: product.Name}
	}
	return repos.Products.Create(ctx, product)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		IDProducto:  p.ID,
		Nombre:      p.Name,
		Descripcion: p.Description,
		Precio:      p.Price,
		Stock:       p.Stock,
		IDCategoria: p.CategoryID,
		CreadoEn:    p.CreatedAt,
	}
}
