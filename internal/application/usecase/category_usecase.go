package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/application/inventory"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
)

// CategoryUseCase casos de uso para categorías. Las categorías no se modifican ni se eliminan.
type CategoryUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(txRunner inventory.TxRunner, repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{txRunner: txRunner, repo: repo}
}

// Create crea una categoría. La verificación de nombre único y el insert van en la misma
// transacción; el constraint UNIQUE de la BD cubre la carrera entre dos creaciones simultáneas.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Nombre)
	if name == "" {
		return nil, domain.NewValidation("nombre", "es requerido")
	}
	category := &entity.Category{Name: name, CreatedAt: time.Now()}
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepositories) error {
		existing, err := repos.Categories.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.DuplicateKeyError{Entity: domain.EntityCategory, Key: "nombre", Value: name}
		}
		return repos.Categories.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría; NotFoundError si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NewNotFound(domain.EntityCategory, id)
	}
	return toCategoryResponse(category), nil
}

// List lista todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{IDCategoria: c.ID, Nombre: c.Name, CreadoEn: c.CreatedAt}
}
