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

// SupplierUseCase casos de uso para proveedores.
type SupplierUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(txRunner inventory.TxRunner, repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un proveedor; (nombre, telefono) debe ser único.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Nombre)
	phone := strings.TrimSpace(in.Telefono)
	if name == "" {
		return nil, domain.NewValidation("nombre", "es requerido")
	}
	if phone == "" {
		return nil, domain.NewValidation("telefono", "es requerido")
	}
	supplier := &entity.Supplier{
		Name:      name,
		Phone:     phone,
		Address:   strings.TrimSpace(in.Direccion),
		CreatedAt: time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepositories) error {
		existing, err := repos.Suppliers.GetByNameAndPhone(ctx, name, phone)
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.DuplicateKeyError{Entity: domain.EntitySupplier, Key: "nombre+telefono", Value: name + "/" + phone}
		}
		return repos.Suppliers.Create(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor; NotFoundError si no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NewNotFound(domain.EntitySupplier, id)
	}
	return toSupplierResponse(supplier), nil
}

// List lista todos los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		IDProveedor: s.ID,
		Nombre:      s.Name,
		Telefono:    s.Phone,
		Direccion:   s.Address,
		CreadoEn:    s.CreatedAt,
	}
}
