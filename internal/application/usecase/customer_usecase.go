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

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(txRunner inventory.TxRunner, repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un cliente; el correo debe ser único.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Nombre)
	email := strings.TrimSpace(in.Correo)
	if name == "" {
		return nil, domain.NewValidation("nombre", "es requerido")
	}
	if email == "" {
		return nil, domain.NewValidation("correo", "es requerido")
	}
	customer := &entity.Customer{
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(in.Telefono),
		CreatedAt: time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepositories) error {
		existing, err := repos.Customers.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.DuplicateKeyError{Entity: domain.EntityCustomer, Key: "correo", Value: email}
		}
		return repos.Customers.Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente; NotFoundError si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NewNotFound(domain.EntityCustomer, id)
	}
	return toCustomerResponse(customer), nil
}

// List lista todos los clientes.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		IDCliente: c.ID,
		Nombre:    c.Name,
		Correo:    c.Email,
		Telefono:  c.Phone,
		CreadoEn:  c.CreatedAt,
	}
}
