package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Tipos de entidad usados en los errores.
const (
	EntityCategory = "Categoria"
	EntitySupplier = "Proveedor"
	EntityCustomer = "Cliente"
	EntityProduct  = "Producto"
)

// NotFoundError indica que una entidad referenciada no existe.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d no encontrado", e.Entity, e.ID)
}

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// DuplicateKeyError indica un conflicto de clave de negocio.
// Key nombra la clave (ej. "nombre", "nombre+telefono") y Value el valor en conflicto.
type DuplicateKeyError struct {
	Entity string
	Key    string
	Value  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("ya existe %s con %s %q", e.Entity, e.Key, e.Value)
}

// Is permite errors.Is(err, ErrDuplicate).
func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicate }

// InsufficientStockError indica que una salida dejaría el stock en negativo.
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %d: solicitado %d, disponible %d",
		e.ProductID, e.Requested, e.Available)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ValidationError indica una entrada malformada.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidation construye un ValidationError.
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
