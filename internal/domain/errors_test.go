package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-inventario-api/internal/domain"
)

func TestNotFoundError_MatchesSentinelThroughWrapping(t *testing.T) {
	err := fmt.Errorf("registrar entrada: %w", domain.NewNotFound(domain.EntitySupplier, 7))

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrDuplicate))

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, domain.EntitySupplier, nf.Entity)
	assert.Equal(t, int64(7), nf.ID)
}

func TestInsufficientStockError_CarriesQuantities(t *testing.T) {
	err := error(&domain.InsufficientStockError{ProductID: 3, Requested: 8, Available: 5})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "solicitado 8")
	assert.Contains(t, err.Error(), "disponible 5")
}

func TestDuplicateKeyError_Message(t *testing.T) {
	err := error(&domain.DuplicateKeyError{Entity: domain.EntityCategory, Key: "nombre", Value: "Laptops"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, `ya existe Categoria con nombre "Laptops"`, err.Error())
}

func TestValidationError(t *testing.T) {
	assert.ErrorIs(t, domain.NewValidation("cantidad", "debe ser mayor que 0"), domain.ErrInvalidInput)
	assert.Equal(t, "cantidad: debe ser mayor que 0", domain.NewValidation("cantidad", "debe ser mayor que 0").Error())
	assert.Equal(t, "cuerpo inválido", domain.NewValidation("", "cuerpo inválido").Error())
}
