package domain_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-inventario-api/internal/domain"
)

func TestValidateMoney(t *testing.T) {
	validos := []string{"0", "1.5", "1.05", "9999999999.99", "1e3"}
	for _, v := range validos {
		assert.NoError(t, domain.ValidateMoney("precio", decimal.RequireFromString(v)), v)
	}

	invalidos := []string{"-0.01", "1.005", "0.001", "1.050", "10000000000", "1e12"}
	for _, v := range invalidos {
		err := domain.ValidateMoney("precio", decimal.RequireFromString(v))
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve, v)
		assert.Equal(t, "precio", ve.Field)
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, domain.ValidateName("nombre", strings.Repeat("ñ", 100)))
	assert.ErrorIs(t, domain.ValidateName("nombre", ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, domain.ValidateName("nombre", strings.Repeat("a", 101)), domain.ErrInvalidInput)
}
