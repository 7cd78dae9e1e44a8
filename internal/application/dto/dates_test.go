package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
)

func TestParseDate(t *testing.T) {
	got, err := dto.ParseDate("fecha_inicio", "", false)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = dto.ParseDate("fecha_inicio", "2024-05-10", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local), *got)

	got, err = dto.ParseDate("fecha_fin", "2024-05-10", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 10, 23, 59, 59, 999999999, time.Local), *got)

	got, err = dto.ParseDate("fecha_fin", "2024-05-10T08:00:00Z", true)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)))

	_, err = dto.ParseDate("fecha_fin", "mañana", false)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "fecha_fin", ve.Field)
}
