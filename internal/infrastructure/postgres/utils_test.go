package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-inventario-api/internal/domain"
)

func TestDuplicateFromConstraint(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_proveedores_nombre_telefono"})
	require.True(t, isUniqueViolation(err))

	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, duplicateFromConstraint(err, "Acme/555"), &dup)
	assert.Equal(t, domain.EntitySupplier, dup.Entity)
	assert.Equal(t, "Acme/555", dup.Value)

	unknown := &pgconn.PgError{Code: "23505", ConstraintName: "otro"}
	assert.ErrorIs(t, duplicateFromConstraint(unknown, "x"), domain.ErrDuplicate)
}

func TestNotFoundFromConstraint(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "fk_salidas_cliente"}
	require.True(t, isForeignKeyViolation(err))
	require.False(t, isUniqueViolation(err))

	var nf *domain.NotFoundError
	require.ErrorAs(t, notFoundFromConstraint(err, map[string]int64{domain.EntityCustomer: 12}), &nf)
	assert.Equal(t, domain.EntityCustomer, nf.Entity)
	assert.Equal(t, int64(12), nf.ID)

	assert.False(t, isForeignKeyViolation(errors.New("boom")))
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", migrateURL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", migrateURL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://ya", migrateURL("pgx5://ya"))
}
