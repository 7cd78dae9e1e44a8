package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/tienda-inventario-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeForeignKeyViolation
	}
	return false
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// duplicateFromConstraint traduce el constraint UNIQUE violado al error de dominio.
func duplicateFromConstraint(err error, value string) error {
	switch constraintName(err) {
	case "uq_categorias_nombre":
		return &domain.DuplicateKeyError{Entity: domain.EntityCategory, Key: "nombre", Value: value}
	case "uq_proveedores_nombre_telefono":
		return &domain.DuplicateKeyError{Entity: domain.EntitySupplier, Key: "nombre+telefono", Value: value}
	case "uq_clientes_correo":
		return &domain.DuplicateKeyError{Entity: domain.EntityCustomer, Key: "correo", Value: value}
	case "uq_productos_nombre":
		return &domain.DuplicateKeyError{Entity: domain.EntityProduct, Key: "nombre", Value: value}
	}
	return domain.ErrDuplicate
}

// notFoundFromConstraint traduce la llave foránea violada al NotFound de la entidad referenciada.
// ids mapea entidad -> id usado en el insert.
func notFoundFromConstraint(err error, ids map[string]int64) error {
	var entity string
	switch constraintName(err) {
	case "fk_productos_categoria":
		entity = domain.EntityCategory
	case "fk_entradas_producto", "fk_salidas_producto":
		entity = domain.EntityProduct
	case "fk_entradas_proveedor":
		entity = domain.EntitySupplier
	case "fk_salidas_cliente":
		entity = domain.EntityCustomer
	default:
		return domain.ErrNotFound
	}
	return domain.NewNotFound(entity, ids[entity])
}
