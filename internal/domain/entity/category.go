package entity

import "time"

// Category representa una categoría de productos. El nombre es clave de negocio única.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
