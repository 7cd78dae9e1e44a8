package entity

import "time"

// Customer representa un cliente. Email es clave de negocio única.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}
