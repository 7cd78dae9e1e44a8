package entity

import "time"

// Supplier representa un proveedor. La pareja (Name, Phone) es clave de negocio única.
type Supplier struct {
	ID        int64
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
}
