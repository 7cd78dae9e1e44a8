package entity

import "time"

// Stock es la lectura del contador materializado de un producto, tomada dentro de una transacción.
type Stock struct {
	ProductID int64
	Quantity  int64
	UpdatedAt time.Time
}
