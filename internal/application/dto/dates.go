package dto

import (
	"time"

	"github.com/jhoicas/tienda-inventario-api/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseDate interpreta un parámetro de fecha (YYYY-MM-DD o RFC 3339). Vacío = nil.
// Con endOfDay, una fecha sin hora se extiende hasta el último instante de ese día.
func ParseDate(field, value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, domain.NewValidation(field, "fecha inválida, use YYYY-MM-DD o RFC 3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
