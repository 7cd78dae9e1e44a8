package domain

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Límites de las columnas: VARCHAR(100) para nombres y NUMERIC(12,2) para montos.
const (
	MaxNameLength = 100
	MoneyScale    = 2
)

// maxMoney es el primer valor que no cabe en NUMERIC(12,2).
var maxMoney = decimal.New(1, 12-MoneyScale)

// ValidateName exige un nombre no vacío de a lo sumo MaxNameLength caracteres.
func ValidateName(field, name string) error {
	if name == "" {
		return NewValidation(field, "es requerido")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return NewValidation(field, "no puede superar 100 caracteres")
	}
	return nil
}

// ValidateMoney rechaza montos negativos, con más de dos decimales o fuera de rango.
func ValidateMoney(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return NewValidation(field, "no puede ser negativo")
	}
	if d.Exponent() < -MoneyScale {
		return NewValidation(field, "admite a lo sumo 2 decimales")
	}
	if d.GreaterThanOrEqual(maxMoney) {
		return NewValidation(field, "debe ser menor que 10000000000")
	}
	return nil
}
