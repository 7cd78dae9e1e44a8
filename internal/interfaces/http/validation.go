package http

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-inventario-api/internal/domain"
)

var validate = newValidator()

// newValidator usa el nombre json del campo en los errores.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON del cuerpo y valida las etiquetas `validate`.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidation("", "cuerpo inválido: "+err.Error())
	}
	return validateStruct(out)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidation("", err.Error())
	}
	fe := verrs[0]
	return domain.NewValidation(fe.Field(), validationMessage(fe))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un correo válido"
	case "max":
		return "máximo " + fe.Param() + " caracteres"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	}
	return "no cumple la regla " + fe.Tag()
}

// ── Query y path ──────────────────────────────────────────────────────────────

// pathID lee el parámetro :id como entero positivo.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidation("id", "debe ser un entero positivo")
	}
	return id, nil
}

// queryInt64 lee un entero opcional de la query. Ausente = nil.
func queryInt64(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.NewValidation(name, "debe ser un entero")
	}
	return &n, nil
}

// queryDecimal lee un importe opcional de la query. Ausente = nil.
func queryDecimal(c *fiber.Ctx, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.NewValidation(name, "debe ser un número")
	}
	return &d, nil
}
