package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
)

// writeError traduce un error de dominio a la respuesta HTTP:
// NotFound → 404; Duplicate, InsufficientStock y Validation → 400; el resto → 500.
func writeError(c *fiber.Ctx, err error) error {
	var (
		nf  *domain.NotFoundError
		dup *domain.DuplicateKeyError
		ise *domain.InsufficientStockError
		ve  *domain.ValidationError
	)
	switch {
	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: nf.Error(),
			Details: map[string]any{"entidad": nf.Entity, "id": nf.ID},
		})
	case errors.As(err, &dup):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "DUPLICATE",
			Message: dup.Error(),
			Details: map[string]any{"entidad": dup.Entity, "clave": dup.Key, "valor": dup.Value},
		})
	case errors.As(err, &ise):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: ise.Error(),
			Details: map[string]any{"id_producto": ise.ProductID, "solicitado": ise.Requested, "disponible": ise.Available},
		})
	case errors.As(err, &ve):
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: ve.Error()}
		if ve.Field != "" {
			resp.Details = map[string]any{"campo": ve.Field}
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}

	zerolog.Ctx(c.UserContext()).Error().Err(err).
		Str("metodo", c.Method()).
		Str("ruta", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// ErrorHandler es el fiber.ErrorHandler de la aplicación: errores de fiber (ruta inexistente,
// método no permitido, cuerpo demasiado grande) conservan su status; el resto pasa por writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return writeError(c, err)
}
