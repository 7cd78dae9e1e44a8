package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
)

// LocalRequestID key de c.Locals donde requestid deja el id de la petición.
const LocalRequestID = "requestid"

// RequestID asigna X-Request-ID (o respeta el recibido) y lo guarda en c.Locals.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: LocalRequestID,
	})
}

// GetRequestID devuelve el id de la petición (después del middleware RequestID).
func GetRequestID(c *fiber.Ctx) string {
	v := c.Locals(LocalRequestID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// AccessLog registra método, ruta, status, latencia y request id de cada petición.
// Además deja un sublogger con el request id en el contexto de usuario, de donde lo toman
// los handlers (zerolog.Ctx) al reportar fallos de almacenamiento.
func AccessLog(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.With().Str("request_id", GetRequestID(c)).Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler escriba la respuesta para conocer el status final
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = reqLog.Warn()
		}
		ev.Str("metodo", c.Method()).
			Str("ruta", c.OriginalURL()).
			Int("status", status).
			Dur("latencia", time.Since(start)).
			Msg("petición HTTP")
		return nil
	}
}
