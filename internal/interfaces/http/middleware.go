package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

// HeaderUserID identifica al operario que origina la petición.
const HeaderUserID = "X-User-ID"

// LocalUserID key de c.Locals con el usuario de la petición.
const LocalUserID = "user_id"

// Identity copia el encabezado X-User-ID a c.Locals. No autentica: el valor solo se registra
// en movimientos, documentos y auditoría.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := strings.TrimSpace(c.Get(HeaderUserID)); id != "" {
			c.Locals(LocalUserID, id)
		}
		return c.Next()
	}
}

// GetUserID devuelve el usuario puesto por Identity, o "".
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// userOr prefiere el user_id explícito del cuerpo sobre el del encabezado.
func userOr(c *fiber.Ctx, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return GetUserID(c)
}

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("petición")
		return err
	}
}
