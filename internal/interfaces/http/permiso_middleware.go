package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

// permisoChecker lo implementa *roles.PermisoService; la interfaz evita el import circular.
type permisoChecker interface {
	Allows(ctx context.Context, rolID, modulo, accion string) (bool, error)
}

// RequirePermiso verifica que el rol de la sesión tenga la acción en el módulo.
// Debe usarse DESPUÉS de SessionMiddleware.
//
//   - 401 sin sesión.
//   - 403 sin permiso.
//   - 503 si no se pudo consultar la matriz.
func RequirePermiso(modulo, accion string, checker permisoChecker, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		ok, err := checker.Allows(c.UserContext(), GetRolID(c), modulo, accion)
		if err != nil {
			log.Error().Err(err).Str("modulo", modulo).Str("accion", accion).Msg("consulta de permisos")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "No tienes permiso para " + accion + " en el módulo " + modulo,
			})
		}
		return c.Next()
	}
}
