package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/pkg/jwt"
)

// Locals keys de la sesión en Fiber.
const (
	LocalUserID     = "user_id"
	LocalEmail      = "email"
	LocalRolID      = "rol_id"
	LocalContactoID = "contacto_id"
)

// SessionMiddleware valida el JWT de la cookie de sesión (o un Bearer token)
// y deja los datos del usuario en c.Locals.
func SessionMiddleware(secret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(cookieName)
		if tokenString == "" {
			authHeader := c.Get(fiber.HeaderAuthorization)
			if authHeader == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SESSION", Message: "sesión requerida"})
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			tokenString = strings.TrimSpace(parts[1])
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SESSION", Message: "token vacío"})
		}
		s, err := jwt.Parse(secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "sesión inválida o expirada"})
		}
		c.Locals(LocalUserID, s.UserID)
		c.Locals(LocalEmail, s.Email)
		c.Locals(LocalRolID, s.RolID)
		c.Locals(LocalContactoID, s.ContactoID)
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el id del usuario de la sesión.
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetRolID devuelve el rol de la sesión ("" si no tiene).
func GetRolID(c *fiber.Ctx) string { return localString(c, LocalRolID) }

// GetContactoID devuelve el contacto asociado al usuario de la sesión.
func GetContactoID(c *fiber.Ctx) string { return localString(c, LocalContactoID) }
