package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/pkg/jwt"
)

// LocalTenant key del contexto de tenant resuelto en Fiber Locals.
const LocalTenant = "tenant_context"

// AuthMiddleware valida el Bearer Token JWT y resuelve el contexto de
// tenant contra la base en cada petición, así una cuenta desactivada
// pierde acceso de inmediato aunque su token siga vigente.
func AuthMiddleware(jwtSecret string, resolver *tenant.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		tc, err := resolver.Resolve(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "cuenta inexistente o inactiva"})
		}
		c.Locals(LocalTenant, tc)
		return c.Next()
	}
}

// GetTenant devuelve el contexto de tenant (después del middleware de auth).
func GetTenant(c *fiber.Ctx) *tenant.Context {
	v := c.Locals(LocalTenant)
	if v == nil {
		return nil
	}
	tc, _ := v.(*tenant.Context)
	return tc
}
