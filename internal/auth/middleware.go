package auth

import (
	"strings"

	"github.com/drizz21/car-rent-new/internal/config"
	"github.com/drizz21/car-rent-new/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUserRoleKey = "user_role"
	CtxUserNameKey = "user_name"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Header Authorization tidak ada")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Format Authorization harus 'Bearer <token>'")
		}

		claims, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token tidak valid atau sudah kedaluwarsa")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserRoleKey, claims.Role)
		c.Locals(CtxUserNameKey, claims.Name)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Role pengguna tidak diketahui")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses untuk aksi ini")
	}
}

// Identity is the authenticated caller.
type Identity struct {
	UserID uint
	Name   string
	Role   models.UserRole
}

// CurrentUser reads the identity stored by JWTMiddleware.
func CurrentUser(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return Identity{}, false
	}
	name, _ := c.Locals(CtxUserNameKey).(string)
	role, _ := c.Locals(CtxUserRoleKey).(models.UserRole)
	return Identity{UserID: id, Name: name, Role: role}, true
}
