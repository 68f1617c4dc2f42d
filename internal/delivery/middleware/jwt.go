package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type JWTConfig struct {
	Secret string
}

func RequireStaffJWT(cfg JWTConfig) fiber.Handler {
	secret := []byte(cfg.Secret)

	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token signing method")
			}
			return secret, nil
		})

		if err != nil || token == nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token claims")
		}

		if typ, _ := claims["typ"].(string); typ != "" && typ != "staff" {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token type")
		}

		c.Locals("claims", claims)

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Locals("staff_id", sub)
		}
		if role, _ := claims["role"].(string); role != "" {
			c.Locals("staff_role", role)
		}
		if email, _ := claims["email"].(string); email != "" {
			c.Locals("staff_email", email)
		}

		return c.Next()
	}
}

// StaffID reads the authenticated staff id set by RequireStaffJWT.
func StaffID(c *fiber.Ctx) string {
	id, _ := c.Locals("staff_id").(string)
	return id
}
