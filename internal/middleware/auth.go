package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/shaik1234567/TaskFlow-AI/internal/auth"
	"github.com/shaik1234567/TaskFlow-AI/pkg/logger"
)

// UseToken validates the bearer credential and stores the identity in
// Locals. Missing or expired tokens get 401, a bad signature gets 403;
// the owner id downstream handlers use comes from here, never from the
// request body.
func UseToken(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No token provided"})
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token format"})
		}

		claims := &auth.Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil {
			var validationErr *jwt.ValidationError
			if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Token expired"})
			}
			logger.SecurityLogger.Warn("Rejected bearer token", zap.Error(err))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Invalid token"})
		}
		if !token.Valid || claims.UserID == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Invalid token"})
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}
