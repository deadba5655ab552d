package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"jewelryhub/domain"
	"jewelryhub/pkg/logger"
	jsonres "jewelryhub/pkg/response"
	"jewelryhub/pkg/utils"
)

// IdentityService resolves an authenticated user id to a user record, so
// the middleware can reject tokens for deactivated accounts.
type IdentityService interface {
	GetUserByID(ctx context.Context, id uint) (domain.User, error)
}

// AuthMiddleware validates a bearer JWT and loads the caller into the
// request context: user_id (uint) and role (domain.Role).
func AuthMiddleware(identity IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid authorization format", nil,
				))
			}

			claims, err := utils.ParseJWT(tokenParts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || time.Now().After(expAt.Time) {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Token expired", nil,
				))
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid user ID in token", nil,
				))
			}

			role := domain.Role(claims.Role)
			if !role.Valid() {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid role in token", nil,
				))
			}

			if identity != nil {
				ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
				user, err := identity.GetUserByID(ctx, uint(userIDUint))
				cancel()
				if err != nil {
					return c.JSON(http.StatusUnauthorized, jsonres.Error(
						"UNAUTHORIZED", "Unknown account", nil,
					))
				}
				if !user.IsActive {
					return c.JSON(http.StatusUnauthorized, jsonres.Error(
						"UNAUTHORIZED", "Account is deactivated", nil,
					))
				}
			}

			c.Set("user_id", uint(userIDUint))
			c.Set("role", role)

			return next(c)
		}
	}
}

// RequireRole allows only the listed roles past. It expects AuthMiddleware
// to have run first.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(domain.Role)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "User not authenticated", nil,
				))
			}

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, jsonres.Error(
				"FORBIDDEN", "Access denied", nil,
			))
		}
	}
}
