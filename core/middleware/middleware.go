package middleware

import (
	"strings"

	"counsel-api/core/constants"
	"counsel-api/core/controller"
	"counsel-api/core/errors"
	"counsel-api/core/utils"

	"github.com/labstack/echo/v4"
)

const (
	ContextCounselorID = "counselor_id"
	ContextEmail       = "email"
	ContextName        = "name"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// AuthMiddleware guards the counselor admin surface with a bearer JWT.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "authorization header required")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "authorization header must be a bearer token")
			}

			claims, err := utils.ParseToken(parts[1])
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrTokenExpired, "invalid or expired token")
			}
			if claims.Scope != constants.ScopeTokenAccess {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "token scope not allowed")
			}

			c.Set(ContextCounselorID, claims.CounselorID)
			c.Set(ContextEmail, claims.Email)
			c.Set(ContextName, claims.Name)
			return next(c)
		}
	}
}
