package auth

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"projecthub/internal/model"
)

// CallerID returns the verified caller identity placed in the context by the
// JWT middleware. It never touches the database; the token has already been
// checked for signature and expiry by the time a handler runs.
func CallerID(c echo.Context) (uuid.UUID, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	return id, nil
}

// UserDirectory resolves a verified identity to its current user record.
type UserDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// RequireRole gates a route on the caller's current role. It must be chained
// after the JWT middleware so an unverified request never reaches the lookup.
// A deleted account fails with 404, an insufficient role with 403.
func RequireRole(dir UserDirectory, required model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			callerID, err := CallerID(c)
			if err != nil {
				return err
			}
			user, err := dir.FindByID(c.Request().Context(), callerID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return echo.NewHTTPError(http.StatusNotFound, "account no longer exists")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "role lookup failed")
			}
			if !user.Role.Meets(required) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
