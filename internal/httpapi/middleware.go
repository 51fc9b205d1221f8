package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"taskflow/internal/auth"
	"taskflow/internal/model"
)

// userContextKey is where the authenticated user is stored on the request.
const userContextKey = "user"

// requireAuth resolves the Authorization header to an account and stores it
// on the request context. Rejections are terminal: no header, an expired or
// invalid token, or a token for an account that no longer exists all end the
// request with 401.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token is missing"})
		}

		token := strings.TrimPrefix(header, "Bearer ")

		userID, err := s.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token has expired"})
			}
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
		}

		user, err := s.users.FindByID(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "User not found"})
			}
			return writeError(c, err)
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// currentUser returns the account resolved by requireAuth.
func currentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
