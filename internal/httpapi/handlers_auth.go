package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskflow/internal/service"
)

func (s *Server) handleRegister(c echo.Context) error {
	var dto RegisterDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing required fields"})
	}

	_, err := s.authSvc.Register(c.Request().Context(), service.RegisterInput{
		Username: dto.Username,
		Email:    dto.Email,
		Password: dto.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully"})
}

func (s *Server) handleLogin(c echo.Context) error {
	var dto LoginDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing credentials"})
	}

	token, user, err := s.authSvc.Login(c.Request().Context(), dto.Username, dto.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}
