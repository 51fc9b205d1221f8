// Package httpapi exposes the task-management API over HTTP.
package httpapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskflow/internal/auth"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

// Server wires services into an echo HTTP server.
type Server struct {
	echo        *echo.Echo
	authSvc     *service.AuthService
	taskSvc     *service.TaskService
	categorySvc *service.CategoryService
	tokens      *auth.TokenService
	users       *repository.UserRepository
}

func New(
	authSvc *service.AuthService,
	taskSvc *service.TaskService,
	categorySvc *service.CategoryService,
	tokens *auth.TokenService,
	users *repository.UserRepository,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))

	s := &Server{
		echo:        e,
		authSvc:     authSvc,
		taskSvc:     taskSvc,
		categorySvc: categorySvc,
		tokens:      tokens,
		users:       users,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.GET("/health", s.handleHealth)
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	authed := api.Group("", s.requireAuth)
	authed.GET("/tasks", s.handleListTasks)
	authed.POST("/tasks", s.handleCreateTask)
	authed.GET("/tasks/:id", s.handleGetTask)
	authed.PUT("/tasks/:id", s.handleUpdateTask)
	authed.DELETE("/tasks/:id", s.handleDeleteTask)
	authed.GET("/categories", s.handleListCategories)
	authed.POST("/categories", s.handleCreateCategory)
	authed.DELETE("/categories/:id", s.handleDeleteCategory)
}

// Handler returns the root http.Handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves HTTP on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
}
