package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskflow/internal/service"
)

func (s *Server) handleListCategories(c echo.Context) error {
	categories, err := s.categorySvc.ListCategories(c.Request().Context(), currentUser(c))
	if err != nil {
		return writeError(c, err)
	}

	resp := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, toCategoryResponse(&categories[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateCategory(c echo.Context) error {
	var dto CreateCategoryDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Category name is required"})
	}

	category, err := s.categorySvc.CreateCategory(c.Request().Context(), currentUser(c), service.CategoryInput{
		Name:  dto.Name,
		Color: dto.Color,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

func (s *Server) handleDeleteCategory(c echo.Context) error {
	categoryID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found"})
	}

	if err := s.categorySvc.DeleteCategory(c.Request().Context(), currentUser(c), categoryID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}
