package service

import (
	"context"
	"errors"
	"regexp"

	"gorm.io/gorm"

	"taskflow/internal/apperr"
	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// hexColor matches "#" followed by six hex digits.
var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CategoryInput represents data required to create a category.
type CategoryInput struct {
	Name  string
	Color string
}

// CategoryService wraps category-related business logic.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, user *model.User, input CategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, apperr.New(apperr.CodeValidation, "Category name is required")
	}

	color := input.Color
	if color == "" {
		color = model.DefaultCategoryColor
	}
	if !hexColor.MatchString(color) {
		return nil, apperr.New(apperr.CodeValidation, "Color must be a #RRGGBB value")
	}

	category := model.Category{
		UserID: user.ID,
		Name:   input.Name,
		Color:  color,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, user *model.User) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, user.ID)
}

// DeleteCategory removes a category after clearing it from every task that
// references it. Tasks survive; only the reference is dropped.
func (s *CategoryService) DeleteCategory(ctx context.Context, user *model.User, categoryID uint) error {
	if _, err := s.repo.FindByID(ctx, user.ID, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.CodeNotFound, "Category not found")
		}
		return err
	}
	return s.repo.DeleteWithTaskNulling(ctx, user.ID, categoryID)
}
