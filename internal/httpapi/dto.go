package httpapi

import (
	"time"

	"taskflow/internal/model"
)

// RegisterDTO for creating a new account.
type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginDTO for user authentication.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTaskDTO for creating a new task. The category key carries a category
// id, matching the API this service exposes to its frontend.
type CreateTaskDTO struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Category    *uint   `json:"category"`
	DueDate     *string `json:"due_date"`
}

// CreateCategoryDTO for creating a new category.
type CreateCategoryDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type categoryResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type taskResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Completed   bool              `json:"completed"`
	Priority    string            `json:"priority"`
	DueDate     *time.Time        `json:"due_date"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	CategoryID  *uint             `json:"category_id"`
	Category    *categoryResponse `json:"category"`
}

func toUserResponse(user *model.User) userResponse {
	return userResponse{ID: user.ID, Username: user.Username, Email: user.Email}
}

func toCategoryResponse(category *model.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		CreatedAt: category.CreatedAt,
	}
}

func toTaskResponse(task *model.Task) taskResponse {
	resp := taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		CategoryID:  task.CategoryID,
	}
	if task.Category != nil {
		category := toCategoryResponse(task.Category)
		resp.Category = &category
	}
	return resp
}
