package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskflow/internal/apperr"
	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// TaskInput represents data required to create a task. DueDate is the raw
// request string; it is parsed and validated here.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	CategoryID  *uint
	DueDate     *string
}

// TaskUpdate describes a partial update. A nil field means "leave unchanged".
// CategoryID and DueDate can also be explicitly cleared, so they carry a
// separate Set flag: Set with a nil value clears the field.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	CategoryID  *uint
	CategorySet bool
	DueDate     *string
	DueDateSet  bool
}

// TaskService wraps task-related business logic. Every operation is scoped
// to the requesting user; tasks of other users surface as not found.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

func (s *TaskService) CreateTask(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, apperr.New(apperr.CodeValidation, "Title is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, apperr.New(apperr.CodeValidation, "Priority must be low, medium or high")
	}

	task := model.Task{
		UserID:      user.ID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
	}

	if input.CategoryID != nil {
		category, err := s.ownedCategory(ctx, user.ID, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		task.CategoryID = &category.ID
		task.Category = category
	}

	if input.DueDate != nil && *input.DueDate != "" {
		due, err := parseDueDate(*input.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = &due
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, user *model.User) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, user.ID)
}

func (s *TaskService) GetTask(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, mapTaskErr(err)
	}
	return task, nil
}

// UpdateTask applies a partial update. Only fields present in the request
// change; updated_at is refreshed on every successful update.
func (s *TaskService) UpdateTask(ctx context.Context, user *model.User, taskID uint, update TaskUpdate) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, mapTaskErr(err)
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	if update.Priority != nil {
		if !model.ValidPriority(*update.Priority) {
			return nil, apperr.New(apperr.CodeValidation, "Priority must be low, medium or high")
		}
		task.Priority = *update.Priority
	}
	if update.CategorySet {
		if update.CategoryID == nil {
			task.CategoryID = nil
			task.Category = nil
		} else {
			category, err := s.ownedCategory(ctx, user.ID, *update.CategoryID)
			if err != nil {
				return nil, err
			}
			task.CategoryID = &category.ID
			task.Category = category
		}
	}
	if update.DueDateSet {
		if update.DueDate == nil || *update.DueDate == "" {
			task.DueDate = nil
		} else {
			due, err := parseDueDate(*update.DueDate)
			if err != nil {
				return nil, err
			}
			task.DueDate = &due
		}
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task. Deleting an id that is already gone, or that
// belongs to someone else, reports not found.
func (s *TaskService) DeleteTask(ctx context.Context, user *model.User, taskID uint) error {
	if _, err := s.taskRepo.FindByID(ctx, user.ID, taskID); err != nil {
		return mapTaskErr(err)
	}
	return s.taskRepo.Delete(ctx, user.ID, taskID)
}

// ownedCategory resolves a category reference within the caller's own
// records. A category owned by another user is indistinguishable from a
// nonexistent one.
func (s *TaskService) ownedCategory(ctx context.Context, userID, categoryID uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "Category not found")
		}
		return nil, err
	}
	return category, nil
}

func mapTaskErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.CodeNotFound, "Task not found")
	}
	return err
}

// parseDueDate accepts RFC 3339 timestamps, with or without an explicit
// zone offset.
func parseDueDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.New(apperr.CodeValidation, "Invalid due_date format")
}
