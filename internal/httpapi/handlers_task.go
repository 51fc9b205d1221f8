package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskflow/internal/service"
)

func (s *Server) handleListTasks(c echo.Context) error {
	tasks, err := s.taskSvc.ListTasks(c.Request().Context(), currentUser(c))
	if err != nil {
		return writeError(c, err)
	}

	resp := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, toTaskResponse(&tasks[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var dto CreateTaskDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Title is required"})
	}

	task, err := s.taskSvc.CreateTask(c.Request().Context(), currentUser(c), service.TaskInput{
		Title:       dto.Title,
		Description: dto.Description,
		Priority:    dto.Priority,
		CategoryID:  dto.Category,
		DueDate:     dto.DueDate,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (s *Server) handleGetTask(c echo.Context) error {
	taskID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Task not found"})
	}

	task, err := s.taskSvc.GetTask(c.Request().Context(), currentUser(c), taskID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	taskID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Task not found"})
	}

	update, err := decodeTaskUpdate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	task, err := s.taskSvc.UpdateTask(c.Request().Context(), currentUser(c), taskID, update)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	taskID, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Task not found"})
	}

	if err := s.taskSvc.DeleteTask(c.Request().Context(), currentUser(c), taskID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Task deleted successfully"})
}

// decodeTaskUpdate reads a partial update, distinguishing keys that are
// absent from keys that are present with a null value. An explicit null
// clears due_date/category_id; an absent key leaves them unchanged.
func decodeTaskUpdate(c echo.Context) (service.TaskUpdate, error) {
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return service.TaskUpdate{}, err
	}

	var update service.TaskUpdate
	if raw, ok := payload["title"]; ok {
		if err := json.Unmarshal(raw, &update.Title); err != nil {
			return service.TaskUpdate{}, err
		}
	}
	if raw, ok := payload["description"]; ok {
		if err := json.Unmarshal(raw, &update.Description); err != nil {
			return service.TaskUpdate{}, err
		}
	}
	if raw, ok := payload["completed"]; ok {
		if err := json.Unmarshal(raw, &update.Completed); err != nil {
			return service.TaskUpdate{}, err
		}
	}
	if raw, ok := payload["priority"]; ok {
		if err := json.Unmarshal(raw, &update.Priority); err != nil {
			return service.TaskUpdate{}, err
		}
	}
	if raw, ok := payload["category_id"]; ok {
		update.CategorySet = true
		if err := json.Unmarshal(raw, &update.CategoryID); err != nil {
			return service.TaskUpdate{}, err
		}
	}
	if raw, ok := payload["due_date"]; ok {
		update.DueDateSet = true
		if err := json.Unmarshal(raw, &update.DueDate); err != nil {
			return service.TaskUpdate{}, err
		}
	}
	return update, nil
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
