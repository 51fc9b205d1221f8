package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"taskflow/internal/auth"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

const testSecret = "test-secret"

var testDBSeq atomic.Int64

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := repository.NewDB(dsn)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewTokenService(testSecret, 7*24*time.Hour)
	authSvc := service.NewAuthService(userRepo, tokens)
	categorySvc := service.NewCategoryService(categoryRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo)

	return New(authSvc, taskSvc, categorySvc, tokens, userRepo)
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func registerAndLogin(t *testing.T, s *Server, username string) string {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "pw123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s = %d: %s", username, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "pw123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s = %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	if resp.Token == "" {
		t.Fatalf("login returned no token")
	}
	return resp.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}
	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["status"] != "healthy" {
		t.Fatalf("status = %q, want healthy", resp["status"])
	}
}

func TestRegisterLoginCreateTaskScenario(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodPost, "/api/tasks", token, map[string]string{"title": "Buy milk"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task = %d: %s", rec.Code, rec.Body.String())
	}
	var task taskResponse
	decodeBody(t, rec, &task)
	if task.Completed {
		t.Fatalf("expected completed=false")
	}
	if task.Priority != "medium" {
		t.Fatalf("priority = %q, want medium", task.Priority)
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/categories/9999", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing category = %d, want 404", rec.Code)
	}
}

func TestRegisterValidationAndConflicts(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "alice"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("register missing fields = %d, want 400", rec.Code)
	}

	registerAndLogin(t, s, "alice")

	rec = doJSON(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "fresh@example.com", "password": "pw",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate username = %d, want 400", rec.Code)
	}
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("login missing fields = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("login wrong password = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name    string
		token   string
		message string
	}{
		{"missing", "", "Token is missing"},
		{"garbage", "not-a-token", "Invalid token"},
	}
	for _, tc := range cases {
		rec := doJSON(t, s, http.MethodGet, "/api/tasks", tc.token, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s token = %d, want 401", tc.name, rec.Code)
		}
		var resp map[string]string
		decodeBody(t, rec, &resp)
		if resp["message"] != tc.message {
			t.Fatalf("%s token message = %q, want %q", tc.name, resp["message"], tc.message)
		}
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	s := newTestServer(t)
	registerAndLogin(t, s, "alice")

	// Same secret, already past its expiration.
	expired, err := auth.NewTokenService(testSecret, -time.Minute).Issue(1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	rec := doJSON(t, s, http.MethodGet, "/api/tasks", expired, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token = %d, want 401", rec.Code)
	}
	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["message"] != "Token has expired" {
		t.Fatalf("message = %q, want %q", resp["message"], "Token has expired")
	}
}

func TestAuthMiddlewareDeletedAccount(t *testing.T) {
	s := newTestServer(t)

	// Valid signature for an account that does not exist.
	orphan, err := auth.NewTokenService(testSecret, time.Hour).Issue(9999)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	rec := doJSON(t, s, http.MethodGet, "/api/tasks", orphan, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("orphan token = %d, want 401", rec.Code)
	}
	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["message"] != "User not found" {
		t.Fatalf("message = %q, want %q", resp["message"], "User not found")
	}
}

func TestOwnershipIsolationOverHTTP(t *testing.T) {
	s := newTestServer(t)
	aliceToken := registerAndLogin(t, s, "alice")
	bobToken := registerAndLogin(t, s, "bob")

	rec := doJSON(t, s, http.MethodPost, "/api/tasks", aliceToken, map[string]string{"title": "private"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task = %d", rec.Code)
	}
	var task taskResponse
	decodeBody(t, rec, &task)
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		var body any
		if method == http.MethodPut {
			body = map[string]bool{"completed": true}
		}
		rec := doJSON(t, s, method, path, bobToken, body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s %s as bob = %d, want 404", method, path, rec.Code)
		}
	}

	rec = doJSON(t, s, http.MethodGet, "/api/tasks", bobToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list as bob = %d", rec.Code)
	}
	var list []taskResponse
	decodeBody(t, rec, &list)
	if len(list) != 0 {
		t.Fatalf("bob sees %d foreign tasks", len(list))
	}

	rec = doJSON(t, s, http.MethodGet, path, aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get as alice = %d", rec.Code)
	}
}

func TestTaskPartialUpdateOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":    "deadline task",
		"due_date": "2026-09-01T10:00:00Z",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task = %d: %s", rec.Code, rec.Body.String())
	}
	var task taskResponse
	decodeBody(t, rec, &task)
	if task.DueDate == nil {
		t.Fatalf("expected due date set")
	}
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	// Absent due_date key leaves the date unchanged.
	rec = doJSON(t, s, http.MethodPut, path, token, map[string]any{"completed": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}
	var updated taskResponse
	decodeBody(t, rec, &updated)
	if !updated.Completed {
		t.Fatalf("expected completed=true")
	}
	if updated.DueDate == nil {
		t.Fatalf("absent due_date key cleared the date")
	}
	if updated.Title != "deadline task" {
		t.Fatalf("title changed to %q", updated.Title)
	}

	// Explicit null clears it.
	rec = doJSON(t, s, http.MethodPut, path, token, map[string]any{"due_date": nil})
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &updated)
	if updated.DueDate != nil {
		t.Fatalf("explicit null due_date not cleared")
	}

	// Bad due_date is a 400, not a silent default.
	rec = doJSON(t, s, http.MethodPut, path, token, map[string]any{"due_date": "not-a-date"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad due_date = %d, want 400", rec.Code)
	}
}

func TestCategoryFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodPost, "/api/categories", token, map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create category without name = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/categories", token, map[string]string{"name": "work"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category = %d: %s", rec.Code, rec.Body.String())
	}
	var category categoryResponse
	decodeBody(t, rec, &category)
	if category.Color != "#3B82F6" {
		t.Fatalf("default color = %q, want #3B82F6", category.Color)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":    "categorized",
		"category": category.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task = %d: %s", rec.Code, rec.Body.String())
	}
	var task taskResponse
	decodeBody(t, rec, &task)
	if task.CategoryID == nil || *task.CategoryID != category.ID {
		t.Fatalf("task not linked to category: %+v", task)
	}
	if task.Category == nil || task.Category.Name != "work" {
		t.Fatalf("task response missing embedded category: %+v", task.Category)
	}

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/categories/%d", category.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete category = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get task after category delete = %d", rec.Code)
	}
	var survived taskResponse
	decodeBody(t, rec, &survived)
	if survived.CategoryID != nil || survived.Category != nil {
		t.Fatalf("task still references deleted category: %+v", survived)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/categories", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list categories = %d", rec.Code)
	}
	var categories []categoryResponse
	decodeBody(t, rec, &categories)
	if len(categories) != 0 {
		t.Fatalf("expected no categories left, got %d", len(categories))
	}
}
