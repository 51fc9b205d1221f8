package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

var testDBSeq atomic.Int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svctest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := repository.NewDB(dsn)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := model.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func newTaskService(t *testing.T, db *gorm.DB) *TaskService {
	t.Helper()
	return NewTaskService(repository.NewTaskRepository(db), repository.NewCategoryRepository(db))
}

func ptr[T any](v T) *T {
	return &v
}
