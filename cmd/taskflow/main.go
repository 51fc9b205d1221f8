package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskflow/internal/auth"
	"taskflow/internal/config"
	"taskflow/internal/httpapi"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL)
	authSvc := service.NewAuthService(userRepo, tokens)
	categorySvc := service.NewCategoryService(categoryRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo)
	maintenanceSvc := service.NewMaintenanceService(db)

	server := httpapi.New(authSvc, taskSvc, categorySvc, tokens, userRepo)

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.MaintenanceInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.MaintenanceInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := maintenanceSvc.Run(jobCtx); err != nil {
				log.Printf("maintenance: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule maintenance: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	go func() {
		log.Printf("Taskflow API listening on %s", cfg.Addr)
		if err := server.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped with error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
