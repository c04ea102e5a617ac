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

	"task-tracker/internal/config"
	"task-tracker/internal/genai"
	"task-tracker/internal/prepgen"
	"task-tracker/internal/repository"
	"task-tracker/internal/server"
	"task-tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// Missing or broken collaborators degrade their feature instead of
	// preventing startup: without a store every data operation fails
	// per-request, without an AI key the generator uses fallback steps.
	var taskRepo *repository.TaskRepository
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, data operations disabled")
	} else {
		db, err := repository.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Printf("db unavailable: %v", err)
		} else {
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			taskRepo = repository.NewTaskRepository(db)
			log.Println("database connected")
		}
	}

	var completer prepgen.Completer
	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set, prep steps use fixed fallback")
	} else {
		completer = genai.New(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Printf("gemini model %s configured", cfg.GeminiModel)
	}

	taskSvc := service.NewTaskService(taskRepo, prepgen.New(completer))
	statsSvc := service.NewStatsService(taskRepo)

	if taskRepo != nil && cfg.ReminderInterval > 0 {
		reminderSvc := service.NewReminderService(taskRepo)
		scheduler := service.NewSchedulerService(time.UTC)
		if _, err := scheduler.ScheduleInterval(cfg.ReminderInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			summary, err := reminderSvc.UpcomingSteps(jobCtx, time.Now().UTC(), cfg.ReminderInterval)
			if err != nil {
				log.Printf("reminder sweep: %v", err)
				return
			}
			if summary != "" {
				log.Println(summary)
			}
		}); err != nil {
			log.Fatalf("schedule reminder sweep: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.New(taskSvc, statsSvc).Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("task tracker listening on %s", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
