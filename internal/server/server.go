// Package server exposes the HTTP surface: task CRUD, per-user stats and a
// liveness probe.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"task-tracker/internal/service"
)

// Server holds the request-handling dependencies. Both services are built
// once at process start and are immutable afterwards.
type Server struct {
	tasks *service.TaskService
	stats *service.StatsService
}

func New(tasks *service.TaskService, stats *service.StatsService) *Server {
	return &Server{tasks: tasks, stats: stats}
}

// Router wires the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)
	r.Post("/tasks", s.handleCreateTask)
	r.Get("/tasks/{userID}", s.handleListTasks)
	r.Put("/tasks/{taskID}", s.handleUpdateTask)
	r.Delete("/tasks/{taskID}", s.handleDeleteTask)
	r.Get("/stats/{userID}", s.handleStats)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
