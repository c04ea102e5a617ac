package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Category    string     `json:"category"`
	UserID      string     `json:"user_id"`
}

type prepStepPayload struct {
	Title         string `json:"title"`
	OffsetMinutes int    `json:"offset_minutes"`
	Completed     bool   `json:"completed"`
}

// updateTaskRequest distinguishes absent fields (nil) from supplied ones;
// a supplied prep_steps list replaces the task's steps wholesale.
type updateTaskRequest struct {
	Status    *string            `json:"status"`
	PrepSteps *[]prepStepPayload `json:"prep_steps"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	task, err := s.tasks.Create(r.Context(), service.CreateTaskInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     req.DueDate,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	tasks, err := s.tasks.List(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.Task{"data": tasks})
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := service.UpdateTaskInput{Status: req.Status}
	if req.PrepSteps != nil {
		steps := make([]model.PrepStep, 0, len(*req.PrepSteps))
		for _, p := range *req.PrepSteps {
			steps = append(steps, model.PrepStep{
				Title:         p.Title,
				OffsetMinutes: p.OffsetMinutes,
				Completed:     p.Completed,
			})
		}
		in.PrepSteps = &steps
	}

	if err := s.tasks.Update(r.Context(), taskID, in); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}
	if err := s.tasks.Delete(r.Context(), taskID); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	stats, err := s.stats.Compute(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func parseTaskID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "taskID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return uint(id), true
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrStoreUnavailable) {
		writeError(w, http.StatusInternalServerError, "database not available")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
