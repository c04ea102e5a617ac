package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// StepGenerator produces the prep steps attached to a new task. It never
// fails; unavailable or broken AI backends degrade to fixed fallback steps
// inside the generator.
type StepGenerator interface {
	Generate(ctx context.Context, title string, due time.Time, category string) []model.PrepStep
}

// CreateTaskInput carries the caller-supplied fields for task creation.
type CreateTaskInput struct {
	UserID      string
	Title       string
	Description string
	Category    string
	DueDate     *time.Time
}

// UpdateTaskInput carries the optional fields of a task update. Nil means
// "leave untouched"; a non-nil PrepSteps pointer replaces the task's steps
// wholesale, even when the new list is empty.
type UpdateTaskInput struct {
	Status    *string
	PrepSteps *[]model.PrepStep
}

// TaskService wraps task-related business logic. A nil repository means the
// store was never configured; every operation then fails with
// ErrStoreUnavailable.
type TaskService struct {
	repo *repository.TaskRepository
	gen  StepGenerator
	now  func() time.Time
}

func NewTaskService(repo *repository.TaskRepository, gen StepGenerator) *TaskService {
	return &TaskService{repo: repo, gen: gen, now: time.Now}
}

// DefaultDueDate resolves the due date for tasks created without one:
// 09:00 UTC on the calendar day after now. AddDate handles month and year
// rollover.
func DefaultDueDate(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

// Create resolves defaults, generates prep steps and persists the task with
// its steps. The returned task carries the store-assigned id and timestamps.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if strings.TrimSpace(in.UserID) == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	category := in.Category
	if category == "" {
		category = model.DefaultCategory
	}

	var due time.Time
	if in.DueDate != nil {
		due = in.DueDate.UTC()
	} else {
		due = DefaultDueDate(s.now())
	}

	task := &model.Task{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     due,
		Category:    category,
		Status:      model.StatusPending,
		PrepSteps:   s.gen.Generate(ctx, in.Title, due, category),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, &PersistenceError{Op: "create task", Err: err}
	}
	return task, nil
}

// List returns the user's tasks newest-first with their prep steps. A user
// with no tasks gets an empty slice.
func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "list tasks", Err: err}
	}
	return tasks, nil
}

// Update applies the supplied fields independently: status overwrite, prep
// step replacement, either, both, or neither (a no-op success).
func (s *TaskService) Update(ctx context.Context, taskID uint, in UpdateTaskInput) error {
	if s.repo == nil {
		return ErrStoreUnavailable
	}
	if in.Status != nil {
		if err := s.repo.UpdateStatus(ctx, taskID, *in.Status); err != nil {
			return &PersistenceError{Op: "update task", Err: err}
		}
	}
	if in.PrepSteps != nil {
		if err := s.repo.ReplaceSteps(ctx, taskID, *in.PrepSteps); err != nil {
			return &PersistenceError{Op: "update task", Err: err}
		}
	}
	return nil
}

// Delete removes the task and its prep steps. Deleting an id that does not
// exist is treated as success.
func (s *TaskService) Delete(ctx context.Context, taskID uint) error {
	if s.repo == nil {
		return ErrStoreUnavailable
	}
	if err := s.repo.Delete(ctx, taskID); err != nil {
		return &PersistenceError{Op: "delete task", Err: err}
	}
	return nil
}
