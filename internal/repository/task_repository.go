package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task-tracker/internal/model"
)

// TaskRepository handles CRUD for tasks and their prep steps.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task together with its prep steps in one transaction
// and fills in the store-assigned id and timestamps.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	if task.ID == 0 {
		return fmt.Errorf("create task: no id returned")
	}
	return nil
}

// ListByUser returns the user's tasks newest-first with prep steps
// preloaded in insertion order. No tasks is an empty slice, not an error.
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.db.WithContext(ctx).
		Preload("PrepSteps", func(db *gorm.DB) *gorm.DB {
			return db.Order("prep_steps.id ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	for i := range tasks {
		if tasks[i].PrepSteps == nil {
			tasks[i].PrepSteps = []model.PrepStep{}
		}
	}
	return tasks, nil
}

// ListByUserChrono returns the user's tasks oldest-first. The streak
// computation depends on this ordering, so it is an explicit contract
// rather than whatever the store happens to return.
func (r *TaskRepository) ListByUserChrono(ctx context.Context, userID string) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListPending returns pending tasks across all users with prep steps
// preloaded, for the reminder sweep.
func (r *TaskRepository) ListPending(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.db.WithContext(ctx).
		Preload("PrepSteps", func(db *gorm.DB) *gorm.DB {
			return db.Order("prep_steps.id ASC")
		}).
		Where("status = ?", model.StatusPending).
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list pending tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus overwrites the task's status field only.
func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID uint, status string) error {
	if err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return nil
}

// ReplaceSteps swaps the task's prep steps for the given list: existing
// steps are deleted and the new ones inserted in one transaction. An empty
// list leaves the task with no steps.
func (r *TaskRepository) ReplaceSteps(ctx context.Context, taskID uint, steps []model.PrepStep) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.PrepStep{}).Error; err != nil {
			return fmt.Errorf("delete prep steps: %w", err)
		}
		if len(steps) == 0 {
			return nil
		}
		for i := range steps {
			steps[i].ID = 0
			steps[i].TaskID = taskID
		}
		if err := tx.Create(&steps).Error; err != nil {
			return fmt.Errorf("insert prep steps: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace prep steps: %w", err)
	}
	return nil
}

// Delete removes the task and all of its prep steps. Deleting an unknown
// id is not an error.
func (r *TaskRepository) Delete(ctx context.Context, taskID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.PrepStep{}).Error; err != nil {
			return fmt.Errorf("delete prep steps: %w", err)
		}
		if err := tx.Where("id = ?", taskID).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete task %d: %w", taskID, err)
	}
	return nil
}
