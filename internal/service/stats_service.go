package service

import (
	"context"
	"math"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// CategoryStat counts tasks within one category label.
type CategoryStat struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Stats is the per-user productivity summary. All fields are derived from
// the live task set on every request; nothing here is stored.
type Stats struct {
	StreakCount    int                     `json:"streak_count"`
	CompletionRate float64                 `json:"completion_rate"`
	CategoryStats  map[string]CategoryStat `json:"category_stats"`
}

// StatsService computes productivity statistics from a user's task history.
type StatsService struct {
	repo *repository.TaskRepository
}

func NewStatsService(repo *repository.TaskRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Compute aggregates the user's tasks in creation order (oldest first).
// The streak is a structural count over that order: consecutive completed
// tasks scanning back from the newest, stopped at the first non-completed
// task. It is not date-aware.
func (s *StatsService) Compute(ctx context.Context, userID string) (*Stats, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}

	tasks, err := s.repo.ListByUserChrono(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "compute stats", Err: err}
	}

	stats := &Stats{CategoryStats: map[string]CategoryStat{}}
	if len(tasks) == 0 {
		return stats, nil
	}

	completed := 0
	for _, task := range tasks {
		cs := stats.CategoryStats[task.Category]
		cs.Total++
		if task.Status == model.StatusCompleted {
			cs.Completed++
			completed++
		}
		stats.CategoryStats[task.Category] = cs
	}

	rate := float64(completed) / float64(len(tasks)) * 100
	stats.CompletionRate = math.Round(rate*10) / 10

	for i := len(tasks) - 1; i >= 0; i-- {
		if tasks[i].Status != model.StatusCompleted {
			break
		}
		stats.StreakCount++
	}

	return stats, nil
}
