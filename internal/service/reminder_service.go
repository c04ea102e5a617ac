package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// ReminderService builds human-readable summaries of prep steps coming due.
// Steps are scheduled at their task's due date plus their (negative) offset;
// the sweep surfaces incomplete steps whose scheduled time falls inside the
// next interval window. Delivery is the log — pushing to users is an
// upstream concern, like auth.
type ReminderService struct {
	repo *repository.TaskRepository
}

func NewReminderService(repo *repository.TaskRepository) *ReminderService {
	return &ReminderService{repo: repo}
}

type upcomingStep struct {
	task model.Task
	step model.PrepStep
	at   time.Time
}

// UpcomingSteps returns a summary of prep steps scheduled in [now, now+window)
// on pending tasks, or an empty string when nothing is due.
func (s *ReminderService) UpcomingSteps(ctx context.Context, now time.Time, window time.Duration) (string, error) {
	if s.repo == nil {
		return "", ErrStoreUnavailable
	}

	tasks, err := s.repo.ListPending(ctx)
	if err != nil {
		return "", &PersistenceError{Op: "reminder sweep", Err: err}
	}

	end := now.Add(window)
	var due []upcomingStep
	for _, task := range tasks {
		for _, step := range task.PrepSteps {
			if step.Completed {
				continue
			}
			at := task.DueDate.Add(time.Duration(step.OffsetMinutes) * time.Minute)
			if at.Before(now) || !at.Before(end) {
				continue
			}
			due = append(due, upcomingStep{task: task, step: step, at: at})
		}
	}
	if len(due) == 0 {
		return "", nil
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].at.Before(due[j].at)
	})

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%d prep step(s) coming up:\n", len(due)))
	for _, u := range due {
		builder.WriteString(fmt.Sprintf("  %s  user=%s task=%q step=%q (%d min before due)\n",
			u.at.UTC().Format("2006-01-02 15:04"),
			u.task.UserID,
			strings.TrimSpace(u.task.Title),
			strings.TrimSpace(u.step.Title),
			-u.step.OffsetMinutes,
		))
	}
	return strings.TrimSpace(builder.String()), nil
}
