package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/model"
	"task-tracker/internal/prepgen"
	"task-tracker/internal/repository"
)

func newTestRepo(t *testing.T) *repository.TaskRepository {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	return repository.NewTaskRepository(db)
}

// fixedGen returns a canned step list, standing in for the AI-backed
// generator.
type fixedGen struct {
	steps []model.PrepStep
}

func (g *fixedGen) Generate(_ context.Context, _ string, _ time.Time, _ string) []model.PrepStep {
	out := make([]model.PrepStep, len(g.steps))
	copy(out, g.steps)
	return out
}

func newTestService(t *testing.T) *TaskService {
	t.Helper()
	return NewTaskService(newTestRepo(t), prepgen.New(nil))
}

func TestDefaultDueDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "plain day",
			now:  time.Date(2026, time.March, 10, 17, 42, 3, 0, time.UTC),
			want: time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "month rollover",
			now:  time.Date(2026, time.January, 31, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "year rollover",
			now:  time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2027, time.January, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "leap february",
			now:  time.Date(2028, time.February, 28, 12, 0, 0, 0, time.UTC),
			want: time.Date(2028, time.February, 29, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultDueDate(tt.now))
		})
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	svc.now = func() time.Time {
		return time.Date(2026, time.January, 31, 15, 30, 0, 0, time.UTC)
	}

	task, err := svc.Create(context.Background(), CreateTaskInput{
		UserID: "u1",
		Title:  "Write report",
	})
	require.NoError(t, err)

	assert.NotZero(t, task.ID)
	assert.Equal(t, model.StatusPending, task.Status)
	assert.Equal(t, "general", task.Category)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC), task.DueDate.UTC())

	require.Len(t, task.PrepSteps, 3)
	offsets := []int{task.PrepSteps[0].OffsetMinutes, task.PrepSteps[1].OffsetMinutes, task.PrepSteps[2].OffsetMinutes}
	assert.Equal(t, []int{-60, -30, -15}, offsets)
	for _, step := range task.PrepSteps {
		assert.False(t, step.Completed)
	}
}

func TestCreateKeepsExplicitFields(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	due := time.Date(2026, time.June, 2, 14, 0, 0, 0, time.UTC)
	task, err := svc.Create(context.Background(), CreateTaskInput{
		UserID:      "u1",
		Title:       "Dentist",
		Description: "bring insurance card",
		Category:    "health",
		DueDate:     &due,
	})
	require.NoError(t, err)

	assert.Equal(t, due, task.DueDate.UTC())
	assert.Equal(t, "health", task.Category)
	assert.Equal(t, "bring insurance card", task.Description)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateTaskInput{UserID: "u1"})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), CreateTaskInput{Title: "no owner"})
	assert.Error(t, err)
}

func TestListNewestFirst(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, CreateTaskInput{UserID: "u1", Title: title})
		require.NoError(t, err)
	}

	tasks, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
	assert.Equal(t, "first", tasks[2].Title)
	for _, task := range tasks {
		assert.Len(t, task.PrepSteps, 3)
	}
}

func TestListEmptyIsNotError(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	tasks, err := svc.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdateStatusLeavesStepsAlone(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateTaskInput{UserID: "u1", Title: "t"})
	require.NoError(t, err)

	status := model.StatusCompleted
	require.NoError(t, svc.Update(ctx, task.ID, UpdateTaskInput{Status: &status}))

	tasks, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.StatusCompleted, tasks[0].Status)
	require.Len(t, tasks[0].PrepSteps, 3)
	assert.Equal(t, task.PrepSteps[0].Title, tasks[0].PrepSteps[0].Title)
}

func TestUpdateStepsReplacesWholesale(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateTaskInput{UserID: "u1", Title: "t"})
	require.NoError(t, err)

	replacement := []model.PrepStep{
		{Title: "Pack bag", OffsetMinutes: -120, Completed: true},
		{Title: "Leave house", OffsetMinutes: -20},
	}
	require.NoError(t, svc.Update(ctx, task.ID, UpdateTaskInput{PrepSteps: &replacement}))

	tasks, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.StatusPending, tasks[0].Status)

	steps := tasks[0].PrepSteps
	require.Len(t, steps, 2)
	assert.Equal(t, "Pack bag", steps[0].Title)
	assert.Equal(t, -120, steps[0].OffsetMinutes)
	assert.True(t, steps[0].Completed)
	assert.Equal(t, "Leave house", steps[1].Title)
	assert.False(t, steps[1].Completed)
}

func TestUpdateEmptyStepListClearsSteps(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateTaskInput{UserID: "u1", Title: "t"})
	require.NoError(t, err)

	empty := []model.PrepStep{}
	require.NoError(t, svc.Update(ctx, task.ID, UpdateTaskInput{PrepSteps: &empty}))

	tasks, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Empty(t, tasks[0].PrepSteps)
}

func TestUpdateWithNothingIsNoopSuccess(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateTaskInput{UserID: "u1", Title: "t"})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, task.ID, UpdateTaskInput{}))

	tasks, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.StatusPending, tasks[0].Status)
	assert.Len(t, tasks[0].PrepSteps, 3)
}

func TestDeleteRemovesTaskAndSteps(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateTaskInput{UserID: "u1", Title: "t"})
	require.NoError(t, err)
	keep, err := svc.Create(ctx, CreateTaskInput{UserID: "u1", Title: "keep"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, task.ID))

	tasks, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)
}

func TestDeleteUnknownIDIsSuccess(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	assert.NoError(t, svc.Delete(context.Background(), 99999))
}

func TestOperationsWithoutStore(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(nil, prepgen.New(nil))
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateTaskInput{UserID: "u1", Title: "t"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.List(ctx, "u1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	assert.ErrorIs(t, svc.Update(ctx, 1, UpdateTaskInput{}), ErrStoreUnavailable)
	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrStoreUnavailable)
}

func TestCreateUsesGeneratorOutput(t *testing.T) {
	t.Parallel()
	gen := &fixedGen{steps: []model.PrepStep{
		{Title: "Warm up", OffsetMinutes: -45},
		{Title: "Stretch", OffsetMinutes: -10},
	}}
	svc := NewTaskService(newTestRepo(t), gen)

	task, err := svc.Create(context.Background(), CreateTaskInput{UserID: "u1", Title: "Run"})
	require.NoError(t, err)
	require.Len(t, task.PrepSteps, 2)
	assert.Equal(t, "Warm up", task.PrepSteps[0].Title)
	assert.Equal(t, -45, task.PrepSteps[0].OffsetMinutes)
}
