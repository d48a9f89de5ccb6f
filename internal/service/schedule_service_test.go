package service

import (
	"context"
	"testing"

	"ai-studyplanner-be/internal/dto"
	"ai-studyplanner-be/internal/entity"
	"ai-studyplanner-be/pkg/extraction"
	"ai-studyplanner-be/pkg/planner"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduleHarness(store *fakeStore) (IScheduleService, *fakePublisher) {
	publisher := &fakePublisher{}
	svc := NewScheduleService(&fakeFactory{store: store}, publisher, testPlannerCfg, nopLogger{})
	return svc, publisher
}

func TestCommitPlanPersistsScheduleAndTasks(t *testing.T) {
	store := &fakeStore{}
	svc, publisher := newScheduleHarness(store)
	userId := uuid.New()

	desc := extraction.Descriptor{
		Title:         "Spanish Vocab",
		StartDate:     "2025-10-01",
		EndDate:       "2025-10-02",
		RepeatPattern: "daily",
	}
	sessions := []planner.Session{
		{Title: "Spanish Vocab", Day: "2025-10-01", Start: "18:00", DurationMinutes: 30, Status: planner.StatusPending},
		{Title: "Spanish Vocab", Day: "2025-10-02", Start: "18:00", DurationMinutes: 30, Status: planner.StatusPending},
	}

	outcome, err := svc.CommitPlan(context.Background(), userId, desc, sessions)
	require.NoError(t, err)
	require.Nil(t, outcome.Conflict)
	require.NotNil(t, outcome.Schedule)

	assert.Equal(t, 1, store.commits)
	require.Len(t, store.tasks, 2)
	for _, task := range store.tasks {
		assert.Equal(t, outcome.Schedule.Id, task.ScheduleId)
		assert.Equal(t, userId, task.UserId)
		assert.Equal(t, planner.StatusPending, task.Status)
	}
	require.Len(t, publisher.events, 1)
	assert.EqualValues(t, 2, publisher.events[0].Payload()["task_count"])
}

func TestCommitPlanConflictWritesNothing(t *testing.T) {
	store := &fakeStore{}
	userId := uuid.New()
	store.tasks = append(store.tasks, &entity.Task{
		Id:              uuid.New(),
		UserId:          userId,
		Title:           "Piano",
		Day:             "2025-10-01",
		StartTime:       "18:15",
		DurationMinutes: 45,
		Status:          planner.StatusPending,
	})
	svc, publisher := newScheduleHarness(store)

	sessions := []planner.Session{
		{Title: "Spanish Vocab", Day: "2025-10-01", Start: "18:00", DurationMinutes: 30, Status: planner.StatusPending},
	}
	outcome, err := svc.CommitPlan(context.Background(), userId, extraction.Descriptor{Title: "Spanish Vocab"}, sessions)
	require.NoError(t, err)

	require.NotNil(t, outcome.Conflict)
	assert.Equal(t, "Piano", outcome.Conflict.Existing.Title)
	assert.NotEmpty(t, outcome.SuggestedSlots)
	assert.Nil(t, outcome.Schedule)

	assert.Empty(t, store.schedules)
	assert.Len(t, store.tasks, 1)
	assert.Zero(t, store.commits)
	assert.Empty(t, publisher.events)
}

func TestCommitPlanIgnoresOtherUsersTasks(t *testing.T) {
	store := &fakeStore{}
	store.tasks = append(store.tasks, &entity.Task{
		Id:              uuid.New(),
		UserId:          uuid.New(),
		Title:           "Someone else",
		Day:             "2025-10-01",
		StartTime:       "18:00",
		DurationMinutes: 60,
		Status:          planner.StatusPending,
	})
	svc, _ := newScheduleHarness(store)

	sessions := []planner.Session{
		{Title: "Spanish Vocab", Day: "2025-10-01", Start: "18:00", DurationMinutes: 30, Status: planner.StatusPending},
	}
	outcome, err := svc.CommitPlan(context.Background(), uuid.New(), extraction.Descriptor{Title: "Spanish Vocab"}, sessions)
	require.NoError(t, err)
	assert.Nil(t, outcome.Conflict)
	require.NotNil(t, outcome.Schedule)
}

func TestBuildPlanDefaultsBreakMinutes(t *testing.T) {
	svc, _ := newScheduleHarness(&fakeStore{})

	res, err := svc.BuildPlan(context.Background(), &dto.PlanRequest{
		Subjects:   []dto.PlanSubject{{Name: "Chemistry", PortionCount: 5, PortionMinutes: 45}},
		StartDate:  "2025-08-13",
		Deadline:   "2025-08-20",
		DailyStart: "17:00",
		DailyEnd:   "21:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Planned)
	assert.Equal(t, 5, res.Total)
	require.Len(t, res.Sessions, 5)
	// Four portions fit the first evening with steady 45+15 spacing.
	assert.Equal(t, "2025-08-13", res.Sessions[3].Day)
	assert.Equal(t, "2025-08-14", res.Sessions[4].Day)
	assert.Equal(t, "17:00", res.Sessions[4].Start)
}

func TestBuildPlanRejectsOversizedPortion(t *testing.T) {
	svc, _ := newScheduleHarness(&fakeStore{})

	_, err := svc.BuildPlan(context.Background(), &dto.PlanRequest{
		Subjects:   []dto.PlanSubject{{Name: "Marathon", PortionCount: 1, PortionMinutes: 300}},
		StartDate:  "2025-08-13",
		Deadline:   "2025-08-20",
		DailyStart: "17:00",
		DailyEnd:   "20:00",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, planner.ErrPortionTooLarge)
}

func TestReallocateMissedMovesOnlyMissedTasks(t *testing.T) {
	store := &fakeStore{}
	userId := uuid.New()
	scheduleId := uuid.New()
	store.schedules = append(store.schedules, &entity.Schedule{Id: scheduleId, UserId: userId, Title: "History"})

	missedId := uuid.New()
	doneId := uuid.New()
	store.tasks = append(store.tasks,
		&entity.Task{
			Id: missedId, ScheduleId: scheduleId, UserId: userId,
			Title: "History (part 1/2)", Day: "2025-08-10", StartTime: "18:00",
			DurationMinutes: 60, Status: planner.StatusMissed,
		},
		&entity.Task{
			Id: doneId, ScheduleId: scheduleId, UserId: userId,
			Title: "History (part 2/2)", Day: "2025-08-12", StartTime: "18:00",
			DurationMinutes: 60, Status: planner.StatusCompleted,
		},
	)
	svc, _ := newScheduleHarness(store)

	res, err := svc.ReallocateMissed(context.Background(), userId, &dto.ReallocateRequest{
		ScheduleId: scheduleId,
		FromDate:   "2025-08-11",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Moved)

	var moved, fixed *entity.Task
	for _, task := range store.tasks {
		switch task.Id {
		case missedId:
			moved = task
		case doneId:
			fixed = task
		}
	}
	require.NotNil(t, moved)
	// Re-placed after the last fixed session's day, pending again.
	assert.Equal(t, planner.StatusPending, moved.Status)
	assert.Equal(t, "2025-08-12", moved.Day)
	assert.Equal(t, "19:15", moved.StartTime)

	assert.Equal(t, "2025-08-12", fixed.Day)
	assert.Equal(t, "18:00", fixed.StartTime)
	assert.Equal(t, planner.StatusCompleted, fixed.Status)
}

func TestReallocateMissedUnknownSchedule(t *testing.T) {
	svc, _ := newScheduleHarness(&fakeStore{})

	_, err := svc.ReallocateMissed(context.Background(), uuid.New(), &dto.ReallocateRequest{
		ScheduleId: uuid.New(),
		FromDate:   "2025-08-11",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTaskStatus(t *testing.T) {
	store := &fakeStore{}
	userId := uuid.New()
	taskId := uuid.New()
	store.tasks = append(store.tasks, &entity.Task{
		Id: taskId, UserId: userId, Title: "Algebra",
		Day: "2025-08-13", StartTime: "09:00", DurationMinutes: 30,
		Status: planner.StatusPending,
	})
	svc, _ := newScheduleHarness(store)

	res, err := svc.UpdateTaskStatus(context.Background(), userId, &dto.UpdateTaskStatusRequest{
		Id:     taskId,
		Status: planner.StatusMissed,
	})
	require.NoError(t, err)
	assert.Equal(t, planner.StatusMissed, res.Status)
	assert.Equal(t, planner.StatusMissed, store.tasks[0].Status)
}

func TestUpdateTaskStatusWrongOwner(t *testing.T) {
	store := &fakeStore{}
	taskId := uuid.New()
	store.tasks = append(store.tasks, &entity.Task{
		Id: taskId, UserId: uuid.New(), Status: planner.StatusPending,
	})
	svc, _ := newScheduleHarness(store)

	_, err := svc.UpdateTaskStatus(context.Background(), uuid.New(), &dto.UpdateTaskStatusRequest{
		Id:     taskId,
		Status: planner.StatusCompleted,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTasksOrdersChronologically(t *testing.T) {
	store := &fakeStore{}
	userId := uuid.New()
	scheduleId := uuid.New()
	store.schedules = append(store.schedules, &entity.Schedule{Id: scheduleId, UserId: userId})
	store.tasks = append(store.tasks,
		&entity.Task{Id: uuid.New(), ScheduleId: scheduleId, UserId: userId, Day: "2025-08-14", StartTime: "09:00"},
		&entity.Task{Id: uuid.New(), ScheduleId: scheduleId, UserId: userId, Day: "2025-08-13", StartTime: "19:00"},
		&entity.Task{Id: uuid.New(), ScheduleId: scheduleId, UserId: userId, Day: "2025-08-13", StartTime: "09:00"},
	)
	svc, _ := newScheduleHarness(store)

	tasks, err := svc.ListTasks(context.Background(), userId, scheduleId)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "2025-08-13", tasks[0].Day)
	assert.Equal(t, "09:00", tasks[0].StartTime)
	assert.Equal(t, "19:00", tasks[1].StartTime)
	assert.Equal(t, "2025-08-14", tasks[2].Day)
}
