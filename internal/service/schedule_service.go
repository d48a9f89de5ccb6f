package service

import (
	"context"
	"fmt"
	"time"

	"ai-studyplanner-be/internal/config"
	"ai-studyplanner-be/internal/dto"
	"ai-studyplanner-be/internal/entity"
	"ai-studyplanner-be/internal/pkg/logger"
	"ai-studyplanner-be/internal/repository/specification"
	"ai-studyplanner-be/internal/repository/unitofwork"
	"ai-studyplanner-be/pkg/events"
	"ai-studyplanner-be/pkg/extraction"
	"ai-studyplanner-be/pkg/planner"

	"github.com/google/uuid"
)

// CommitOutcome is the result of trying to persist a synthesized plan.
// Exactly one of Conflict or Schedule is set: a conflicting plan writes
// nothing and carries the collision plus alternative start times instead.
type CommitOutcome struct {
	Conflict       *planner.Conflict
	SuggestedSlots []string
	Schedule       *entity.Schedule
	Tasks          []*entity.Task
}

type IScheduleService interface {
	CommitPlan(ctx context.Context, userId uuid.UUID, desc extraction.Descriptor, sessions []planner.Session) (*CommitOutcome, error)
	BuildPlan(ctx context.Context, req *dto.PlanRequest) (*dto.PlanResponse, error)
	ReallocateMissed(ctx context.Context, userId uuid.UUID, req *dto.ReallocateRequest) (*dto.ReallocateResponse, error)
	UpdateTaskStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateTaskStatusRequest) (*dto.TaskResponse, error)
	ListSchedules(ctx context.Context, userId uuid.UUID) ([]*dto.ScheduleResponse, error)
	ListTasks(ctx context.Context, userId uuid.UUID, scheduleId uuid.UUID) ([]dto.TaskResponse, error)
}

type scheduleService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	plannerCfg       config.PlannerConfig
	sysLogger        logger.ILogger
}

func NewScheduleService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	plannerCfg config.PlannerConfig,
	sysLogger logger.ILogger,
) IScheduleService {
	return &scheduleService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		plannerCfg:       plannerCfg,
		sysLogger:        sysLogger,
	}
}

func (s *scheduleService) defaultWindow() planner.Window {
	return planner.Window{
		DailyStart:   s.plannerCfg.DayStart,
		DailyEnd:     s.plannerCfg.DayEnd,
		BreakMinutes: s.plannerCfg.BreakMinutes,
	}
}

// CommitPlan checks every proposed session against the user's persisted
// tasks and either reports the first conflict (writing nothing) or commits
// the schedule and all its tasks in one transaction.
func (s *scheduleService) CommitPlan(ctx context.Context, userId uuid.UUID, desc extraction.Descriptor, sessions []planner.Session) (*CommitOutcome, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existingByDay, err := s.loadBusyDays(ctx, uow, userId, sessions)
	if err != nil {
		return nil, err
	}

	conflict, err := planner.FindConflict(sessions, existingByDay)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		slots, err := planner.SuggestSlots(
			existingByDay[conflict.Proposed.Day],
			s.defaultWindow(),
			conflict.Proposed.DurationMinutes,
			planner.MaxSuggestedSlots,
		)
		if err != nil {
			return nil, err
		}
		s.sysLogger.Info("schedule", "plan rejected on conflict", map[string]interface{}{
			"user_id":  userId,
			"day":      conflict.Proposed.Day,
			"proposed": conflict.Proposed.Start,
			"existing": conflict.Existing.Title,
		})
		return &CommitOutcome{Conflict: conflict, SuggestedSlots: slots}, nil
	}

	now := time.Now()
	schedule := &entity.Schedule{
		Id:            uuid.New(),
		Title:         desc.Title,
		Description:   desc.Description,
		StartDate:     desc.StartDate,
		EndDate:       desc.EndDate,
		RepeatPattern: desc.RepeatPattern,
		UserId:        userId,
		CreatedAt:     now,
	}
	tasks := make([]*entity.Task, 0, len(sessions))
	for _, session := range sessions {
		tasks = append(tasks, &entity.Task{
			Id:              uuid.New(),
			ScheduleId:      schedule.Id,
			UserId:          userId,
			Title:           session.Title,
			Subject:         session.Subject,
			Day:             session.Day,
			StartTime:       session.Start,
			DurationMinutes: session.DurationMinutes,
			Status:          planner.StatusPending,
			CreatedAt:       now,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := uow.ScheduleRepository().Create(ctx, schedule); err != nil {
		uow.Rollback()
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := uow.TaskRepository().CreateBatch(ctx, tasks); err != nil {
		uow.Rollback()
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// Notification is auxiliary; a publish failure must not undo the commit.
	evt := events.NewScheduleCreated(schedule.Id.String(), userId.String(), schedule.Title, len(tasks))
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		s.sysLogger.Warn("schedule", "failed to publish schedule created event", map[string]interface{}{
			"schedule_id": schedule.Id,
			"error":       err.Error(),
		})
	}

	return &CommitOutcome{Schedule: schedule, Tasks: tasks}, nil
}

// loadBusyDays projects the user's persisted tasks on the proposed days into
// conflict-check input, keyed by day.
func (s *scheduleService) loadBusyDays(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessions []planner.Session) (map[string][]planner.Busy, error) {
	existingByDay := make(map[string][]planner.Busy)
	for _, session := range sessions {
		if _, seen := existingByDay[session.Day]; seen {
			continue
		}
		dayTasks, err := uow.TaskRepository().FindAll(ctx,
			specification.ByUser{UserID: userId},
			specification.ByDay{Day: session.Day},
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		busy := make([]planner.Busy, 0, len(dayTasks))
		for _, t := range dayTasks {
			busy = append(busy, planner.Busy{
				ID:              t.Id.String(),
				Title:           t.Title,
				Start:           t.StartTime,
				DurationMinutes: t.DurationMinutes,
			})
		}
		existingByDay[session.Day] = busy
	}
	return existingByDay, nil
}

// BuildPlan runs the packer directly without touching storage. Clients use
// it to preview a schedule before committing through the conversation.
func (s *scheduleService) BuildPlan(ctx context.Context, req *dto.PlanRequest) (*dto.PlanResponse, error) {
	breakMinutes := planner.DefaultBreakMinutes
	if req.BreakMinutes != nil {
		breakMinutes = *req.BreakMinutes
	}

	subjects := make([]planner.Subject, 0, len(req.Subjects))
	for _, sub := range req.Subjects {
		subjects = append(subjects, planner.Subject{
			Name:           sub.Name,
			PortionCount:   sub.PortionCount,
			PortionMinutes: sub.PortionMinutes,
		})
	}

	result, err := planner.Pack(planner.ScheduleRequest{
		Subjects:  subjects,
		StartDate: req.StartDate,
		Deadline:  req.Deadline,
		Window: planner.Window{
			DailyStart:   req.DailyStart,
			DailyEnd:     req.DailyEnd,
			BreakMinutes: breakMinutes,
		},
	})
	if err != nil {
		return nil, err
	}

	response := &dto.PlanResponse{
		Summary:  result.Summary,
		Planned:  result.Planned,
		Total:    result.Total,
		Sessions: make([]dto.PlanSession, 0, len(result.Sessions)),
	}
	for _, session := range result.Sessions {
		response.Sessions = append(response.Sessions, dto.PlanSession{
			Title:           session.Title,
			Subject:         session.Subject,
			Day:             session.Day,
			Start:           session.Start,
			DurationMinutes: session.DurationMinutes,
			Status:          session.Status,
		})
	}
	return response, nil
}

// ReallocateMissed re-places a schedule's missed tasks starting from
// req.FromDate and persists the moved rows in one transaction.
func (s *scheduleService) ReallocateMissed(ctx context.Context, userId uuid.UUID, req *dto.ReallocateRequest) (*dto.ReallocateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	schedule, err := uow.ScheduleRepository().FindOne(ctx,
		specification.ByID{ID: req.ScheduleId},
		specification.ByUser{UserID: userId},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: schedule %s", ErrNotFound, req.ScheduleId)
	}

	tasks, err := uow.TaskRepository().FindAll(ctx,
		specification.ByUser{UserID: userId},
		specification.BySchedule{ScheduleID: req.ScheduleId},
		specification.ChronologicalOrder{},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	byId := make(map[string]*entity.Task, len(tasks))
	sessions := make([]planner.Session, 0, len(tasks))
	for _, t := range tasks {
		byId[t.Id.String()] = t
		sessions = append(sessions, planner.Session{
			Ref:             t.Id.String(),
			Title:           t.Title,
			Subject:         t.Subject,
			Day:             t.Day,
			Start:           t.StartTime,
			DurationMinutes: t.DurationMinutes,
			Status:          t.Status,
		})
	}

	placed, err := planner.Reallocate(sessions, req.FromDate, s.defaultWindow())
	if err != nil {
		return nil, err
	}

	// Only tasks that were missed get new coordinates; everything else
	// passes through the reallocator untouched.
	now := time.Now()
	var moved []*entity.Task
	for _, session := range placed {
		task, ok := byId[session.Ref]
		if !ok || task.Status != planner.StatusMissed {
			continue
		}
		task.Day = session.Day
		task.StartTime = session.Start
		task.Status = planner.StatusPending
		task.UpdatedAt = &now
		moved = append(moved, task)
	}

	if len(moved) > 0 {
		if err := uow.Begin(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if err := uow.TaskRepository().UpdateBatch(ctx, moved); err != nil {
			uow.Rollback()
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}

	response := &dto.ReallocateResponse{
		Moved: len(moved),
		Tasks: make([]dto.TaskResponse, 0, len(placed)),
	}
	for _, session := range placed {
		task := byId[session.Ref]
		response.Tasks = append(response.Tasks, dto.TaskResponse{
			Id:              task.Id,
			ScheduleId:      task.ScheduleId,
			Title:           session.Title,
			Subject:         session.Subject,
			Day:             session.Day,
			StartTime:       session.Start,
			DurationMinutes: session.DurationMinutes,
			Status:          session.Status,
		})
	}
	return response, nil
}

func (s *scheduleService) UpdateTaskStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateTaskStatusRequest) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := uow.TaskRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByUser{UserID: userId},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task %s", ErrNotFound, req.Id)
	}

	now := time.Now()
	task.Status = req.Status
	task.UpdatedAt = &now
	if err := uow.TaskRepository().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	response := toTaskResponse(task)
	return &response, nil
}

func (s *scheduleService) ListSchedules(ctx context.Context, userId uuid.UUID) ([]*dto.ScheduleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	schedules, err := uow.ScheduleRepository().FindAll(ctx,
		specification.ByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	result := make([]*dto.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		response := toScheduleResponse(schedule, nil)
		result = append(result, &response)
	}
	return result, nil
}

func (s *scheduleService) ListTasks(ctx context.Context, userId uuid.UUID, scheduleId uuid.UUID) ([]dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	schedule, err := uow.ScheduleRepository().FindOne(ctx,
		specification.ByID{ID: scheduleId},
		specification.ByUser{UserID: userId},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: schedule %s", ErrNotFound, scheduleId)
	}

	tasks, err := uow.TaskRepository().FindAll(ctx,
		specification.ByUser{UserID: userId},
		specification.BySchedule{ScheduleID: scheduleId},
		specification.ChronologicalOrder{},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, toTaskResponse(task))
	}
	return result, nil
}

func toScheduleResponse(schedule *entity.Schedule, tasks []*entity.Task) dto.ScheduleResponse {
	response := dto.ScheduleResponse{
		Id:            schedule.Id,
		Title:         schedule.Title,
		Description:   schedule.Description,
		StartDate:     schedule.StartDate,
		EndDate:       schedule.EndDate,
		RepeatPattern: schedule.RepeatPattern,
		CreatedAt:     schedule.CreatedAt,
	}
	for _, task := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(task))
	}
	return response
}

func toTaskResponse(task *entity.Task) dto.TaskResponse {
	return dto.TaskResponse{
		Id:              task.Id,
		ScheduleId:      task.ScheduleId,
		Title:           task.Title,
		Subject:         task.Subject,
		Day:             task.Day,
		StartTime:       task.StartTime,
		DurationMinutes: task.DurationMinutes,
		Status:          task.Status,
	}
}
