package service

import (
	"context"
	"sort"
	"sync"

	"ai-studyplanner-be/internal/entity"
	"ai-studyplanner-be/internal/repository/contract"
	"ai-studyplanner-be/internal/repository/specification"
	"ai-studyplanner-be/internal/repository/unitofwork"
	"ai-studyplanner-be/pkg/events"
	"ai-studyplanner-be/pkg/extraction"

	"github.com/google/uuid"
)

// fakeStore backs the fake repositories with plain slices, filtered by
// interpreting the same specification values the real layer turns into SQL.
type fakeStore struct {
	mu            sync.Mutex
	schedules     []*entity.Schedule
	tasks         []*entity.Task
	conversations []*entity.Conversation

	findErr   error
	writeErr  error
	commits   int
	rollbacks int
}

type fakeFactory struct{ store *fakeStore }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct{ store *fakeStore }

func (u *fakeUow) Begin(ctx context.Context) error { return u.store.writeErr }
func (u *fakeUow) Commit() error                   { u.store.commits++; return nil }
func (u *fakeUow) Rollback() error                 { u.store.rollbacks++; return nil }

func (u *fakeUow) ScheduleRepository() contract.ScheduleRepository {
	return &fakeScheduleRepo{store: u.store}
}
func (u *fakeUow) TaskRepository() contract.TaskRepository {
	return &fakeTaskRepo{store: u.store}
}
func (u *fakeUow) ConversationRepository() contract.ConversationRepository {
	return &fakeConversationRepo{store: u.store}
}

type taskFilter struct {
	byID       *uuid.UUID
	byUser     *uuid.UUID
	byDay      string
	bySchedule *uuid.UUID
	chrono     bool
}

func parseSpecs(specs []specification.Specification) taskFilter {
	var f taskFilter
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			f.byID = &id
		case specification.ByUser:
			id := s.UserID
			f.byUser = &id
		case specification.ByDay:
			f.byDay = s.Day
		case specification.BySchedule:
			id := s.ScheduleID
			f.bySchedule = &id
		case specification.ChronologicalOrder:
			f.chrono = true
		}
	}
	return f
}

type fakeScheduleRepo struct{ store *fakeStore }

func (r *fakeScheduleRepo) Create(ctx context.Context, schedule *entity.Schedule) error {
	if r.store.writeErr != nil {
		return r.store.writeErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.schedules = append(r.store.schedules, schedule)
	return nil
}

func (r *fakeScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeScheduleRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Schedule, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeScheduleRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Schedule, error) {
	if r.store.findErr != nil {
		return nil, r.store.findErr
	}
	f := parseSpecs(specs)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Schedule
	for _, s := range r.store.schedules {
		if f.byID != nil && s.Id != *f.byID {
			continue
		}
		if f.byUser != nil && s.UserId != *f.byUser {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeTaskRepo struct{ store *fakeStore }

func (r *fakeTaskRepo) Create(ctx context.Context, task *entity.Task) error {
	return r.CreateBatch(ctx, []*entity.Task{task})
}

func (r *fakeTaskRepo) CreateBatch(ctx context.Context, tasks []*entity.Task) error {
	if r.store.writeErr != nil {
		return r.store.writeErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.tasks = append(r.store.tasks, tasks...)
	return nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *entity.Task) error {
	return r.UpdateBatch(ctx, []*entity.Task{task})
}

func (r *fakeTaskRepo) UpdateBatch(ctx context.Context, tasks []*entity.Task) error {
	if r.store.writeErr != nil {
		return r.store.writeErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, incoming := range tasks {
		for i, existing := range r.store.tasks {
			if existing.Id == incoming.Id {
				r.store.tasks[i] = incoming
			}
		}
	}
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeTaskRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Task, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeTaskRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Task, error) {
	if r.store.findErr != nil {
		return nil, r.store.findErr
	}
	f := parseSpecs(specs)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Task
	for _, t := range r.store.tasks {
		if f.byID != nil && t.Id != *f.byID {
			continue
		}
		if f.byUser != nil && t.UserId != *f.byUser {
			continue
		}
		if f.byDay != "" && t.Day != f.byDay {
			continue
		}
		if f.bySchedule != nil && t.ScheduleId != *f.bySchedule {
			continue
		}
		out = append(out, t)
	}
	if f.chrono {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Day != out[j].Day {
				return out[i].Day < out[j].Day
			}
			return out[i].StartTime < out[j].StartTime
		})
	}
	return out, nil
}

func (r *fakeTaskRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeConversationRepo struct{ store *fakeStore }

func (r *fakeConversationRepo) FindByUser(ctx context.Context, userId uuid.UUID) (*entity.Conversation, error) {
	if r.store.findErr != nil {
		return nil, r.store.findErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.conversations {
		if c.UserId == userId {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	if r.store.writeErr != nil {
		return r.store.writeErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *conversation
	r.store.conversations = append(r.store.conversations, &clone)
	return nil
}

func (r *fakeConversationRepo) Update(ctx context.Context, conversation *entity.Conversation) error {
	if r.store.writeErr != nil {
		return r.store.writeErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, c := range r.store.conversations {
		if c.Id == conversation.Id {
			clone := *conversation
			r.store.conversations[i] = &clone
		}
	}
	return nil
}

// fakeExtractor scripts the language-model collaborator.
type fakeExtractor struct {
	extractResult  extraction.Context
	extractErr     error
	extractField   string // last field requested through ExtractField
	fieldResult    extraction.Context
	fieldErr       error
	question       string
	synthesis      *extraction.SynthesisResult
	synthesizeErr  error
	extractCalls   int
	synthCalls     int
}

func (f *fakeExtractor) Extract(ctx context.Context, prompt string, prior extraction.Context) (extraction.Context, error) {
	f.extractCalls++
	if f.extractErr != nil {
		return prior, f.extractErr
	}
	return f.extractResult, nil
}

func (f *fakeExtractor) ExtractField(ctx context.Context, prompt, field string, prior extraction.Context) (extraction.Context, error) {
	f.extractField = field
	if f.fieldErr != nil {
		return prior, f.fieldErr
	}
	return f.fieldResult, nil
}

func (f *fakeExtractor) FollowUpQuestion(ctx context.Context, c extraction.Context, missingField string) string {
	if f.question != "" {
		return f.question
	}
	return "Tell me more about " + missingField
}

func (f *fakeExtractor) SynthesizePlan(ctx context.Context, c extraction.Context) (*extraction.SynthesisResult, error) {
	f.synthCalls++
	if f.synthesizeErr != nil {
		return nil, f.synthesizeErr
	}
	return f.synthesis, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error {
	return nil
}
