package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-studyplanner-be/internal/dto"
	"ai-studyplanner-be/internal/entity"
	"ai-studyplanner-be/internal/pkg/logger"
	"ai-studyplanner-be/internal/repository/memory"
	"ai-studyplanner-be/internal/repository/unitofwork"
	"ai-studyplanner-be/pkg/extraction"

	"github.com/google/uuid"
)

// PlanExtractor is the language-model collaborator behind the conversation.
// *extraction.Extractor satisfies it; tests substitute a scripted fake.
type PlanExtractor interface {
	Extract(ctx context.Context, prompt string, prior extraction.Context) (extraction.Context, error)
	ExtractField(ctx context.Context, prompt, field string, prior extraction.Context) (extraction.Context, error)
	FollowUpQuestion(ctx context.Context, c extraction.Context, missingField string) string
	SynthesizePlan(ctx context.Context, c extraction.Context) (*extraction.SynthesisResult, error)
}

type IPlannerService interface {
	Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	ResetConversation(ctx context.Context, userId uuid.UUID) (*dto.ResetConversationResponse, error)
}

type plannerService struct {
	uowFactory      unitofwork.RepositoryFactory
	extractor       PlanExtractor
	scheduleService IScheduleService
	guard           *memory.OwnerGuard
	sysLogger       logger.ILogger
}

func NewPlannerService(
	uowFactory unitofwork.RepositoryFactory,
	extractor PlanExtractor,
	scheduleService IScheduleService,
	guard *memory.OwnerGuard,
	sysLogger logger.ILogger,
) IPlannerService {
	return &plannerService{
		uowFactory:      uowFactory,
		extractor:       extractor,
		scheduleService: scheduleService,
		guard:           guard,
		sysLogger:       sysLogger,
	}
}

// Chat advances the user's conversation by one turn. Turns of the same user
// are serialized through the owner guard so concurrent prompts cannot
// interleave state transitions.
func (s *plannerService) Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	release := s.guard.Acquire(userId.String())
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	conv, err := s.findOrCreateConversation(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	// A pending conflict reply carries exactly one new fact: the start
	// time the user picked. Everything else is already in the context.
	if conv.State == entity.ConversationAwaitingChoice {
		updated, err := s.extractor.ExtractField(ctx, req.Prompt, extraction.FieldTaskTime, conv.Context)
		if err != nil {
			return nil, err
		}
		conv.Context = updated
		return s.generate(ctx, uow, conv)
	}

	updated, err := s.extractor.Extract(ctx, req.Prompt, conv.Context)
	if err != nil {
		// State and context survive an extraction failure; the user
		// just retries the same turn.
		return nil, err
	}
	conv.Context = updated

	missing := conv.Context.MissingFields()
	if len(missing) == 0 {
		return s.generate(ctx, uow, conv)
	}

	question, clarifying := s.amPmQuestion(conv, missing)
	if !clarifying {
		question = s.extractor.FollowUpQuestion(ctx, conv.Context, missing[0])
	}

	conv.State = entity.ConversationAwaitingDetails
	conv.MissingFields = missing
	if err := s.saveConversation(ctx, uow, conv); err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Status:            dto.ChatStatusFollowUp,
		Message:           question,
		ConversationState: conv.State,
		MissingFields:     missing,
	}, nil
}

// amPmQuestion handles the case where the model saw a clock time but could
// not disambiguate morning from evening. The extractor stashes the ambiguous
// value in the description field behind a fixed prefix.
func (s *plannerService) amPmQuestion(conv *entity.Conversation, missing []string) (string, bool) {
	if !contains(missing, extraction.FieldTaskTime) {
		return "", false
	}
	if !strings.HasPrefix(conv.Context.Description, extraction.AmPmPrefix) {
		return "", false
	}
	value := strings.TrimPrefix(conv.Context.Description, extraction.AmPmPrefix)
	conv.Context.Description = ""
	return fmt.Sprintf("You mentioned %s. Is that in the morning or the evening?", value), true
}

// generate runs synthesis and commit for a complete context. The transient
// generating state is never persisted: a crash or failure mid-generation must
// not strand the conversation, so only the outcome states reach storage.
func (s *plannerService) generate(ctx context.Context, uow unitofwork.UnitOfWork, conv *entity.Conversation) (*dto.ChatResponse, error) {
	conv.State = entity.ConversationGenerating

	result, err := s.extractor.SynthesizePlan(ctx, conv.Context)
	if err != nil {
		return nil, s.failGeneration(ctx, uow, conv, err)
	}

	outcome, err := s.scheduleService.CommitPlan(ctx, conv.UserId, result.Descriptor, result.Sessions)
	if err != nil {
		return nil, s.failGeneration(ctx, uow, conv, err)
	}

	if outcome.Conflict != nil {
		conv.State = entity.ConversationAwaitingChoice
		conv.MissingFields = nil
		if err := s.saveConversation(ctx, uow, conv); err != nil {
			return nil, err
		}
		s.sysLogger.Info("planner", "conversation awaiting reschedule choice", map[string]interface{}{
			"user_id": conv.UserId,
			"day":     outcome.Conflict.Proposed.Day,
		})
		proposed := outcome.Conflict.Proposed
		message := fmt.Sprintf(
			"%q on %s at %s clashes with %q.",
			proposed.Title, proposed.Day, proposed.Start, outcome.Conflict.Existing.Title,
		)
		if len(outcome.SuggestedSlots) > 0 {
			message += fmt.Sprintf(
				" Free that day: %s. Which start time should I use?",
				strings.Join(outcome.SuggestedSlots, ", "),
			)
		} else {
			message += " That day has no free slot; give me another start time."
		}
		return &dto.ChatResponse{
			Status:            dto.ChatStatusConflict,
			Message:           message,
			ConversationState: conv.State,
			SuggestedSlots:    outcome.SuggestedSlots,
		}, nil
	}

	conv.Reset()
	if err := s.saveConversation(ctx, uow, conv); err != nil {
		return nil, err
	}
	s.sysLogger.Info("planner", "conversation completed", map[string]interface{}{
		"user_id":     conv.UserId,
		"schedule_id": outcome.Schedule.Id,
		"task_count":  len(outcome.Tasks),
	})

	scheduleResponse := toScheduleResponse(outcome.Schedule, outcome.Tasks)
	return &dto.ChatResponse{
		Status: dto.ChatStatusCreated,
		Message: fmt.Sprintf(
			"Done! %q is on the calendar with %d sessions, %s to %s.",
			outcome.Schedule.Title, len(outcome.Tasks), outcome.Schedule.StartDate, outcome.Schedule.EndDate,
		),
		ConversationState: conv.State,
		Schedule:          &scheduleResponse,
	}, nil
}

// failGeneration rolls the conversation back to awaiting_details with the
// collected context intact, so the next prompt can retry generation.
func (s *plannerService) failGeneration(ctx context.Context, uow unitofwork.UnitOfWork, conv *entity.Conversation, cause error) error {
	conv.State = entity.ConversationAwaitingDetails
	conv.MissingFields = nil
	if err := s.saveConversation(ctx, uow, conv); err != nil {
		s.sysLogger.Error("planner", "failed to persist conversation after generation failure", map[string]interface{}{
			"user_id": conv.UserId,
			"error":   err.Error(),
		})
	}
	return cause
}

func (s *plannerService) ResetConversation(ctx context.Context, userId uuid.UUID) (*dto.ResetConversationResponse, error) {
	release := s.guard.Acquire(userId.String())
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	conv, err := s.findOrCreateConversation(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	conv.Reset()
	if err := s.saveConversation(ctx, uow, conv); err != nil {
		return nil, err
	}
	return &dto.ResetConversationResponse{ConversationState: conv.State}, nil
}

func (s *plannerService) findOrCreateConversation(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.Conversation, error) {
	conv, err := uow.ConversationRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if conv != nil {
		return conv, nil
	}

	conv = &entity.Conversation{
		Id:        uuid.New(),
		UserId:    userId,
		State:     entity.ConversationIdle,
		CreatedAt: time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return conv, nil
}

func (s *plannerService) saveConversation(ctx context.Context, uow unitofwork.UnitOfWork, conv *entity.Conversation) error {
	now := time.Now()
	conv.UpdatedAt = &now
	if err := uow.ConversationRepository().Update(ctx, conv); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func contains(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
