package bootstrap

import (
	"log"

	"ai-studyplanner-be/internal/config"
	"ai-studyplanner-be/internal/controller"
	"ai-studyplanner-be/internal/pkg/logger"
	"ai-studyplanner-be/internal/repository/memory"
	"ai-studyplanner-be/internal/repository/unitofwork"
	"ai-studyplanner-be/internal/service"
	"ai-studyplanner-be/pkg/events"
	"ai-studyplanner-be/pkg/extraction"
	"ai-studyplanner-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PlannerController controller.IPlannerController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Language Model Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	extractor := extraction.NewExtractor(llmProvider, log.Default())

	// Per-user conversation serialization
	ownerGuard := memory.NewOwnerGuard()

	// 4. Services
	notifyLogger := logger.NewIsolatedLogger("logs/notification.log")
	publisherService := service.NewPublisherService(events.TypeScheduleCreated, pubSub)
	consumerService := service.NewConsumerService(pubSub, events.TypeScheduleCreated, notifyLogger)

	scheduleService := service.NewScheduleService(uowFactory, publisherService, cfg.Planner, sysLogger)
	plannerService := service.NewPlannerService(uowFactory, extractor, scheduleService, ownerGuard, sysLogger)

	// 5. Controllers
	plannerController := controller.NewPlannerController(plannerService, scheduleService)

	return &Container{
		PlannerController: plannerController,
		ConsumerService:   consumerService,
	}
}
