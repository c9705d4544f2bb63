package bootstrap

import (
	"context"
	"log"

	"storefront-assistant-be/internal/config"
	"storefront-assistant-be/internal/controller"
	"storefront-assistant-be/internal/pkg/logger"
	"storefront-assistant-be/internal/repository/contract"
	"storefront-assistant-be/internal/repository/implementation"
	"storefront-assistant-be/internal/repository/memory"
	redisrepo "storefront-assistant-be/internal/repository/redis"
	"storefront-assistant-be/internal/repository/unitofwork"
	"storefront-assistant-be/internal/service"
	"storefront-assistant-be/pkg/embedding"
	"storefront-assistant-be/pkg/llm/factory"

	pkgNats "storefront-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	InsightService  service.IInsightService
	MonitorService  service.IMonitorService
	DialogueService service.IDialogueService
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

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis (tracker store); falls back to Postgres when unreachable
	var trackerRepo contract.HandoffTrackerRepository
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Trackers stored in Postgres", err)
		trackerRepo = implementation.NewHandoffTrackerRepository(db)
	} else {
		trackerRepo = redisrepo.NewTrackerRepository(rdb)
	}

	// In-process hot cache in front of the tracker store
	trackerCache := memory.NewTrackerCache()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Dialogue.EndedTopic, pubSub)
	insightService := service.NewInsightService(
		pubSub,
		cfg.Dialogue.EndedTopic,
		uowFactory,
		cfg.Dialogue.QualityDeltas,
		natsPub,
		sysLogger,
	)
	monitorService := service.NewMonitorService(natsSub, sysLogger)

	dialogueService := service.NewDialogueService(
		uowFactory,
		trackerRepo,
		trackerCache,
		embeddingProvider,
		llmProvider,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Dialogue,
	)

	// 6. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(dialogueService),
		InsightService:      insightService,
		MonitorService:      monitorService,
		DialogueService:     dialogueService,
	}
}
