package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-assistant-be/internal/config"
	"storefront-assistant-be/internal/constant"
	"storefront-assistant-be/internal/dto"
	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/pkg/logger"
	"storefront-assistant-be/internal/repository/contract"
	"storefront-assistant-be/internal/repository/memory"
	"storefront-assistant-be/internal/repository/specification"
	"storefront-assistant-be/internal/repository/unitofwork"
	"storefront-assistant-be/pkg/dialogue"
	"storefront-assistant-be/pkg/dialogue/discovery"
	"storefront-assistant-be/pkg/dialogue/handoff"
	"storefront-assistant-be/pkg/dialogue/intent"
	"storefront-assistant-be/pkg/dialogue/locale"
	"storefront-assistant-be/pkg/dialogue/retrieval"
	"storefront-assistant-be/pkg/dialogue/state"
	"storefront-assistant-be/pkg/embedding"
	"storefront-assistant-be/pkg/events"
	"storefront-assistant-be/pkg/llm"
	pkgNats "storefront-assistant-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDialogueService interface {
	SendMessage(ctx context.Context, storeId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	EndConversation(ctx context.Context, storeId uuid.UUID, req *dto.EndConversationRequest) (*dto.EndConversationResponse, error)
	GetHistory(ctx context.Context, storeId uuid.UUID, conversationId uuid.UUID) ([]*dto.GetHistoryResponse, error)
	GetQuality(ctx context.Context, storeId uuid.UUID, conversationId uuid.UUID) (*dto.GetQualityResponse, error)
	EndInactiveConversations(ctx context.Context) (int, error)
}

const (
	llmCallTimeout       = 25 * time.Second
	embeddingCallTimeout = 10 * time.Second
	candidateFetchLimit  = 24

	handoffReplySv = "Jag förstår, jag kopplar dig till vårt team så hjälper de dig vidare."
	handoffReplyEn = "I understand, let me connect you with our team so they can help you further."
)

type dialogueService struct {
	uowFactory        unitofwork.RepositoryFactory
	trackerRepo       contract.HandoffTrackerRepository
	trackerCache      *memory.TrackerCache
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	classifier        *intent.Classifier
	gate              *discovery.Gate
	retriever         *retrieval.Retriever
	evaluator         *handoff.Evaluator
	publisherService  IPublisherService
	natsPub           *pkgNats.Publisher
	logger            logger.ILogger
	cfg               config.DialogueConfig
}

func NewDialogueService(
	uowFactory unitofwork.RepositoryFactory,
	trackerRepo contract.HandoffTrackerRepository,
	trackerCache *memory.TrackerCache,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	publisherService IPublisherService,
	natsPub *pkgNats.Publisher,
	sysLogger logger.ILogger,
	cfg config.DialogueConfig,
) IDialogueService {
	return &dialogueService{
		uowFactory:        uowFactory,
		trackerRepo:       trackerRepo,
		trackerCache:      trackerCache,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		classifier:        intent.NewClassifier(intent.NewResolver(llmProvider)),
		gate: discovery.NewGate(discovery.Config{
			MinExchanges:           cfg.MinExchanges,
			MinNeedsScore:          cfg.MinNeedsScore,
			NeedsScoreOverrideTurn: cfg.NeedsScoreOverrideTurn,
		}),
		retriever: retrieval.NewRetriever(retrieval.Config{
			ProductThreshold:       cfg.ProductThreshold,
			VisualProductThreshold: cfg.VisualThreshold,
			PageThreshold:          cfg.PageThreshold,
			LowConfidenceScore:     cfg.LowConfidenceScore,
			CardThreshold:          cfg.CardThreshold,
			MaxCards:               cfg.MaxCards,
		}),
		evaluator:        handoff.NewEvaluator(cfg.RiskWeights),
		publisherService: publisherService,
		natsPub:          natsPub,
		logger:           sysLogger,
		cfg:              cfg,
	}
}

func (s *dialogueService) SendMessage(ctx context.Context, storeId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.resolveConversation(ctx, uow, storeId, req.SessionKey)
	if err != nil {
		return nil, err
	}

	historyEntities, err := uow.MessageRepository().FindByConversationId(ctx, conversation.Id)
	if err != nil {
		return nil, err
	}
	history := toDialogueHistory(historyEntities)

	lang := locale.Language(req.Language)
	if req.Language == "" {
		lang = locale.Detect(req.Message)
	}

	convCtx := buildIntentContext(history)
	classifyCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	res := s.classifier.Classify(classifyCtx, req.Message, convCtx)
	cancel()

	st := state.Build(history, req.Message, res, lang)

	tracker := s.loadTracker(ctx, conversation.Id)
	evaluation, updatedTracker := s.evaluator.Evaluate(req.Message, st, res, tracker, lang)
	s.saveTracker(ctx, conversation.Id, updatedTracker)

	if evaluation.Needed {
		return s.respondWithHandoff(ctx, uow, conversation, req.Message, res, st, evaluation, lang)
	}

	include := s.gate.ShouldIncludeProducts(st, res, history, req.Message)

	var ranking retrieval.Ranking
	if include.Include {
		ranking, err = s.retrieve(ctx, uow, storeId, req.Message, res)
		if err != nil {
			// Retrieval failure degrades to a contextless reply.
			s.logger.Warn("dialogue", "retrieval failed, replying without product context", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
			ranking = retrieval.Ranking{}
		}
	}

	reply, err := s.generateReply(ctx, history, req.Message, st, ranking, lang)
	if err != nil {
		return nil, err
	}

	cardDecision := s.gate.ShouldAllowProductCards(st, res, history, req.Message, reply)
	reply = cardDecision.Response

	var cards []dto.ProductCardDTO
	var shownIds []string
	if cardDecision.Allow {
		for _, scored := range s.retriever.EligibleCards(ranking.Products) {
			cards = append(cards, dto.ProductCardDTO{
				Id:         scored.Item.ID,
				Title:      scored.Item.Title,
				Price:      scored.Item.Price,
				Link:       scored.Item.Link,
				ImageURL:   scored.Item.ImageURL,
				Similarity: scored.Similarity,
			})
			shownIds = append(shownIds, scored.Item.ID)
		}
	}

	if err := s.persistTurn(ctx, uow, conversation, req.Message, reply, shownIds); err != nil {
		return nil, err
	}

	discoveryDecision := s.gate.IsDiscoveryComplete(st, history, req.Message)

	response := &dto.SendMessageResponse{
		ConversationId:    conversation.Id,
		Reply:             reply,
		Intent:            string(res.Primary),
		Confidence:        res.Confidence,
		JourneyStage:      string(st.JourneyStage),
		DiscoveryComplete: discoveryDecision.Complete,
		ProductCards:      cards,
		HandoffSuggested:  evaluation.SuggestHandoff,
		Warning:           discoveryDecision.Warning,
	}
	if evaluation.SuggestHandoff {
		response.HandoffReason = string(evaluation.Reason)
	}
	return response, nil
}

// resolveConversation finds the session's conversation, re-activating
// an ended one when the same visitor comes back, or creates a new one.
func (s *dialogueService) resolveConversation(ctx context.Context, uow unitofwork.UnitOfWork, storeId uuid.UUID, sessionKey string) (*entity.Conversation, error) {
	repo := uow.ConversationRepository()

	conversation, err := repo.FindOne(ctx, specification.BySession{StoreId: storeId, SessionKey: sessionKey})
	if err != nil {
		return nil, err
	}

	if conversation == nil {
		conversation = &entity.Conversation{
			StoreId:    storeId,
			SessionKey: sessionKey,
			Status:     entity.StatusActive,
		}
		if err := repo.Create(ctx, conversation); err != nil {
			return nil, err
		}
		return conversation, nil
	}

	if conversation.IsResumable() {
		if err := conversation.TransitionTo(entity.StatusActive); err != nil {
			return nil, err
		}
		if err := repo.Update(ctx, conversation); err != nil {
			return nil, err
		}
		s.logger.Info("dialogue", "conversation resumed", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
		})
	}

	return conversation, nil
}

func (s *dialogueService) loadTracker(ctx context.Context, conversationId uuid.UUID) handoff.Tracker {
	if cached, found := s.trackerCache.Get(conversationId); found {
		return cached.Tracker
	}

	stored, err := s.trackerRepo.FindByConversationId(ctx, conversationId)
	if err != nil {
		s.logger.Warn("dialogue", "tracker load failed, starting fresh", map[string]interface{}{
			"conversation_id": conversationId.String(),
			"error":           err.Error(),
		})
		return handoff.Tracker{}
	}
	if stored == nil {
		return handoff.Tracker{}
	}
	return stored.Tracker
}

func (s *dialogueService) saveTracker(ctx context.Context, conversationId uuid.UUID, tracker handoff.Tracker) {
	record := &entity.HandoffTracker{
		ConversationId: conversationId,
		Tracker:        tracker,
		UpdatedAt:      time.Now(),
	}
	s.trackerCache.Save(record)
	if err := s.trackerRepo.Save(ctx, record); err != nil {
		s.logger.Warn("dialogue", "tracker save failed", map[string]interface{}{
			"conversation_id": conversationId.String(),
			"error":           err.Error(),
		})
	}
}

func (s *dialogueService) respondWithHandoff(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, message string, res intent.Result, st state.State, evaluation handoff.Evaluation, lang locale.Language) (*dto.SendMessageResponse, error) {
	reply := handoffReplyEn
	if lang == locale.Swedish {
		reply = handoffReplySv
	}

	if s.natsPub != nil {
		event := events.NewHandoffRequested(conversation.Id.String(), string(evaluation.Reason), evaluation.Confidence)
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.logger.Error("dialogue", "failed to publish handoff event", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	if err := s.persistTurn(ctx, uow, conversation, message, reply, nil); err != nil {
		return nil, err
	}

	s.logger.Info("dialogue", "handoff triggered", map[string]interface{}{
		"conversation_id": conversation.Id.String(),
		"reason":          string(evaluation.Reason),
	})

	return &dto.SendMessageResponse{
		ConversationId: conversation.Id,
		Reply:          reply,
		Intent:         string(res.Primary),
		Confidence:     res.Confidence,
		JourneyStage:   string(st.JourneyStage),
		HandoffNeeded:  true,
		HandoffReason:  string(evaluation.Reason),
	}, nil
}

func (s *dialogueService) retrieve(ctx context.Context, uow unitofwork.UnitOfWork, storeId uuid.UUID, message string, res intent.Result) (retrieval.Ranking, error) {
	embedCtx, cancel := context.WithTimeout(ctx, embeddingCallTimeout)
	defer cancel()

	queryVector, err := s.embeddingProvider.Generate(embedCtx, message, embedding.TaskRetrievalQuery)
	if err != nil {
		return retrieval.Ranking{}, err
	}

	kind := queryKindFor(res)

	productThreshold := s.cfg.ProductThreshold
	if kind.Visual {
		productThreshold = s.cfg.VisualThreshold
	}

	catalogRepo := uow.CatalogItemRepository()
	productCandidates, err := catalogRepo.SearchSimilarWithScore(ctx, queryVector, storeId, entity.CatalogItemProduct, productThreshold, candidateFetchLimit)
	if err != nil {
		return retrieval.Ranking{}, err
	}
	pageCandidates, err := catalogRepo.SearchSimilarWithScore(ctx, queryVector, storeId, entity.CatalogItemPage, s.cfg.PageThreshold, candidateFetchLimit)
	if err != nil {
		return retrieval.Ranking{}, err
	}

	items := make([]retrieval.Item, 0, len(productCandidates)+len(pageCandidates))
	for _, c := range append(productCandidates, pageCandidates...) {
		items = append(items, toRetrievalItem(c.Item))
	}

	return s.retriever.Rank(queryVector, items, kind), nil
}

func (s *dialogueService) generateReply(ctx context.Context, history []dialogue.Message, message string, st state.State, ranking retrieval.Ranking, lang locale.Language) (string, error) {
	chatHistory := []llm.Message{
		{Role: constant.MessageRoleSystem, Content: constant.ReplySystemPromptV2},
	}

	contextBlock := buildContextBlock(st, ranking, lang)
	if contextBlock != "" {
		chatHistory = append(chatHistory, llm.Message{Role: constant.MessageRoleSystem, Content: contextBlock})
	}

	for _, m := range history {
		chatHistory = append(chatHistory, llm.Message{Role: m.Role, Content: m.Content})
	}
	chatHistory = append(chatHistory, llm.Message{Role: constant.MessageRoleUser, Content: message})

	llmCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	reply, err := s.llmProvider.Chat(llmCtx, chatHistory, llm.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("reply generation failed: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func (s *dialogueService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, userMessage, reply string, shownIds []string) error {
	msgRepo := uow.MessageRepository()

	userMsg := &entity.Message{
		ConversationId: conversation.Id,
		Role:           dialogue.RoleUser,
		Content:        userMessage,
	}
	if err := msgRepo.Create(ctx, userMsg); err != nil {
		return err
	}

	assistantMsg := &entity.Message{
		ConversationId: conversation.Id,
		Role:           dialogue.RoleAssistant,
		Content:        reply,
		ProductsShown:  shownIds,
	}
	if err := msgRepo.Create(ctx, assistantMsg); err != nil {
		return err
	}

	conversation.MessageCount += 2
	return uow.ConversationRepository().Update(ctx, conversation)
}

func (s *dialogueService) EndConversation(ctx context.Context, storeId uuid.UUID, req *dto.EndConversationRequest) (*dto.EndConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ConversationRepository()

	conversation, err := repo.FindOne(ctx, specification.BySession{StoreId: storeId, SessionKey: req.SessionKey})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Conversation not found")
	}

	if conversation.Status == entity.StatusActive {
		if err := conversation.TransitionTo(entity.StatusEnded); err != nil {
			return nil, err
		}
		if err := repo.Update(ctx, conversation); err != nil {
			return nil, err
		}
		if err := s.publisherService.PublishConversationEnded(ctx, conversation.Id); err != nil {
			s.logger.Error("dialogue", "failed to publish conversation ended", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	return &dto.EndConversationResponse{
		ConversationId: conversation.Id,
		Status:         string(conversation.Status),
	}, nil
}

func (s *dialogueService) GetHistory(ctx context.Context, storeId uuid.UUID, conversationId uuid.UUID) ([]*dto.GetHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil || conversation.StoreId != storeId {
		return nil, fiber.NewError(fiber.StatusNotFound, "Conversation not found")
	}

	messages, err := uow.MessageRepository().FindByConversationId(ctx, conversationId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetHistoryResponse, len(messages))
	for i, m := range messages {
		result[i] = &dto.GetHistoryResponse{
			Id:            m.Id,
			Role:          m.Role,
			Content:       m.Content,
			ProductsShown: m.ProductsShown,
			CreatedAt:     m.CreatedAt,
		}
	}
	return result, nil
}

func (s *dialogueService) GetQuality(ctx context.Context, storeId uuid.UUID, conversationId uuid.UUID) (*dto.GetQualityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil || conversation.StoreId != storeId {
		return nil, fiber.NewError(fiber.StatusNotFound, "Conversation not found")
	}

	score, err := uow.QualityScoreRepository().FindByConversationId(ctx, conversationId)
	if err != nil {
		return nil, err
	}
	if score == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Conversation not scored yet")
	}

	return &dto.GetQualityResponse{
		ConversationId: score.ConversationId,
		Score:          score.Score,
		Breakdown:      score.Breakdown,
		Flagged:        score.Flagged,
		FlagReasons:    score.FlagReasons,
		CreatedAt:      score.CreatedAt,
	}, nil
}

// EndInactiveConversations sweeps active conversations idle past the
// configured window and pushes them through the normal ended flow.
func (s *dialogueService) EndInactiveConversations(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ConversationRepository()

	cutoff := time.Now().Add(-time.Duration(s.cfg.InactivityMinutes) * time.Minute)
	stale, err := repo.FindInactive(ctx, cutoff, 100)
	if err != nil {
		return 0, err
	}

	ended := 0
	for _, conversation := range stale {
		if err := conversation.TransitionTo(entity.StatusEnded); err != nil {
			continue
		}
		if err := repo.Update(ctx, conversation); err != nil {
			s.logger.Error("dialogue", "failed to end inactive conversation", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
			continue
		}
		if err := s.publisherService.PublishConversationEnded(ctx, conversation.Id); err != nil {
			s.logger.Error("dialogue", "failed to publish conversation ended", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
		}
		ended++
	}
	return ended, nil
}

// Helpers

func toDialogueHistory(messages []*entity.Message) []dialogue.Message {
	history := make([]dialogue.Message, len(messages))
	for i, m := range messages {
		history[i] = dialogue.Message{
			Role:          m.Role,
			Content:       m.Content,
			ProductsShown: m.ProductsShown,
			Timestamp:     m.CreatedAt,
		}
	}
	return history
}

func buildIntentContext(history []dialogue.Message) intent.Context {
	ctx := intent.Context{
		TurnCount: dialogue.CountByRole(history, dialogue.RoleUser),
	}
	if last := dialogue.LastByRole(history, dialogue.RoleAssistant); last != nil {
		ctx.LastAssistantMessage = last.Content
		ctx.LastProducts = last.ProductsShown
		if strings.Contains(last.Content, "?") {
			ctx.LastQuestion = last.Content
		}
	}
	return ctx
}

func queryKindFor(res intent.Result) retrieval.QueryKind {
	switch res.Primary {
	case intent.TagVisualSearch:
		return retrieval.QueryKind{Visual: true}
	case intent.TagShippingInfo, intent.TagReturnsInfo, intent.TagStoreInfo:
		return retrieval.QueryKind{GeneralInfo: true}
	case intent.TagProductDiscovery, intent.TagProductInfo, intent.TagPriceCheck,
		intent.TagAvailability, intent.TagPurchase, intent.TagCompare,
		intent.TagGiftInquiry:
		return retrieval.QueryKind{ProductQuery: true}
	default:
		return retrieval.QueryKind{}
	}
}

func toRetrievalItem(item *entity.CatalogItem) retrieval.Item {
	return retrieval.Item{
		ID:        item.Id.String(),
		Type:      retrieval.ItemType(item.Type),
		Title:     item.Title,
		Text:      item.Text,
		Price:     item.Price,
		InStock:   item.InStock,
		Link:      item.Link,
		ImageURL:  item.ImageURL,
		Embedding: item.Embedding,
	}
}

// buildContextBlock renders the grounded CONTEXT section of the prompt.
func buildContextBlock(st state.State, ranking retrieval.Ranking, lang locale.Language) string {
	var sb strings.Builder

	sb.WriteString("CONTEXT\n")
	sb.WriteString(fmt.Sprintf("Language: %s\n", lang))
	if st.ContextSummary != "" {
		sb.WriteString(fmt.Sprintf("Conversation so far: %s\n", st.ContextSummary))
	}

	if len(ranking.Products) == 0 && len(ranking.Pages) == 0 {
		if st.ContextSummary == "" {
			return ""
		}
		return sb.String()
	}

	if ranking.LowConfidence {
		sb.WriteString("Note: matches are weak, present them as suggestions only.\n")
	}

	if len(ranking.Products) > 0 {
		sb.WriteString("\nPRODUCTS:\n")
		for _, p := range ranking.Products {
			stock := "in stock"
			if !p.Item.InStock {
				stock = "out of stock"
			}
			sb.WriteString(fmt.Sprintf("- [id:%s] %s | %.0f | %s\n  %s\n", p.Item.ID, p.Item.Title, p.Item.Price, stock, truncate(p.Item.Text, 200)))
		}
	}

	if len(ranking.Pages) > 0 {
		sb.WriteString("\nSTORE PAGES:\n")
		for _, p := range ranking.Pages {
			sb.WriteString(fmt.Sprintf("- %s\n  %s\n", p.Item.Title, truncate(p.Item.Text, 300)))
		}
	}

	return sb.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
