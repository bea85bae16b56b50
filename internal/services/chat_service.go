package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"quote-service/internal/ai/gemini"
	"quote-service/internal/models"
	"quote-service/internal/pricing"
	"quote-service/internal/repository"
	utils "quote-service/shared/utils"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	maxChatMessageLength = 2000
	completedKey         = "completed"
	insuranceTypeKey     = "insuranceType"
)

type IChatService interface {
	CreateSession(ctx context.Context, req models.CreateChatSessionRequest) (*models.ChatSession, error)
	SendMessage(ctx context.Context, sessionID, message string) (*models.ChatReply, error)
	GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type ChatService struct {
	sessions repository.IChatSessionRepository
	products IInsuranceTypeService
	quotes   *QuoteService
	model    ChatModel
}

// NewChatService builds the guided quote conversation. A nil model makes every
// turn answer with the fallback message.
func NewChatService(
	sessions repository.IChatSessionRepository,
	products IInsuranceTypeService,
	quotes *QuoteService,
	model ChatModel,
) IChatService {
	return &ChatService{
		sessions: sessions,
		products: products,
		quotes:   quotes,
		model:    model,
	}
}

// modelReply is the JSON object the model is instructed to answer with.
type modelReply struct {
	Answer        string                `json:"answer"`
	CollectedData pricing.CollectedData `json:"collectedData"`
	Completed     any                   `json:"completed"`
}

func (s *ChatService) CreateSession(ctx context.Context, req models.CreateChatSessionRequest) (*models.ChatSession, error) {
	company, product, err := s.products.GetProductDetails(ctx, req.CompanyID, req.InsuranceType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &models.ChatSession{
		ID:            uuid.NewString(),
		CompanyID:     company.ID,
		CompanyName:   company.Name,
		InsuranceType: product.Type,
		InsuranceName: product.DisplayName,
		Messages: []models.ChatMessage{{
			Role:      models.ChatRoleAssistant,
			Content:   greeting(product),
			CreatedAt: now,
		}},
		CollectedData: pricing.CollectedData{insuranceTypeKey: product.Type},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save chat session: %w", err)
	}

	slog.Info("Chat session created", "session_id", session.ID, "company_id", company.ID, "insurance_type", product.Type)
	return session, nil
}

// SendMessage runs one conversation turn and prices the quote once every
// field has been collected.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, message string) (*models.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, badRequest("message is required")
	}
	if len(message) > maxChatMessageLength {
		return nil, badRequest("message must be at most %d characters", maxChatMessageLength)
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, fmt.Errorf("%w: chat session %s is already completed", ErrConflict, sessionID)
	}

	_, product, err := s.products.GetProductDetails(ctx, session.CompanyID, session.InsuranceType)
	if err != nil {
		return nil, err
	}

	if s.model == nil {
		return s.fallbackReply(session), nil
	}
	raw, err := s.model.Chat(ctx, systemPrompt(session, product), session.Messages, message)
	if err != nil {
		slog.Error("chat model failed", "session_id", session.ID, "error", err)
		return s.fallbackReply(session), nil
	}

	reply, parsed := parseModelReply(raw)
	if !parsed {
		slog.Warn("chat model answered outside JSON", "session_id", session.ID)
	}
	completed := mergeCollectedData(session.CollectedData, reply.CollectedData)
	completed = completed || truthy(reply.Completed) || allFieldsCollected(product, session.CollectedData)

	now := time.Now()
	session.Messages = append(session.Messages,
		models.ChatMessage{Role: models.ChatRoleUser, Content: message, CreatedAt: now},
		models.ChatMessage{Role: models.ChatRoleAssistant, Content: reply.Answer, CreatedAt: now},
	)
	session.UpdatedAt = now

	if completed {
		quote, err := s.quotes.quote(ctx, models.CreateQuoteRequest{
			CompanyID:     session.CompanyID,
			InsuranceType: session.InsuranceType,
			CollectedData: session.CollectedData,
		}, QuoteSourceChat)
		if err != nil {
			return nil, err
		}
		session.Completed = true
		session.Quote = quote
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save chat session: %w", err)
	}

	return &models.ChatReply{
		SessionID:     session.ID,
		Answer:        reply.Answer,
		CollectedData: session.CollectedData,
		Completed:     session.Completed,
		Quote:         session.Quote,
	}, nil
}

func (s *ChatService) GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, badRequest("sessionId is required")
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fromRepository(err)
	}
	if session.CollectedData == nil {
		session.CollectedData = pricing.CollectedData{}
	}
	return session, nil
}

func (s *ChatService) DeleteSession(ctx context.Context, sessionID string) error {
	return fromRepository(s.sessions.Delete(ctx, sessionID))
}

func (s *ChatService) fallbackReply(session *models.ChatSession) *models.ChatReply {
	return &models.ChatReply{
		SessionID:     session.ID,
		Answer:        gemini.ChatFallbackAnswer,
		CollectedData: session.CollectedData,
	}
}

func greeting(product pricing.InsuranceProduct) string {
	return fmt.Sprintf("Great! I'll help you get a quote for %s. Let me ask you a few questions to calculate your personalized quote.", product.DisplayName)
}

func systemPrompt(session *models.ChatSession, product pricing.InsuranceProduct) string {
	prompt := fmt.Sprintf(gemini.ChatSystemPromptTemplate,
		session.CompanyName, product.DisplayName, describeFields(product), product.Type)

	collected, err := json.Marshal(session.CollectedData)
	if err != nil {
		return prompt
	}
	return prompt + "\n\nData collected so far: " + string(collected)
}

// describeFields renders the numbered question list for the prompt.
func describeFields(product pricing.InsuranceProduct) string {
	var b strings.Builder
	for i, field := range product.Fields {
		fmt.Fprintf(&b, "%d. %s (key %q)", i+1, field.Label, field.Name)
		switch rule := field.Rule.(type) {
		case pricing.SelectRule:
			values := make([]string, 0, len(rule.Options))
			for _, opt := range rule.Options {
				values = append(values, opt.Value)
			}
			fmt.Fprintf(&b, ": one of %s", strings.Join(values, ", "))
		case pricing.RangeRule:
			b.WriteString(": a number")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// parseModelReply accepts a bare JSON object, a fenced one, or one embedded in
// prose. Anything else becomes the answer text with no data.
func parseModelReply(raw string) (modelReply, bool) {
	text := utils.StripCodeFence(raw)

	var reply modelReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return modelReply{Answer: strings.TrimSpace(raw)}, false
		}
		reply = modelReply{}
		if err := json.Unmarshal([]byte(text[start:end+1]), &reply); err != nil {
			return modelReply{Answer: strings.TrimSpace(raw)}, false
		}
	}
	if strings.TrimSpace(reply.Answer) == "" {
		reply.Answer = strings.TrimSpace(raw)
	}
	return reply, true
}

// mergeCollectedData copies supplied values into dst and reports whether the
// update carried a completion flag.
func mergeCollectedData(dst, update pricing.CollectedData) bool {
	completed := false
	for key, value := range update {
		if key == completedKey {
			completed = truthy(value)
			continue
		}
		if pricing.IsAbsent(value) {
			continue
		}
		dst[key] = value
	}
	return completed
}

func allFieldsCollected(product pricing.InsuranceProduct, data pricing.CollectedData) bool {
	if len(product.Fields) == 0 {
		return false
	}
	for _, field := range product.Fields {
		if pricing.IsAbsent(data[field.Name]) {
			return false
		}
	}
	return true
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	}
	return false
}
