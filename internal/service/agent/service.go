package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/raspverry/desktop-partner/internal/analysis/emotion"
	"github.com/raspverry/desktop-partner/internal/config"
	memorymodel "github.com/raspverry/desktop-partner/internal/model/memory"
	memoryservice "github.com/raspverry/desktop-partner/internal/service/memory"
)

// Settings are the runtime-adjustable agent parameters. Model, temperature
// and max tokens seed from the environment and are applied when the chat
// model is constructed; memory limit takes effect per request.
type Settings struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	MemoryLimit int     `json:"memory_limit"`
}

// ChatResult is the outcome of a single agent exchange.
type ChatResult struct {
	Response   string
	Emotion    string
	Confidence float32
	MemoryUsed []memorymodel.ScoredMemory
}

// Service runs partner conversations through the configured chat model,
// grounding each reply in the user's stored memories.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
	memories  *memoryservice.Service

	mu       sync.RWMutex
	settings Settings
}

// ChatModel returns the underlying chat model.
func (s *Service) ChatModel() model.ChatModel {
	return s.chatModel
}

// NewService builds the chat chain from the Ark configuration.
func NewService(ctx context.Context, memories *memoryservice.Service, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile agent chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		chain:     runnable,
		memories:  memories,
		settings:  defaultSettings(cfg),
	}, nil
}

func defaultSettings(cfg config.AIConfig) Settings {
	settings := Settings{
		Model:       cfg.Model,
		Temperature: 0.7,
		MaxTokens:   500,
		MemoryLimit: cfg.MemoryLimit,
	}
	if cfg.Temperature != nil {
		settings.Temperature = *cfg.Temperature
	}
	if cfg.MaxTokens != nil {
		settings.MaxTokens = *cfg.MaxTokens
	}
	if settings.MemoryLimit < 1 {
		settings.MemoryLimit = 5
	}
	return settings
}

// Settings returns the current agent settings.
func (s *Service) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings replaces the agent settings, clamping the memory limit to
// at least one item.
func (s *Service) UpdateSettings(settings Settings) Settings {
	if settings.MemoryLimit < 1 {
		settings.MemoryLimit = 1
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return settings
}

// Chat generates a partner reply for the user message, classifies its
// emotion and records the exchange in the conversation history.
func (s *Service) Chat(ctx context.Context, userID, userMessage string) (ChatResult, error) {
	memories := s.relevantMemories(ctx, userID, userMessage)

	response, err := s.chain.Invoke(ctx, s.buildChainInput(memories, userMessage))
	if err != nil {
		return ChatResult{}, fmt.Errorf("failed to run agent chain: %w", err)
	}

	detected := analysis.Analyze(response.Content)
	result := ChatResult{
		Response:   response.Content,
		Emotion:    string(detected.Emotion),
		Confidence: detected.Confidence,
		MemoryUsed: memories,
	}

	conv := memorymodel.Conversation{
		UserID:      userID,
		UserMessage: userMessage,
		AIResponse:  result.Response,
		Emotion:     result.Emotion,
	}
	if _, err := s.memories.StoreConversation(ctx, conv); err != nil {
		log.Printf("[agent] failed to store conversation for user=%s: %v", userID, err)
	}

	log.Printf("[agent] generated response for user=%s, length=%d", userID, len(result.Response))
	return result, nil
}

// Stream returns the model output as a chunk stream for SSE delivery. The
// exchange is not recorded; the frontend posts the assembled reply back
// through the conversation endpoint.
func (s *Service) Stream(ctx context.Context, userID, userMessage string) (*schema.StreamReader[*schema.Message], error) {
	memories := s.relevantMemories(ctx, userID, userMessage)

	stream, err := s.chain.Stream(ctx, s.buildChainInput(memories, userMessage))
	if err != nil {
		return nil, fmt.Errorf("failed to stream agent chain output: %w", err)
	}
	return stream, nil
}

func (s *Service) relevantMemories(ctx context.Context, userID, userMessage string) []memorymodel.ScoredMemory {
	limit := s.Settings().MemoryLimit
	return s.memories.SearchMemories(ctx, userID, userMessage, limit)
}

func (s *Service) buildChainInput(memories []memorymodel.ScoredMemory, userMessage string) map[string]any {
	return map[string]any{
		"system": buildSystemPrompt(memories),
		"query":  strings.TrimSpace(userMessage),
	}
}
