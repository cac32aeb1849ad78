package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raspverry/desktop-partner/internal/model/memory"
)

var (
	ErrUserRequired    = errors.New("user id is required")
	ErrContentRequired = errors.New("content is required")
	ErrMemoryNotFound  = errors.New("memory not found")
)

// DefaultSearchLimit bounds search results when the caller passes none.
const DefaultSearchLimit = 10

// Service keeps memories and conversation history per user. Storage is
// in-memory maps, same as the rest of the backend state; search ranks by
// keyword overlap instead of embeddings until a vector store lands.
type Service struct {
	mu            sync.RWMutex
	memories      map[string][]memory.Memory
	conversations map[string][]memory.Conversation
}

// NewService bootstraps the in-memory store.
func NewService() *Service {
	return &Service{
		memories:      make(map[string][]memory.Memory),
		conversations: make(map[string][]memory.Conversation),
	}
}

// StoreMemory saves a memory item for the user and returns it with its
// generated identifier.
func (s *Service) StoreMemory(_ context.Context, userID, content string, metadata map[string]string) (memory.Memory, error) {
	if strings.TrimSpace(userID) == "" {
		return memory.Memory{}, ErrUserRequired
	}
	if strings.TrimSpace(content) == "" {
		return memory.Memory{}, ErrContentRequired
	}

	item := memory.Memory{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.memories[userID] = append(s.memories[userID], item)
	s.mu.Unlock()

	return item, nil
}

// SearchMemories returns the user's memories ranked by how many query terms
// their content contains. Items with no overlap are omitted.
func (s *Service) SearchMemories(_ context.Context, userID, query string, limit int) []memory.ScoredMemory {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	terms := strings.Fields(strings.ToLower(query))

	s.mu.RLock()
	items := s.memories[userID]
	scored := make([]memory.ScoredMemory, 0, len(items))
	for _, item := range items {
		score := overlapScore(strings.ToLower(item.Content), terms)
		if score <= 0 {
			continue
		}
		scored = append(scored, memory.ScoredMemory{Memory: item, Score: score})
	}
	s.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// StoreConversation appends an exchange to the user's history.
func (s *Service) StoreConversation(_ context.Context, conv memory.Conversation) (memory.Conversation, error) {
	if strings.TrimSpace(conv.UserID) == "" {
		return memory.Conversation{}, ErrUserRequired
	}

	conv.ID = uuid.NewString()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.conversations[conv.UserID] = append(s.conversations[conv.UserID], conv)
	s.mu.Unlock()

	return conv, nil
}

// Stats counts stored items for the user.
func (s *Service) Stats(_ context.Context, userID string) memory.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memories := len(s.memories[userID])
	conversations := len(s.conversations[userID])
	return memory.Stats{
		MemoryCount:       memories,
		ConversationCount: conversations,
		TotalItems:        memories + conversations,
	}
}

// DeleteMemory removes a memory by identifier.
func (s *Service) DeleteMemory(_ context.Context, memoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, items := range s.memories {
		for i, item := range items {
			if item.ID != memoryID {
				continue
			}
			s.memories[userID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return ErrMemoryNotFound
}

// overlapScore reports the fraction of query terms contained in the text.
func overlapScore(text string, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}

	matched := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}
