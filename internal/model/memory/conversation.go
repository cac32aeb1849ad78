package memory

import "time"

// Conversation persists a single user/assistant exchange for recall.
type Conversation struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	Emotion     string    `json:"emotion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Stats summarizes stored items per user.
type Stats struct {
	MemoryCount       int `json:"memory_count"`
	ConversationCount int `json:"conversation_count"`
	TotalItems        int `json:"total_items"`
}
