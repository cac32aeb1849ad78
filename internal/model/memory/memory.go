package memory

import "time"

// Memory is a long-term fact remembered about a user.
type Memory struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ScoredMemory pairs a memory with its search relevance.
type ScoredMemory struct {
	Memory
	Score float64 `json:"score"`
}
