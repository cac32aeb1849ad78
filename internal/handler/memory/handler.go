package memory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	memorymodel "github.com/raspverry/desktop-partner/internal/model/memory"
	memoryservice "github.com/raspverry/desktop-partner/internal/service/memory"
	"github.com/raspverry/desktop-partner/pkg/utils"
)

// Handler exposes the memory store endpoints.
type Handler struct {
	memories *memoryservice.Service
}

// New creates the memory handler.
func New(memories *memoryservice.Service) *Handler {
	return &Handler{memories: memories}
}

// RegisterRoutes wires the memory endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/memory/store", h.handleStoreMemory)
	r.Post("/memory/search", h.handleSearchMemories)
	r.Get("/memory/stats/{userID}", h.handleStats)
	r.Delete("/memory/{memoryID}", h.handleDeleteMemory)
	r.Post("/conversation/store", h.handleStoreConversation)
}

// handleStoreMemory saves a memory item for a user.
func (h *Handler) handleStoreMemory(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID   string            `json:"user_id"`
		Content  string            `json:"content"`
		Metadata map[string]string `json:"metadata"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.memories.StoreMemory(r.Context(), payload.UserID, payload.Content, payload.Metadata)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, item)
}

// handleSearchMemories returns memories ranked by relevance to the query.
func (h *Handler) handleSearchMemories(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query  string `json:"query"`
		Limit  int    `json:"limit"`
		UserID string `json:"user_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.UserID == "" {
		utils.RespondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	memories := h.memories.SearchMemories(r.Context(), payload.UserID, payload.Query, payload.Limit)
	if memories == nil {
		memories = []memorymodel.ScoredMemory{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"memories": memories,
		"total":    len(memories),
	})
}

// handleStats reports per-user item counts.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	utils.RespondJSON(w, http.StatusOK, h.memories.Stats(r.Context(), userID))
}

// handleDeleteMemory removes a memory by identifier.
func (h *Handler) handleDeleteMemory(w http.ResponseWriter, r *http.Request) {
	memoryID := chi.URLParam(r, "memoryID")

	if err := h.memories.DeleteMemory(r.Context(), memoryID); err != nil {
		if errors.Is(err, memoryservice.ErrMemoryNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleStoreConversation records a user/assistant exchange.
func (h *Handler) handleStoreConversation(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID      string `json:"user_id"`
		UserMessage string `json:"user_message"`
		AIResponse  string `json:"ai_response"`
		Emotion     string `json:"emotion"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv := memorymodel.Conversation{
		UserID:      payload.UserID,
		UserMessage: payload.UserMessage,
		AIResponse:  payload.AIResponse,
		Emotion:     payload.Emotion,
	}

	stored, err := h.memories.StoreConversation(r.Context(), conv)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, stored)
}
