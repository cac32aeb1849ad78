package agent

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	memorymodel "github.com/raspverry/desktop-partner/internal/model/memory"
	agentservice "github.com/raspverry/desktop-partner/internal/service/agent"
	"github.com/raspverry/desktop-partner/pkg/utils"
)

// Handler exposes the partner agent endpoints. The service is nil when no
// model credentials are configured; endpoints then answer 503 while the
// stub commands stay available.
type Handler struct {
	agent *agentservice.Service
}

// New creates the agent handler.
func New(agent *agentservice.Service) *Handler {
	return &Handler{agent: agent}
}

// RegisterRoutes wires the agent endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/agent/chat", h.handleChat)
	r.Get("/agent/stream", h.handleStream)
	r.Get("/agent/config", h.handleGetConfig)
	r.Put("/agent/config", h.handleUpdateConfig)
}

type chatRequest struct {
	UserMessage string `json:"user_message"`
	UserID      string `json:"user_id"`
}

type chatResponse struct {
	Response   string                     `json:"response"`
	Emotion    string                     `json:"emotion"`
	Confidence float32                    `json:"confidence"`
	MemoryUsed []memorymodel.ScoredMemory `json:"memory_used"`
}

// handleChat runs a full request/response exchange with the agent.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if h.agent == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "agent service unavailable")
		return
	}

	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.UserMessage == "" {
		utils.RespondError(w, http.StatusBadRequest, "user_message is required")
		return
	}
	if payload.UserID == "" {
		utils.RespondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := h.agent.Chat(r.Context(), payload.UserID, payload.UserMessage)
	if err != nil {
		log.Printf("[agent] chat failed for user=%s: %v", payload.UserID, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate response")
		return
	}

	memoryUsed := result.MemoryUsed
	if memoryUsed == nil {
		memoryUsed = []memorymodel.ScoredMemory{}
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{
		Response:   result.Response,
		Emotion:    result.Emotion,
		Confidence: result.Confidence,
		MemoryUsed: memoryUsed,
	})
}

// handleStream delivers the agent reply as Server-Sent Events.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	if h.agent == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "agent service unavailable")
		return
	}

	userMessage := r.URL.Query().Get("message")
	userID := r.URL.Query().Get("userId")
	if userMessage == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	stream, err := h.agent.Stream(r.Context(), userID, userMessage)
	if err != nil {
		log.Printf("[agent] stream failed for user=%s: %v", userID, err)
		utils.RespondError(w, http.StatusInternalServerError, "streaming failed")
		return
	}
	defer stream.Close()

	utils.SetupSSEHeaders(w)

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			utils.SendSSEChunk(w, flusher, map[string]any{"event": "done"})
			return
		}
		if err != nil {
			log.Printf("[agent] stream recv failed for user=%s: %v", userID, err)
			utils.SendSSEChunk(w, flusher, map[string]any{"event": "error", "error": "stream interrupted"})
			return
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}

		utils.SendSSEChunk(w, flusher, map[string]any{"event": "chunk", "content": chunk.Content})
	}
}

// handleGetConfig reports the current agent settings.
func (h *Handler) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	if h.agent == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "agent service unavailable")
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.agent.Settings())
}

// handleUpdateConfig replaces the agent settings.
func (h *Handler) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	if h.agent == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "agent service unavailable")
		return
	}

	var settings agentservice.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	applied := h.agent.UpdateSettings(settings)
	utils.RespondJSON(w, http.StatusOK, map[string]any{"status": "success", "config": applied})
}
