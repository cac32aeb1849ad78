package bridge

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/raspverry/desktop-partner/internal/command"
)

// Handler carries frontend command invocations over a WebSocket, one
// request/response pair per frame.
type Handler struct {
	registry *command.Registry
	upgrader websocket.Upgrader
}

// New creates the bridge handler.
func New(registry *command.Registry) *Handler {
	return &Handler{
		registry: registry,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes wires the bridge endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/bridge", h.handleBridge)
}

// invokeFrame is a single command invocation from the frontend. The ID is
// echoed back so the caller can correlate replies.
type invokeFrame struct {
	ID      string          `json:"id"`
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type resultFrame struct {
	ID     string `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (h *Handler) handleBridge(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[bridge] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[bridge] connection opened from %s", r.RemoteAddr)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[bridge] connection closed unexpectedly: %v", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var frame invokeFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			h.writeFrame(conn, resultFrame{Error: "invalid frame"})
			continue
		}

		h.writeFrame(conn, h.dispatchFrame(r.Context(), frame))
	}
}

// dispatchFrame runs one invocation and shapes the reply frame.
func (h *Handler) dispatchFrame(ctx context.Context, frame invokeFrame) resultFrame {
	if frame.Command == "" {
		return resultFrame{ID: frame.ID, Error: "command is required"}
	}

	result, err := h.registry.Dispatch(ctx, frame.Command, frame.Payload)
	if err != nil {
		return resultFrame{ID: frame.ID, Error: err.Error()}
	}
	return resultFrame{ID: frame.ID, Result: result}
}

func (h *Handler) writeFrame(conn *websocket.Conn, frame resultFrame) {
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[bridge] failed to write frame: %v", err)
	}
}
