package command

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raspverry/desktop-partner/internal/command"
	"github.com/raspverry/desktop-partner/pkg/utils"
)

// maxPayloadBytes bounds command arguments; frontend payloads are tiny.
const maxPayloadBytes = 1 << 20

// Handler exposes the command registry over HTTP, mirroring the invoke
// bridge of the desktop shell.
type Handler struct {
	registry *command.Registry
}

// New creates the command handler.
func New(registry *command.Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes wires the invocation endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/command/{name}", h.handleInvoke)
	r.Get("/commands", h.handleList)
}

// handleInvoke dispatches a single named command with its JSON payload.
func (h *Handler) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	result, err := h.registry.Dispatch(r.Context(), name, json.RawMessage(payload))
	if err != nil {
		if errors.Is(err, command.ErrUnknownCommand) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// handleList reports the registered command names.
func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string][]string{"commands": h.registry.Names()})
}
