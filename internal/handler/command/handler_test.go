package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/raspverry/desktop-partner/internal/command"
)

func setupRouter() *chi.Mux {
	handler := New(command.DefaultRegistry())
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestInvokeGenerateResponse(t *testing.T) {
	r := setupRouter()

	payload := []byte(`{"prompt":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/command/generate_response", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Text       string `json:"text"`
		TokensUsed uint32 `json:"tokens_used"`
		Model      string `json:"model"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Text != "로컬 LLM 응답: hello" {
		t.Fatalf("unexpected text: %q", body.Text)
	}
	if body.TokensUsed != 5 {
		t.Fatalf("expected 5 tokens, got %d", body.TokensUsed)
	}
	if body.Model != "phi-3.5-mini" {
		t.Fatalf("unexpected model: %q", body.Model)
	}
}

func TestInvokeAnalyzeEmotion(t *testing.T) {
	r := setupRouter()

	payload := []byte(`{"text":"오늘 기쁘다"}`)
	req := httptest.NewRequest(http.MethodPost, "/command/analyze_emotion", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Emotion    string  `json:"emotion"`
		Confidence float32 `json:"confidence"`
		Intensity  float32 `json:"intensity"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Emotion != "happy" {
		t.Fatalf("expected happy, got %s", body.Emotion)
	}
	if body.Confidence != 0.8 || body.Intensity != 0.7 {
		t.Fatalf("unexpected scores: %v / %v", body.Confidence, body.Intensity)
	}
}

func TestInvokeSystemInfoWithoutBody(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/command/get_system_info", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Platform        string `json:"platform"`
		MemoryAvailable struct {
			Total       uint64 `json:"total"`
			Available   uint64 `json:"available"`
			PercentUsed uint32 `json:"percent_used"`
		} `json:"memory_available"`
		LLMModels []string `json:"llm_models"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.MemoryAvailable.Total != 8589934592 || body.MemoryAvailable.Available != 4294967296 {
		t.Fatalf("unexpected memory figures: %+v", body.MemoryAvailable)
	}
	if body.MemoryAvailable.PercentUsed != 50 {
		t.Fatalf("unexpected percent used: %d", body.MemoryAvailable.PercentUsed)
	}
	if len(body.LLMModels) != 3 {
		t.Fatalf("expected 3 models, got %d", len(body.LLMModels))
	}
}

func TestInvokeUnknownCommand(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/command/no_such_command", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestInvokeMalformedPayload(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/command/generate_response", bytes.NewReader([]byte(`{not json`)))
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestListCommands(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/commands", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Commands []string `json:"commands"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	want := []string{"analyze_emotion", "generate_response", "get_system_info"}
	if len(body.Commands) != len(want) {
		t.Fatalf("expected %d commands, got %v", len(want), body.Commands)
	}
	for i, name := range want {
		if body.Commands[i] != name {
			t.Fatalf("expected %q at index %d, got %q", name, i, body.Commands[i])
		}
	}
}
