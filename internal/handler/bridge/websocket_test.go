package bridge

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/raspverry/desktop-partner/internal/command"
	"github.com/raspverry/desktop-partner/internal/model/partner"
)

func TestDispatchFrameSuccess(t *testing.T) {
	handler := New(command.DefaultRegistry())

	frame := invokeFrame{
		ID:      "req-1",
		Command: "generate_response",
		Payload: json.RawMessage(`{"prompt":"hello"}`),
	}

	result := handler.dispatchFrame(context.Background(), frame)

	if result.ID != "req-1" {
		t.Fatalf("expected id echoed back, got %q", result.ID)
	}
	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	resp, ok := result.Result.(partner.LLMResponse)
	if !ok {
		t.Fatalf("unexpected result type %T", result.Result)
	}
	if resp.TokensUsed != 5 {
		t.Fatalf("expected 5 tokens, got %d", resp.TokensUsed)
	}
}

func TestDispatchFrameUnknownCommand(t *testing.T) {
	handler := New(command.DefaultRegistry())

	result := handler.dispatchFrame(context.Background(), invokeFrame{ID: "req-2", Command: "nope"})

	if result.Error == "" {
		t.Fatalf("expected error for unknown command")
	}
	if result.ID != "req-2" {
		t.Fatalf("expected id echoed back, got %q", result.ID)
	}
}

func TestDispatchFrameMissingCommand(t *testing.T) {
	handler := New(command.DefaultRegistry())

	result := handler.dispatchFrame(context.Background(), invokeFrame{ID: "req-3"})

	if result.Error != "command is required" {
		t.Fatalf("unexpected error: %q", result.Error)
	}
}
