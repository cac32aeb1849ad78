package agent

import (
	"strings"
	"testing"

	"github.com/raspverry/desktop-partner/internal/config"
	memorymodel "github.com/raspverry/desktop-partner/internal/model/memory"
)

func TestDefaultSettings(t *testing.T) {
	temperature := 0.3
	maxTokens := 256
	cfg := config.AIConfig{
		Model:       "test-model",
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		MemoryLimit: 7,
	}

	settings := defaultSettings(cfg)
	if settings.Model != "test-model" {
		t.Fatalf("unexpected model: %q", settings.Model)
	}
	if settings.Temperature != 0.3 {
		t.Fatalf("unexpected temperature: %v", settings.Temperature)
	}
	if settings.MaxTokens != 256 {
		t.Fatalf("unexpected max tokens: %d", settings.MaxTokens)
	}
	if settings.MemoryLimit != 7 {
		t.Fatalf("unexpected memory limit: %d", settings.MemoryLimit)
	}
}

func TestDefaultSettingsFallbacks(t *testing.T) {
	settings := defaultSettings(config.AIConfig{Model: "test-model"})
	if settings.Temperature != 0.7 {
		t.Fatalf("unexpected default temperature: %v", settings.Temperature)
	}
	if settings.MaxTokens != 500 {
		t.Fatalf("unexpected default max tokens: %d", settings.MaxTokens)
	}
	if settings.MemoryLimit != 5 {
		t.Fatalf("unexpected default memory limit: %d", settings.MemoryLimit)
	}
}

func TestUpdateSettingsClampsMemoryLimit(t *testing.T) {
	svc := &Service{settings: defaultSettings(config.AIConfig{Model: "test-model"})}

	applied := svc.UpdateSettings(Settings{Model: "test-model", MemoryLimit: 0})
	if applied.MemoryLimit != 1 {
		t.Fatalf("expected memory limit clamped to 1, got %d", applied.MemoryLimit)
	}
	if svc.Settings().MemoryLimit != 1 {
		t.Fatalf("expected stored settings updated")
	}
}

func TestBuildSystemPromptWithoutMemories(t *testing.T) {
	prompt := buildSystemPrompt(nil)
	if strings.Contains(prompt, "관련 기억") {
		t.Fatalf("expected no memory section without memories")
	}
}

func TestBuildSystemPromptWithMemories(t *testing.T) {
	memories := []memorymodel.ScoredMemory{
		{Memory: memorymodel.Memory{Content: "사용자는 커피를 좋아한다"}, Score: 1},
		{Memory: memorymodel.Memory{Content: "사용자는 고양이를 키운다"}, Score: 0.5},
	}

	prompt := buildSystemPrompt(memories)
	if !strings.Contains(prompt, "관련 기억") {
		t.Fatalf("expected memory section header")
	}
	if !strings.Contains(prompt, "- 사용자는 커피를 좋아한다") {
		t.Fatalf("expected first memory listed")
	}
	if !strings.Contains(prompt, "- 사용자는 고양이를 키운다") {
		t.Fatalf("expected second memory listed")
	}
}
