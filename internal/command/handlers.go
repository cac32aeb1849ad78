package command

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/raspverry/desktop-partner/internal/analysis/emotion"
	"github.com/raspverry/desktop-partner/internal/model/partner"
)

// ModelName identifies the local model the generator stands in for.
const ModelName = "phi-3.5-mini"

// memoryTotal/memoryAvailable are placeholder figures until the reporter
// reads real memory stats from the host.
const (
	memoryTotal     = 8589934592
	memoryAvailable = 4294967296
	memoryPercent   = 50
)

var localModels = []string{ModelName, "emotion-analyzer", "speech-recognition"}

// GenerateResponse wraps the prompt in the canned local-LLM reply.
func GenerateResponse(prompt string) partner.LLMResponse {
	return partner.LLMResponse{
		Text:       fmt.Sprintf("로컬 LLM 응답: %s", prompt),
		TokensUsed: uint32(len(prompt)),
		Model:      ModelName,
	}
}

// AnalyzeEmotion classifies the text with the keyword analyzer.
func AnalyzeEmotion(text string) partner.EmotionAnalysis {
	result := emotion.Analyze(text)
	return partner.EmotionAnalysis{
		Emotion:    string(result.Emotion),
		Confidence: result.Confidence,
		Intensity:  result.Intensity,
	}
}

// SystemInfo reports the runtime platform alongside the placeholder memory
// figures and the advertised model list.
func SystemInfo() partner.SystemInfo {
	return partner.SystemInfo{
		Platform:     runtime.GOOS,
		Architecture: runtime.GOARCH,
		MemoryAvailable: partner.MemoryUsage{
			Total:       memoryTotal,
			Available:   memoryAvailable,
			PercentUsed: memoryPercent,
		},
		LLMModels: append([]string(nil), localModels...),
	}
}

// DefaultRegistry wires the three frontend commands.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("generate_response", func(_ context.Context, payload json.RawMessage) (any, error) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		if err := decodePayload(payload, &req); err != nil {
			return nil, err
		}
		return GenerateResponse(req.Prompt), nil
	})

	r.Register("analyze_emotion", func(_ context.Context, payload json.RawMessage) (any, error) {
		var req struct {
			Text string `json:"text"`
		}
		if err := decodePayload(payload, &req); err != nil {
			return nil, err
		}
		return AnalyzeEmotion(req.Text), nil
	})

	r.Register("get_system_info", func(_ context.Context, _ json.RawMessage) (any, error) {
		return SystemInfo(), nil
	})

	return r
}

// decodePayload tolerates an absent payload so argument-less invocations
// stay valid.
func decodePayload(payload json.RawMessage, dst any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("invalid command payload: %w", err)
	}
	return nil
}
