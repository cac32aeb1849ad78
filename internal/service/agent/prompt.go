package agent

import (
	"strings"

	memorymodel "github.com/raspverry/desktop-partner/internal/model/memory"
)

const partnerSystemPrompt = `당신은 사용자의 AI 파트너입니다. 사용자와의 대화를 통해 관계를 발전시키고,
사용자의 기억과 선호도를 학습하여 개인화된 응답을 제공합니다.

사용자의 메시지에 대해 친근하고 공감적인 응답을 제공하세요.
감정적 지지와 격려를 포함하여 사용자가 편안함을 느낄 수 있도록 하세요.
한국어로 응답하세요.`

// buildSystemPrompt assembles the partner prompt with the retrieved
// memories appended as context.
func buildSystemPrompt(memories []memorymodel.ScoredMemory) string {
	if len(memories) == 0 {
		return partnerSystemPrompt
	}

	var builder strings.Builder
	builder.WriteString(partnerSystemPrompt)
	builder.WriteString("\n\n관련 기억:\n")
	for _, item := range memories {
		builder.WriteString("- ")
		builder.WriteString(item.Content)
		builder.WriteString("\n")
	}
	return builder.String()
}
