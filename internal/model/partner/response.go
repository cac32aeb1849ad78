package partner

// LLMResponse is the payload returned by the generate_response command.
type LLMResponse struct {
	Text       string `json:"text"`
	TokensUsed uint32 `json:"tokens_used,omitempty"`
	Model      string `json:"model"`
}

// EmotionAnalysis is the payload returned by the analyze_emotion command.
type EmotionAnalysis struct {
	Emotion    string  `json:"emotion"`
	Confidence float32 `json:"confidence"`
	Intensity  float32 `json:"intensity"`
}
