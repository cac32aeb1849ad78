package partner

// MemoryUsage reports the memory figures shown in the frontend dashboard.
type MemoryUsage struct {
	Total       uint64 `json:"total"`
	Available   uint64 `json:"available"`
	PercentUsed uint32 `json:"percent_used"`
}

// SystemInfo is the payload returned by the get_system_info command.
type SystemInfo struct {
	Platform        string      `json:"platform"`
	Architecture    string      `json:"architecture"`
	MemoryAvailable MemoryUsage `json:"memory_available"`
	LLMModels       []string    `json:"llm_models"`
}
