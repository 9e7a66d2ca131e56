package models

import "time"

// ChatRequest is the chat endpoint request body.
type ChatRequest struct {
	Message string         `json:"message" binding:"required"`
	Context map[string]any `json:"context"`
}

// ActionInfo names the operation the router selected together with its
// extracted parameters. The UI feeds it back verbatim to the execute
// endpoint.
type ActionInfo struct {
	Action string         `json:"action"`
	Params map[string]any `json:"params"`
}

// ChatResponse is the chat endpoint response body. When Action is "help" the
// Response text is displayed as-is and ActionInfo is absent.
type ChatResponse struct {
	Response   string      `json:"response"`
	Action     string      `json:"action"`
	ActionInfo *ActionInfo `json:"action_info,omitempty"`
}

// OperationResult is the uniform execute endpoint envelope.
type OperationResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewErrorResult builds a failed OperationResult with a plain-language
// message.
func NewErrorResult(msg string) OperationResult {
	return OperationResult{Success: false, Error: msg}
}

// SystemResources summarizes process and disk usage for the server-info
// endpoint.
type SystemResources struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryRSS     uint64  `json:"memory_rss"`
	MemoryPercent float32 `json:"memory_percent"`
	DiskTotal     uint64  `json:"disk_total"`
	DiskUsed      uint64  `json:"disk_used"`
	DiskFree      uint64  `json:"disk_free"`
	DiskPercent   float64 `json:"disk_percent"`
}

// ServerInfo is internal bookkeeping exposed by the executor.
type ServerInfo struct {
	StartTime    time.Time `json:"start_time"`
	LastExecTime time.Time `json:"last_execution_time"`
	BasePath     string    `json:"base_path"`
}

// ServerInfoResponse is the server-info endpoint response body.
type ServerInfoResponse struct {
	Uptime    float64         `json:"uptime"`
	IdleTime  float64         `json:"idle_time"`
	BasePath  string          `json:"base_path"`
	Resources SystemResources `json:"resources"`
}
