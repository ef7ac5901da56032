package types

// GenerateRequest is the payload of POST /llm/generate.
type GenerateRequest struct {
	// Required prompt text.
	// example: Summarise my spending this month.
	Prompt string `json:"prompt" example:"Summarise my spending this month."`
	// Optional explicit model path. When empty the default model path is used.
	// Only the first successfully loaded model is ever used by a running process.
	ModelPath *string `json:"model_path,omitempty" example:"/models/MintAI.gguf"`
}

// GenerateResponse is returned by POST /llm/generate.
type GenerateResponse struct {
	// Generated text, at most 8000 characters.
	Text string `json:"text"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Human-readable error message.
	// example: Local model not found at /models/MintAI.gguf
	Error string `json:"error" example:"Local model not found at /models/MintAI.gguf"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// ModelsResponse wraps GET /models.
type ModelsResponse struct {
	// Directory that was scanned.
	Dir string `json:"dir"`
	// GGUF files found in Dir.
	Models []ModelFile `json:"models"`
}

// LoadInfo describes the parameters the loaded model was created with.
type LoadInfo struct {
	// Accelerated layers requested for the successful load (0 = processor only).
	// example: 0
	GPULayers uint32 `json:"gpu_layers" example:"0"`
	// Accelerator device index.
	// example: 0
	MainGPU uint32 `json:"main_gpu" example:"0"`
	// True when the accelerated attempt failed and the processor load succeeded.
	FellBack bool `json:"fell_back"`
}

// RuntimeStatus is returned by GET /runtime.
type RuntimeStatus struct {
	// Backend name (e.g., llama.cpp).
	// example: llama.cpp
	Backend string `json:"backend" example:"llama.cpp"`
	// Whether acceleration was compiled in.
	Accelerated bool `json:"accelerated"`
	// Whether a model has been loaded by this process.
	Loaded bool `json:"loaded"`
	// Path the loaded model came from.
	LoadedPath string `json:"loaded_path,omitempty"`
	// Load parameters of the loaded model.
	Load *LoadInfo `json:"load,omitempty"`
	// Requests currently waiting for the model.
	// example: 0
	Waiting int `json:"waiting" example:"0"`
	// Requests currently holding the model (0 or 1).
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Default model path and its presence.
	Model ModelStatus `json:"model"`
	// Expected size of the downloadable model in bytes.
	// example: 4370000000
	ExpectedSizeBytes int64 `json:"expected_size_bytes,omitempty" example:"4370000000"`
	// Uptime of the process in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
}

// DownloadProgress is one NDJSON line streamed by POST /model/download.
type DownloadProgress struct {
	// Bytes written so far.
	Loaded int64 `json:"loaded"`
	// Total bytes if known, else 0.
	Total int64 `json:"total,omitempty"`
	// Set on the final line.
	Done bool `json:"done,omitempty"`
	// Destination path, set on the final line.
	Path string `json:"path,omitempty"`
	// Error message if the download failed after streaming started.
	Error string `json:"error,omitempty"`
}
