package types

// ModelFile is a GGUF file found in the models directory.
type ModelFile struct {
	// File name including extension.
	// example: MintAI.gguf
	Name string `json:"name" example:"MintAI.gguf"`
	// Absolute path to the file on disk.
	// example: /home/user/.config/com.mintbalance.desktop/models/MintAI.gguf
	Path string `json:"path" example:"/home/user/.config/com.mintbalance.desktop/models/MintAI.gguf"`
	// Size in bytes.
	// example: 4370000000
	SizeBytes int64 `json:"size_bytes" example:"4370000000"`
	// True when this is the file the default model path points at.
	Default bool `json:"default"`
}

// ModelStatus reports whether the model file exists at its resolved path.
type ModelStatus struct {
	// Resolved model path.
	// example: /home/user/.config/com.mintbalance.desktop/models/MintAI.gguf
	Path string `json:"path" example:"/home/user/.config/com.mintbalance.desktop/models/MintAI.gguf"`
	// Whether a file exists at Path.
	// example: true
	Exists bool `json:"exists" example:"true"`
}
