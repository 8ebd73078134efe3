package model

// ChatRequest is one dialog turn from the client.
type ChatRequest struct {
	SessionID   string   `json:"session_id"`
	Message     string   `json:"message"`
	Preferences []string `json:"preferences,omitempty"`
}

// ChatResponse carries the assistant reply plus the current UI directive.
// UI is an empty object when no control is requested.
type ChatResponse struct {
	Reply string `json:"reply"`
	UI    any    `json:"ui"`
}
