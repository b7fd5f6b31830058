// Package chat defines the conversation types exchanged with the
// inference backend.
package chat

// DefaultModel is used when a request does not name a model.
const DefaultModel = "llama3.1:8b"

// Message is a single conversation turn. Message order within a request
// is turn order and must be preserved end-to-end.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is an inbound chat completion request.
type Request struct {
	Messages []Message `json:"messages"`
	Model    string    `json:"model,omitempty"`
}

// ResolveModel returns the requested model, or DefaultModel when empty.
func (r Request) ResolveModel() string {
	if r.Model == "" {
		return DefaultModel
	}
	return r.Model
}
