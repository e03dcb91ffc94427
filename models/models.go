package models

// ProcessResponse carries either a reply or an error, never both. The
// fields are pointers so an empty reply still serializes as "reply": "".
type ProcessResponse struct {
	Reply *string `json:"reply,omitempty"`
	Error *string `json:"error,omitempty"`
}

func Reply(content string) ProcessResponse {
	return ProcessResponse{Reply: &content}
}

func Failure(message string) ProcessResponse {
	return ProcessResponse{Error: &message}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type ChatChoice struct {
	Index        int         `json:"index"`
	FinishReason string      `json:"finish_reason"`
	Message      ChatMessage `json:"message"`
}

// APIError is the error envelope returned by OpenAI-compatible services.
type APIError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code,omitempty"`
	} `json:"error"`
}
