package openaicompat

// --- wire types ---

// chatRequest is the OpenAI chat completions request body, reduced to the
// fields the tutor prompts need.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// modelList is the GET /models response.
type modelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}
