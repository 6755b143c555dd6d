package narrator

import "github.com/tatianab/text-dungeon/internal/models"

// Request is the body of a messages API call.
type Request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// Message is one turn on the wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func toMessages(turns []models.Turn) []Message {
	messages := make([]Message, len(turns))
	for i, t := range turns {
		messages[i] = Message{Role: string(t.Role), Content: t.Content}
	}
	return messages
}
