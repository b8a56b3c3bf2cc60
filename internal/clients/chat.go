package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	"airportbot/internal/domain/models"
)

// AssistantChatClient talks to the external conversational service that
// produces the avatar's replies.
type AssistantChatClient struct {
	URL  string
	HTTP *retryablehttp.Client
}

func NewAssistantChatClient(url string, httpClient *retryablehttp.Client) *AssistantChatClient {
	if httpClient == nil {
		httpClient = NewRetryClient(DefaultRetryConfig())
	}
	return &AssistantChatClient{URL: url, HTTP: httpClient}
}

func (c *AssistantChatClient) Configured() bool {
	return c != nil && c.URL != ""
}

// Chat posts one user turn and returns the normalized reply messages.
func (c *AssistantChatClient) Chat(ctx context.Context, message, sessionID, language string) ([]models.ChatMessage, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("assistant chat service url not configured")
	}
	body, err := json.Marshal(map[string]string{
		"message":    message,
		"session_id": sessionID,
		"language":   language,
	})
	if err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.URL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assistant chat request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("assistant chat status %d: %s", resp.StatusCode, preview(raw))
	}
	return NormalizeChatReply(raw)
}

// NormalizeChatReply turns the service payload into avatar messages. A
// "messages" object becomes one message, an array becomes one message per
// element, and anything else is returned as a single stringified message.
func NormalizeChatReply(raw []byte) ([]models.ChatMessage, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode assistant reply: %w", err)
	}

	if msgs, ok := payload["messages"]; ok {
		var one map[string]any
		if err := json.Unmarshal(msgs, &one); err == nil && one != nil {
			return []models.ChatMessage{chatMessageFrom(one)}, nil
		}
		var many []any
		if err := json.Unmarshal(msgs, &many); err == nil && len(many) > 0 {
			out := make([]models.ChatMessage, 0, len(many))
			for _, item := range many {
				switch v := item.(type) {
				case map[string]any:
					out = append(out, chatMessageFrom(v))
				case string:
					out = append(out, models.ChatMessage{Text: v, FacialExpression: "default", Animation: "Idle"})
				}
			}
			if len(out) > 0 {
				return out, nil
			}
		}
	}

	return []models.ChatMessage{{Text: string(raw), FacialExpression: "default", Animation: "Idle"}}, nil
}

func chatMessageFrom(m map[string]any) models.ChatMessage {
	msg := models.ChatMessage{FacialExpression: "default", Animation: "Idle"}
	if s, ok := m["text"].(string); ok {
		msg.Text = s
	}
	if s, ok := m["facialExpression"].(string); ok && s != "" {
		msg.FacialExpression = s
	}
	if s, ok := m["animation"].(string); ok && s != "" {
		msg.Animation = s
	}
	return msg
}

func preview(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
