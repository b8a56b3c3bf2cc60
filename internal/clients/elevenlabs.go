package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// ElevenLabsClient synthesizes English speech.
type ElevenLabsClient struct {
	BaseURL string
	APIKey  string
	VoiceID string
	HTTP    *retryablehttp.Client
}

func NewElevenLabsClient(baseURL, apiKey, voiceID string, httpClient *retryablehttp.Client) *ElevenLabsClient {
	if httpClient == nil {
		httpClient = NewRetryClient(DefaultRetryConfig())
	}
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	return &ElevenLabsClient{BaseURL: strings.TrimRight(baseURL, "/"), APIKey: apiKey, VoiceID: voiceID, HTTP: httpClient}
}

func (c *ElevenLabsClient) Configured() bool {
	return c != nil && c.APIKey != ""
}

func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, dst string) error {
	body, err := json.Marshal(map[string]any{
		"text": text,
		"voice_settings": map[string]float64{
			"stability":        0.5,
			"similarity_boost": 0.5,
		},
	})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.BaseURL, c.VoiceID)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("elevenlabs status %d: %s", resp.StatusCode, preview(raw))
	}
	return writeBody(resp.Body, dst)
}
