package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// Synthesizer writes spoken audio for text into dst (mp3).
type Synthesizer interface {
	Synthesize(ctx context.Context, text, dst string) error
}

// AvashowClient is the Persian TTS gateway. Synthesis is two steps: the
// gateway returns a file path, then the mp3 is downloaded from it.
type AvashowClient struct {
	URL          string
	GatewayToken string
	Speaker      string
	HTTP         *retryablehttp.Client
}

func NewAvashowClient(url, token, speaker string, httpClient *retryablehttp.Client) *AvashowClient {
	if httpClient == nil {
		httpClient = NewRetryClient(DefaultRetryConfig())
	}
	if speaker == "" {
		speaker = "3"
	}
	return &AvashowClient{URL: url, GatewayToken: token, Speaker: speaker, HTTP: httpClient}
}

func (c *AvashowClient) Configured() bool {
	return c != nil && c.URL != "" && c.GatewayToken != ""
}

type avashowResponse struct {
	Data struct {
		Data struct {
			FilePath string `json:"filePath"`
		} `json:"data"`
	} `json:"data"`
}

func (c *AvashowClient) Synthesize(ctx context.Context, text, dst string) error {
	body, err := json.Marshal(map[string]string{
		"data":     text,
		"filePath": "true",
		"base64":   "0",
		"checksum": "1",
		"speaker":  c.Speaker,
	})
	if err != nil {
		return err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.URL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("gateway-token", c.GatewayToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("avashow request: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("avashow status %d: %s", resp.StatusCode, preview(raw))
	}

	var parsed avashowResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("decode avashow reply: %w", err)
	}
	audioURL := strings.TrimSpace(parsed.Data.Data.FilePath)
	if audioURL == "" {
		return fmt.Errorf("no audio filePath returned from avashow")
	}
	if !strings.HasPrefix(audioURL, "http") {
		audioURL = "https://" + audioURL
	}
	return download(ctx, c.HTTP, audioURL, dst)
}

func download(ctx context.Context, hc *retryablehttp.Client, url, dst string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("download audio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("download audio status %d", resp.StatusCode)
	}
	return writeBody(resp.Body, dst)
}

func writeBody(r io.Reader, dst string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	if buf.Len() == 0 {
		return fmt.Errorf("empty audio body")
	}
	return os.WriteFile(dst, buf.Bytes(), 0o644)
}
