package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	openai "github.com/sashabaranov/go-openai"

	"airportbot/internal/domain/models"
)

const (
	answerSystemPrompt = "You are a helpful airport information assistant. Your primary goal is to provide accurate information from the knowledge base. If the information is not available, provide a general knowledge answer. Respond in the same language as the question."

	answerPromptTemplate = `You are a helpful AI assistant for an airport information system. Your task is to answer questions based on the provided knowledge base.

Knowledge Base:
%s

User Question: %s

Instructions:
1. First, carefully analyze the user's question and find relevant information in the knowledge base
2. If you find a direct match or closely related information, provide that answer
3. If you can't find relevant information in the knowledge base, provide a general knowledge answer in 5-6 sentences
4. If the question is in Persian, respond in Persian. If it's in English, respond in English
5. Be specific and concise in your answers
6. Always maintain a professional and helpful tone

Please provide your answer based on these instructions.`

	extractSystemPrompt = "You are a helpful assistant for airline ticket booking."

	extractPromptHeader = `Extract all passenger and ticket information from the following conversation for an airline booking. Return a JSON object with these fields:
{
  "airportName": string,
  "travelDate": string,
  "flightNumber": string,
  "passengers": [
    { "fullName": string, "nationalId": string, "luggageCount": number }
  ]
}
If any field is missing, use an empty string or 0. Only return the JSON object, nothing else.

Conversation:
`
)

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// Answer is a knowledge-base answer with a rough confidence estimate.
type Answer struct {
	Text       string
	Confidence float64
}

type OpenAIClient struct {
	api   *openai.Client
	Model string
}

// NewOpenAIClient returns nil when apiKey is empty.
func NewOpenAIClient(apiKey, baseURL, model string, httpClient *retryablehttp.Client) *OpenAIClient {
	if apiKey == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient == nil {
		httpClient = NewRetryClient(DefaultRetryConfig())
	}
	cfg.HTTPClient = httpClient.StandardClient()
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIClient{api: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *OpenAIClient) Configured() bool {
	return c != nil && c.api != nil
}

// Answer asks the model to answer question using knowledgeBase as context.
func (c *OpenAIClient) Answer(ctx context.Context, question, knowledgeBase string) (Answer, error) {
	if !c.Configured() {
		return Answer{}, fmt.Errorf("openai api key not configured")
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: answerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(answerPromptTemplate, knowledgeBase, question)},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		return Answer{}, err
	}
	if len(resp.Choices) == 0 {
		return Answer{}, fmt.Errorf("openai returned no choices")
	}
	text := resp.Choices[0].Message.Content
	return Answer{Text: text, Confidence: ConfidenceFor(text)}, nil
}

// ConfidenceFor scores an answer from phrases that signal a knowledge miss.
func ConfidenceFor(answer string) float64 {
	lower := strings.ToLower(answer)
	switch {
	case strings.Contains(lower, "not available") || strings.Contains(lower, "cannot find"):
		return 0.3
	case strings.Contains(lower, "sorry"):
		return 0.5
	default:
		return 0.8
	}
}

// ExtractTripInfo pulls booking fields out of a conversation transcript.
func (c *OpenAIClient) ExtractTripInfo(ctx context.Context, lines []models.ConversationLine) (models.ExtractInfoResponse, error) {
	if !c.Configured() {
		return models.ExtractInfoResponse{}, fmt.Errorf("openai api key not configured")
	}
	var b strings.Builder
	b.WriteString(extractPromptHeader)
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Sender + ": " + l.Content)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: b.String()},
		},
		// zero is omitted from the request body, which means the API default of 1
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return models.ExtractInfoResponse{}, err
	}
	if len(resp.Choices) == 0 {
		return models.ExtractInfoResponse{}, fmt.Errorf("openai returned no choices")
	}
	return ParseExtraction(resp.Choices[0].Message.Content)
}

// ParseExtraction decodes the model output, falling back to the outermost
// {...} block when the JSON is wrapped in prose or code fences.
func ParseExtraction(text string) (models.ExtractInfoResponse, error) {
	var out models.ExtractInfoResponse
	if err := json.Unmarshal([]byte(text), &out); err == nil {
		return normalizeExtraction(out), nil
	}
	m := jsonObjectRe.FindString(text)
	if m == "" {
		return out, fmt.Errorf("failed to parse openai response")
	}
	if err := json.Unmarshal([]byte(m), &out); err != nil {
		return out, fmt.Errorf("failed to parse openai response: %w", err)
	}
	return normalizeExtraction(out), nil
}

func normalizeExtraction(r models.ExtractInfoResponse) models.ExtractInfoResponse {
	if r.Passengers == nil {
		r.Passengers = []models.ExtractedPassenger{}
	}
	for i := range r.Passengers {
		if r.Passengers[i].LuggageCount < 0 {
			r.Passengers[i].LuggageCount = 0
		}
	}
	return r
}
