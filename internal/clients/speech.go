package clients

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// SpeechClient transcribes short LINEAR16 WAV uploads with Google Speech.
type SpeechClient struct {
	client *speech.Client
}

// NewSpeechClient uses credentialsJSON when given, else Application Default
// Credentials.
func NewSpeechClient(ctx context.Context, credentialsJSON string) (*SpeechClient, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	c, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &SpeechClient{client: c}, nil
}

func (s *SpeechClient) Close() {
	if s != nil && s.client != nil {
		_ = s.client.Close()
	}
}

func (s *SpeechClient) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("speech client not configured")
	}
	resp, err := s.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			LanguageCode:               SpeechLanguageCode(language),
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", err
	}
	return joinTranscripts(resp), nil
}

// SpeechLanguageCode maps the short chat language onto a BCP-47 tag.
func SpeechLanguageCode(language string) string {
	l := strings.ToLower(strings.TrimSpace(language))
	switch {
	case strings.HasPrefix(l, "en"):
		return "en-US"
	case l == "" || strings.HasPrefix(l, "fa"):
		return "fa-IR"
	default:
		return language
	}
}

func joinTranscripts(resp *speechpb.RecognizeResponse) string {
	if resp == nil {
		return ""
	}
	parts := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		if t := strings.TrimSpace(r.Alternatives[0].Transcript); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
