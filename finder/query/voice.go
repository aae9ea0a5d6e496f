package query

import (
	"context"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"

	"market-scout/utils"
)

// Recognizer transcribes a recorded audio query, trying the primary language
// first and silently retrying in the fallback language.
type Recognizer struct {
	client   *speech.Client
	logger   *utils.Logger
	primary  string
	fallback string
}

// NewRecognizer creates a Cloud Speech backed Recognizer.
func NewRecognizer(ctx context.Context, apiKey, primary, fallback string, logger *utils.Logger) (*Recognizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("speech: missing API key: set GOOGLE_CLOUD_API_KEY")
	}

	client, err := speech.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("speech: create client: %w", err)
	}

	return &Recognizer{
		client:   client,
		logger:   logger,
		primary:  primary,
		fallback: fallback,
	}, nil
}

// Close releases the underlying API connection.
func (r *Recognizer) Close() error {
	return r.client.Close()
}

// Transcribe returns the recognized text, or "" when the audio could not be
// understood in either configured language or the service was unreachable.
// An unusable voice query ends the run with a "no valid query" report, not a
// crash, so failures here surface only as log lines.
func (r *Recognizer) Transcribe(ctx context.Context, audioPath string) string {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		r.logger.Error("Could not read audio file %s: %v", audioPath, err)
		return ""
	}

	text, err := r.recognize(ctx, data, r.primary)
	if err == nil && text != "" {
		r.logger.Info("Detected %s: %s", r.primary, text)
		return text
	}

	text, err = r.recognize(ctx, data, r.fallback)
	if err != nil {
		r.logger.Error("Could not request results from speech recognition service: %v", err)
		return ""
	}
	if text == "" {
		r.logger.Warn("Could not understand audio (%s, %s)", r.primary, r.fallback)
		return ""
	}

	r.logger.Info("Detected %s: %s", r.fallback, text)
	return text
}

func (r *Recognizer) recognize(ctx context.Context, audio []byte, lang string) (string, error) {
	resp, err := r.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: 16000,
			LanguageCode:    lang,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			sb.WriteString(result.Alternatives[0].Transcript)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
