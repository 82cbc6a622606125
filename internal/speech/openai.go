package speech

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"voicecoach/api-gateway/internal/apperrors"
)

const opOpenAITranscribe = "speech.openai.transcribe"

// OpenAIBackend transcribes through the OpenAI audio transcription API or
// any server exposing the same endpoint.
type OpenAIBackend struct {
	client   *openai.Client
	model    string
	language string
	logger   *logrus.Logger
}

// NewOpenAIBackend creates an OpenAI-compatible transcriber.
func NewOpenAIBackend(cfg Config, logger *logrus.Logger) (*OpenAIBackend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("speech: API key is required for the openai backend")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}

	return &OpenAIBackend{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    model,
		language: cfg.Language,
		logger:   logger,
	}, nil
}

// Transcribe uploads the recording and returns the trimmed transcript text.
func (b *OpenAIBackend) Transcribe(ctx context.Context, audio Audio) (string, error) {
	if len(audio.Data) == 0 {
		return "", apperrors.New(apperrors.KindMalformedAudio, opOpenAITranscribe, "audio is empty")
	}

	b.logger.WithFields(logrus.Fields{
		"backend":  BackendOpenAI,
		"model":    b.model,
		"filename": audio.filename(),
		"bytes":    len(audio.Data),
	}).Debug("Sending audio for transcription")

	resp, err := b.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    b.model,
		FilePath: audio.filename(),
		Reader:   bytes.NewReader(audio.Data),
		Language: b.language,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", apperrors.FromOpenAI(opOpenAITranscribe, errors.Wrap(err, "create transcription"), apperrors.KindMalformedAudio)
	}

	return strings.TrimSpace(resp.Text), nil
}
