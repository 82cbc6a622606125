// Package feedback asks a chat model for interview-coaching feedback on a
// transcript.
package feedback

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"voicecoach/api-gateway/internal/apperrors"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-2.5-flash"

	// EmptyTranscriptFeedback is returned without calling the model when
	// nothing was recognised.
	EmptyTranscriptFeedback = "No speech was recognised in the recording, so there is nothing to review yet. Try recording your answer again a little closer to the microphone."

	opGenerate = "feedback.generate"
)

const systemPrompt = "You are an interview coach."

const promptTemplate = `Analyze the following answer:
%q

1. Correct grammar
2. Rewrite professionally
3. List filler words removed
4. Give 3 improvement tips`

// Config configures the chat model used for feedback.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Generator produces coaching feedback through an OpenAI-compatible chat API.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *logrus.Logger
}

// NewGenerator validates cfg and builds the chat client.
func NewGenerator(cfg Config, logger *logrus.Logger) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("feedback: API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimRight(DefaultBaseURL, "/")
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Generator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

// Prompt renders the user message sent for transcript.
func Prompt(transcript string) string {
	return fmt.Sprintf(promptTemplate, transcript)
}

// Generate returns the model's free-text feedback for transcript.
func (g *Generator) Generate(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return EmptyTranscriptFeedback, nil
	}

	g.logger.WithFields(logrus.Fields{
		"model":          g.model,
		"transcript_len": len(transcript),
	}).Debug("Requesting coaching feedback")

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: Prompt(transcript)},
		},
	})
	if err != nil {
		return "", apperrors.FromOpenAI(opGenerate, errors.Wrap(err, "create chat completion"), apperrors.KindInvalid)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.New(apperrors.KindUnavailable, opGenerate, "model returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
