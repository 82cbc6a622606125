// Package speech turns recorded answers into transcripts using an external
// speech-to-text service.
package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultFilename = "audio.wav"

// Audio is one uploaded recording held in memory.
type Audio struct {
	Data        []byte
	Filename    string
	ContentType string
}

func (a Audio) filename() string {
	if name := strings.TrimSpace(a.Filename); name != "" {
		return name
	}
	return defaultFilename
}

// Transcriber is implemented by every speech-to-text backend.
type Transcriber interface {
	Transcribe(ctx context.Context, audio Audio) (string, error)
}

// Backend names accepted by Config.Backend.
const (
	BackendOpenAI  = "openai"
	BackendService = "http"
)

// Config selects and configures a backend.
type Config struct {
	Backend  string
	APIKey   string
	BaseURL  string
	Model    string
	Language string
	// ServiceURL is the root of a self-hosted ASR service (BackendService).
	ServiceURL string
	Timeout    time.Duration
}

// New builds the backend named by cfg.Backend.
func New(cfg Config, logger *logrus.Logger) (Transcriber, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendOpenAI:
		return NewOpenAIBackend(cfg, logger)
	case BackendService:
		return NewServiceBackend(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown speech backend %q", cfg.Backend)
	}
}
