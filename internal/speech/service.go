package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"voicecoach/api-gateway/internal/apperrors"
)

const opServiceTranscribe = "speech.service.transcribe"

// Segment is one recognised span returned by the ASR service.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type serviceResponse struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// ServiceBackend talks to a self-hosted ASR service exposing
// POST /transcribe with a multipart "file" field.
type ServiceBackend struct {
	url    string
	client *http.Client
	logger *logrus.Logger
}

// NewServiceBackend creates a transcriber for cfg.ServiceURL.
func NewServiceBackend(cfg Config, logger *logrus.Logger) (*ServiceBackend, error) {
	url := strings.TrimRight(strings.TrimSpace(cfg.ServiceURL), "/")
	if url == "" {
		return nil, errors.New("speech: service URL is required for the http backend")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ServiceBackend{url: url, client: &http.Client{Timeout: timeout}, logger: logger}, nil
}

// Transcribe joins the text of every returned segment with single spaces.
func (b *ServiceBackend) Transcribe(ctx context.Context, audio Audio) (string, error) {
	if len(audio.Data) == 0 {
		return "", apperrors.New(apperrors.KindMalformedAudio, opServiceTranscribe, "audio is empty")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", audio.filename())
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, opServiceTranscribe, err)
	}
	if _, err = fw.Write(audio.Data); err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, opServiceTranscribe, err)
	}
	if err = w.Close(); err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, opServiceTranscribe, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url+"/transcribe", &body)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, opServiceTranscribe, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	b.logger.WithFields(logrus.Fields{
		"backend":  BackendService,
		"url":      b.url,
		"filename": audio.filename(),
		"bytes":    len(audio.Data),
	}).Debug("Sending audio for transcription")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUnavailable, opServiceTranscribe, errors.Wrap(err, "asr request"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		kind := apperrors.FromStatus(resp.StatusCode, apperrors.KindMalformedAudio)
		return "", apperrors.Wrap(kind, opServiceTranscribe, fmt.Errorf("asr %s: %s", resp.Status, strings.TrimSpace(string(msg))))
	}

	var out serviceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperrors.Wrap(apperrors.KindUnavailable, opServiceTranscribe, errors.Wrap(err, "asr decode"))
	}

	parts := make([]string, 0, len(out.Segments))
	for _, s := range out.Segments {
		if text := strings.TrimSpace(s.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}
