// Package coach runs one analysis end to end: transcribe the recording,
// score the transcript, then ask for coaching feedback.
package coach

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"voicecoach/api-gateway/analysis"
	"voicecoach/api-gateway/internal/speech"
	"voicecoach/api-gateway/models"
)

//go:generate mockgen -destination=../mocks/mock_coach.go -package=mocks voicecoach/api-gateway/internal/coach Transcriber,FeedbackGenerator,DurationProber

// Transcriber converts a recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio speech.Audio) (string, error)
}

// FeedbackGenerator produces free-text coaching feedback for a transcript.
type FeedbackGenerator interface {
	Generate(ctx context.Context, transcript string) (string, error)
}

// DurationProber reads the duration of a recording in seconds.
type DurationProber interface {
	ProbeDuration(ctx context.Context, data []byte) (float64, error)
}

// DefaultDurationSeconds is used when the client sends no duration and
// probing is disabled or fails.
const DefaultDurationSeconds = 60.0

// Request is one analysis input. A nil DurationSeconds means the client
// did not send one.
type Request struct {
	ID              string
	Audio           speech.Audio
	DurationSeconds *float64
}

// Coach wires the external services around the analysis core.
type Coach struct {
	transcriber     Transcriber
	feedback        FeedbackGenerator
	analyzer        *analysis.Analyzer
	prober          DurationProber
	defaultDuration float64
	logger          *logrus.Logger
}

// Option customises a Coach.
type Option func(*Coach)

// WithProber enables duration probing for requests without a duration.
func WithProber(p DurationProber) Option {
	return func(c *Coach) { c.prober = p }
}

// WithDefaultDuration overrides DefaultDurationSeconds. Negative values are ignored.
func WithDefaultDuration(seconds float64) Option {
	return func(c *Coach) {
		if seconds >= 0 {
			c.defaultDuration = seconds
		}
	}
}

// New builds a Coach. A nil analyzer uses analysis.DefaultOptions.
func New(transcriber Transcriber, feedback FeedbackGenerator, analyzer *analysis.Analyzer, logger *logrus.Logger, opts ...Option) *Coach {
	if analyzer == nil {
		analyzer = analysis.MustNewAnalyzer(analysis.DefaultOptions())
	}
	c := &Coach{
		transcriber:     transcriber,
		feedback:        feedback,
		analyzer:        analyzer,
		defaultDuration: DefaultDurationSeconds,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes the pipeline. Errors from the external services are
// returned as-is so their apperrors kind survives.
func (c *Coach) Run(ctx context.Context, req Request) (*models.AnalysisResponse, error) {
	entry := c.logger.WithField("request_id", req.ID)

	duration := c.resolveDuration(ctx, req, entry)

	transcript, err := c.transcriber.Transcribe(ctx, req.Audio)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	report := c.analyzer.Analyze(transcript, duration)
	entry.WithFields(logrus.Fields{
		"duration_seconds": duration,
		"words":            report.WordCount,
		"wpm":              report.WPM,
		"filler_total":     report.Fillers.Total,
		"confidence":       report.Confidence,
		"clarity":          report.Clarity,
	}).Info("Transcript analysed")

	text, err := c.feedback.Generate(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("feedback: %w", err)
	}

	return &models.AnalysisResponse{
		RawTranscript: transcript,
		Metrics:       models.NewMetrics(report),
		AIFeedback:    text,
	}, nil
}

func (c *Coach) resolveDuration(ctx context.Context, req Request, entry *logrus.Entry) float64 {
	if req.DurationSeconds != nil {
		return *req.DurationSeconds
	}
	if c.prober != nil {
		seconds, err := c.prober.ProbeDuration(ctx, req.Audio.Data)
		if err == nil {
			entry.WithField("duration_seconds", seconds).Debug("Probed recording duration")
			return seconds
		}
		entry.WithError(err).Warn("Duration probe failed, using default")
	}
	return c.defaultDuration
}
