package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"mime"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"voicecoach/api-gateway/config"
	"voicecoach/api-gateway/internal/coach"
	"voicecoach/api-gateway/internal/feedback"
	"voicecoach/api-gateway/internal/ffmpeg"
	"voicecoach/api-gateway/internal/speech"
)

type analyzeOptions struct {
	text           string
	transcriptFile string
	audioFile      string
	duration       float64
	withFeedback   bool
	metricsOnly    bool
}

// knownTranscript stands in for a speech backend when the text is given.
type knownTranscript string

func (t knownTranscript) Transcribe(context.Context, speech.Audio) (string, error) {
	return string(t), nil
}

type noFeedback struct{}

func (noFeedback) Generate(context.Context, string) (string, error) { return "", nil }

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a transcript or recording and print the result as JSON",
		Example: `  voicecoach analyze --text "Um, I led the team." --duration 5
  voicecoach analyze --audio answer.wav --feedback`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(cmd); err != nil {
				return err
			}
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			logger.SetOutput(cmd.ErrOrStderr())
			return runAnalyze(cmd, opts, cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.text, "text", "", "transcript text to score")
	flags.StringVar(&opts.transcriptFile, "transcript-file", "", "file holding the transcript to score")
	flags.StringVar(&opts.audioFile, "audio", "", "recording to transcribe with the configured speech backend")
	flags.Float64Var(&opts.duration, "duration", 0, "answer length in seconds")
	flags.BoolVar(&opts.withFeedback, "feedback", false, "also request AI coaching feedback")
	flags.BoolVar(&opts.metricsOnly, "metrics-only", false, "print only the metrics object")
	cmd.MarkFlagsMutuallyExclusive("text", "transcript-file", "audio")

	return cmd
}

func (o *analyzeOptions) validate(cmd *cobra.Command) error {
	if o.text == "" && o.transcriptFile == "" && o.audioFile == "" {
		return fmt.Errorf("one of --text, --transcript-file or --audio is required")
	}
	if cmd.Flags().Changed("duration") && (o.duration < 0 || math.IsNaN(o.duration) || math.IsInf(o.duration, 0)) {
		return fmt.Errorf("--duration must be a finite number of seconds >= 0")
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, cfg *config.Config, logger *logrus.Logger) error {
	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}

	req := coach.Request{}
	if cmd.Flags().Changed("duration") {
		req.DurationSeconds = &opts.duration
	}

	coachOpts := []coach.Option{coach.WithDefaultDuration(cfg.DefaultDurationSeconds)}
	var transcriber coach.Transcriber
	switch {
	case opts.audioFile != "":
		data, err := os.ReadFile(opts.audioFile)
		if err != nil {
			return errors.Wrap(err, "read audio")
		}
		req.Audio = speech.Audio{
			Data:        data,
			Filename:    filepath.Base(opts.audioFile),
			ContentType: mime.TypeByExtension(filepath.Ext(opts.audioFile)),
		}
		if transcriber, err = speech.New(cfg.SpeechConfig(), logger); err != nil {
			return errors.Wrap(err, "init speech backend")
		}
		if cfg.ProbeDuration {
			if prober := ffmpeg.NewProber(cfg.FFProbePath); prober.Available() {
				coachOpts = append(coachOpts, coach.WithProber(prober))
			}
		}
	case opts.transcriptFile != "":
		data, err := os.ReadFile(opts.transcriptFile)
		if err != nil {
			return errors.Wrap(err, "read transcript")
		}
		transcriber = knownTranscript(data)
	default:
		transcriber = knownTranscript(opts.text)
	}

	var generator coach.FeedbackGenerator = noFeedback{}
	if opts.withFeedback {
		if generator, err = feedback.NewGenerator(cfg.FeedbackConfig(), logger); err != nil {
			return errors.Wrap(err, "init feedback generator")
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.AnalyzeTimeout)
	defer cancel()

	c := coach.New(transcriber, generator, analyzer, logger, coachOpts...)
	resp, err := c.Run(ctx, req)
	if err != nil {
		return err
	}

	var out interface{} = resp
	if opts.metricsOnly {
		out = resp.Metrics
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
