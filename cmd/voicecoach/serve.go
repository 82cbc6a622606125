package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"voicecoach/api-gateway/config"
	"voicecoach/api-gateway/handlers"
	"voicecoach/api-gateway/internal/coach"
	"voicecoach/api-gateway/internal/feedback"
	"voicecoach/api-gateway/internal/ffmpeg"
	"voicecoach/api-gateway/internal/healthcheck"
	"voicecoach/api-gateway/internal/speech"
	"voicecoach/api-gateway/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, logger)
		},
	}
}

func newCoach(cfg *config.Config, logger *logrus.Logger) (*coach.Coach, error) {
	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return nil, err
	}

	transcriber, err := speech.New(cfg.SpeechConfig(), logger)
	if err != nil {
		return nil, errors.Wrap(err, "init speech backend")
	}

	generator, err := feedback.NewGenerator(cfg.FeedbackConfig(), logger)
	if err != nil {
		return nil, errors.Wrap(err, "init feedback generator")
	}

	coachOpts := []coach.Option{coach.WithDefaultDuration(cfg.DefaultDurationSeconds)}
	if cfg.ProbeDuration {
		prober := ffmpeg.NewProber(cfg.FFProbePath)
		if prober.Available() {
			coachOpts = append(coachOpts, coach.WithProber(prober))
		} else {
			logger.WithField("ffprobe_path", cfg.FFProbePath).Warn("ffprobe not found, durations default when not sent")
		}
	}

	return coach.New(transcriber, generator, analyzer, logger, coachOpts...), nil
}

func runServe(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	c, err := newCoach(cfg, logger)
	if err != nil {
		return err
	}

	dispatcher := worker.NewDispatcher(cfg.Workers, cfg.QueueSize, logger)
	dispatcher.Run()

	h := handlers.NewApplicationHandler(c, dispatcher, logger, cfg.AnalyzeTimeout)
	app := handlers.NewApp(h, handlers.AppConfig{
		BodyLimit:   cfg.BodyLimit(),
		CORSOrigins: cfg.CORSOrigins,
	})

	var health *healthcheck.Server
	if cfg.GRPCHealthAddr != "" {
		health = healthcheck.NewServer(logger)
		go func() {
			if err := health.Listen(cfg.GRPCHealthAddr); err != nil {
				logger.WithError(err).Error("gRPC health server stopped")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"workers": cfg.Workers,
			"backend": cfg.Speech.Backend,
		}).Info("Starting VoiceCoach API")
		listenErr <- app.Listen(":" + cfg.Port)
	}()
	if health != nil {
		health.SetServing(true)
	}

	var runErr error
	select {
	case err := <-listenErr:
		runErr = errors.Wrap(err, "http server")
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	if health != nil {
		health.SetServing(false)
	}
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.WithError(err).Error("HTTP shutdown failed")
	}
	dispatcher.Stop()
	if health != nil {
		health.Shutdown()
	}

	logger.Info("VoiceCoach API stopped")
	return runErr
}
