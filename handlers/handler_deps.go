package handlers

import (
	"time"

	"github.com/sirupsen/logrus"

	"voicecoach/api-gateway/internal/coach"
	"voicecoach/api-gateway/internal/worker"
)

// JobSubmitter queues work for background execution.
// *worker.Dispatcher is the production implementation.
type JobSubmitter interface {
	Submit(job worker.Job) error
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Coach          *coach.Coach
	Jobs           JobSubmitter
	Logger         *logrus.Logger
	AnalyzeTimeout time.Duration
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(c *coach.Coach, jobs JobSubmitter, logger *logrus.Logger, analyzeTimeout time.Duration) *ApplicationHandler {
	if analyzeTimeout <= 0 {
		analyzeTimeout = 90 * time.Second
	}
	return &ApplicationHandler{
		Coach:          c,
		Jobs:           jobs,
		Logger:         logger,
		AnalyzeTimeout: analyzeTimeout,
	}
}
