package coach

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"voicecoach/api-gateway/internal/apperrors"
	"voicecoach/api-gateway/models"
)

// Result is what an AnalysisJob delivers once it has run.
type Result struct {
	Response *models.AnalysisResponse
	Err      error
}

// AnalysisJob runs one Coach.Run call on a worker.Dispatcher.
type AnalysisJob struct {
	ctx   context.Context
	coach *Coach
	req   Request
	done  chan Result
}

// NewAnalysisJob prepares a job. ctx bounds every external call the job
// makes, including time spent waiting in the queue. An empty request ID is
// replaced by a random one.
func NewAnalysisJob(ctx context.Context, c *Coach, req Request) *AnalysisJob {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	return &AnalysisJob{ctx: ctx, coach: c, req: req, done: make(chan Result, 1)}
}

// ID returns the request ID.
func (j *AnalysisJob) ID() string {
	return j.req.ID
}

// Execute runs the analysis and publishes the result exactly once.
func (j *AnalysisJob) Execute() error {
	defer func() {
		if r := recover(); r != nil {
			j.done <- Result{Err: apperrors.New(apperrors.KindInternal, "coach.job", fmt.Sprint(r))}
			panic(r)
		}
	}()

	if err := j.ctx.Err(); err != nil {
		j.done <- Result{Err: err}
		return err
	}

	resp, err := j.coach.Run(j.ctx, j.req)
	j.done <- Result{Response: resp, Err: err}
	return err
}

// Done delivers the result. The channel is buffered so the worker never
// blocks on a caller that gave up.
func (j *AnalysisJob) Done() <-chan Result {
	return j.done
}

// Wait blocks until the job finishes or ctx ends.
func (j *AnalysisJob) Wait(ctx context.Context) (*models.AnalysisResponse, error) {
	select {
	case res := <-j.Done():
		return res.Response, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
