package worker

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// ErrQueueFull is returned by Submit when no queue slot is free.
	ErrQueueFull = errors.New("worker: job queue is full")
	// ErrStopped is returned by Submit after Stop has been called.
	ErrStopped = errors.New("worker: dispatcher is stopped")
)

// Job represents a unit of work to be executed.
// Jobs carry their own context and deliver results through their own channels.
type Job interface {
	Execute() error // The method that performs the actual work
	ID() string     // A unique identifier for the job
}

// Worker pulls jobs from the shared job queue until it is closed.
type Worker struct {
	ID       int
	JobQueue <-chan Job
	Wg       *sync.WaitGroup
	Logger   *logrus.Logger
}

// NewWorker creates a new Worker.
func NewWorker(id int, jobQueue <-chan Job, wg *sync.WaitGroup, logger *logrus.Logger) Worker {
	return Worker{
		ID:       id,
		JobQueue: jobQueue,
		Wg:       wg,
		Logger:   logger,
	}
}

// Start makes the Worker consume jobs in its own goroutine.
func (w Worker) Start() {
	w.Wg.Add(1)
	go func() {
		defer w.Wg.Done()
		for job := range w.JobQueue {
			w.run(job)
		}
		w.Logger.WithField("worker_id", w.ID).Debug("Worker stopping")
	}()
}

func (w Worker) run(job Job) {
	entry := w.Logger.WithFields(logrus.Fields{"worker_id": w.ID, "job_id": job.ID()})

	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", fmt.Sprint(r)).Error("Job panicked")
		}
	}()

	entry.Debug("Started job")
	if err := job.Execute(); err != nil {
		entry.WithError(err).Warn("Job finished with error")
		return
	}
	entry.Debug("Finished job")
}

// Dispatcher manages a pool of workers and a bounded job queue.
type Dispatcher struct {
	MaxWorkers int
	JobQueue   chan Job
	Workers    []Worker
	Wg         sync.WaitGroup
	Logger     *logrus.Logger

	mu      sync.RWMutex
	running bool
	stopped bool
}

// NewDispatcher creates a new Dispatcher. Values below 1 are raised to 1.
func NewDispatcher(maxWorkers, jobQueueSize int, logger *logrus.Logger) *Dispatcher {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if jobQueueSize < 1 {
		jobQueueSize = 1
	}
	return &Dispatcher{
		MaxWorkers: maxWorkers,
		JobQueue:   make(chan Job, jobQueueSize),
		Workers:    make([]Worker, 0, maxWorkers),
		Logger:     logger,
	}
}

// Run starts the workers. Calling it more than once has no effect.
func (d *Dispatcher) Run() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running || d.stopped {
		return
	}
	d.running = true

	for i := 1; i <= d.MaxWorkers; i++ {
		worker := NewWorker(i, d.JobQueue, &d.Wg, d.Logger)
		d.Workers = append(d.Workers, worker)
		worker.Start()
	}
	d.Logger.WithFields(logrus.Fields{
		"workers":    d.MaxWorkers,
		"queue_size": cap(d.JobQueue),
	}).Info("Dispatcher is running")
}

// Submit enqueues job without blocking.
func (d *Dispatcher) Submit(job Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	select {
	case d.JobQueue <- job:
		d.Logger.WithField("job_id", job.ID()).Debug("Job submitted to queue")
		return nil
	default:
		d.Logger.WithFields(logrus.Fields{
			"job_id":  job.ID(),
			"pending": d.Pending(),
		}).Warn("Job queue full, rejecting job")
		return ErrQueueFull
	}
}

// Pending returns the number of queued jobs not yet picked up by a worker.
func (d *Dispatcher) Pending() int {
	return len(d.JobQueue)
}

// Stop rejects new jobs, lets the workers drain the queue and waits for
// them to exit. It is safe to call more than once.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.JobQueue)
	d.mu.Unlock()

	d.Logger.Info("Dispatcher: waiting for workers to drain")
	d.Wg.Wait()
	d.Logger.Info("Dispatcher: shutdown complete")
}
