package worker

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type funcJob struct {
	id string
	fn func() error
}

func (j funcJob) ID() string     { return j.id }
func (j funcJob) Execute() error { return j.fn() }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestDispatcherRunsAllJobs(t *testing.T) {
	d := NewDispatcher(3, 20, quietLogger())
	d.Run()

	var done int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		job := funcJob{id: fmt.Sprintf("job-%d", i), fn: func() error {
			defer wg.Done()
			atomic.AddInt32(&done, 1)
			return nil
		}}
		if err := d.Submit(job); err != nil {
			t.Fatalf("submit %s: %v", job.ID(), err)
		}
	}

	wg.Wait()
	d.Stop()

	if got := atomic.LoadInt32(&done); got != 20 {
		t.Fatalf("expected 20 jobs, got %d", got)
	}
}

func TestSubmitRejectsWhenQueueFull(t *testing.T) {
	d := NewDispatcher(1, 1, quietLogger())
	d.Run()

	release := make(chan struct{})
	started := make(chan struct{})
	blocking := funcJob{id: "blocking", fn: func() error {
		close(started)
		<-release
		return nil
	}}
	if err := d.Submit(blocking); err != nil {
		t.Fatalf("submit blocking job: %v", err)
	}
	<-started

	if err := d.Submit(funcJob{id: "queued", fn: func() error { return nil }}); err != nil {
		t.Fatalf("submit queued job: %v", err)
	}
	if got := d.Pending(); got != 1 {
		t.Fatalf("expected 1 pending job, got %d", got)
	}

	err := d.Submit(funcJob{id: "overflow", fn: func() error { return nil }})
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	close(release)
	d.Stop()
}

func TestStopDrainsQueueAndRejectsNewJobs(t *testing.T) {
	d := NewDispatcher(1, 5, quietLogger())

	var ran int32
	for i := 0; i < 5; i++ {
		if err := d.Submit(funcJob{id: fmt.Sprint(i), fn: func() error {
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&ran, 1)
			return nil
		}}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	d.Run()
	d.Stop()
	d.Stop()

	if got := atomic.LoadInt32(&ran); got != 5 {
		t.Fatalf("expected queued jobs to drain, ran %d", got)
	}
	if err := d.Submit(funcJob{id: "late", fn: func() error { return nil }}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestWorkerSurvivesPanicsAndErrors(t *testing.T) {
	d := NewDispatcher(1, 3, quietLogger())
	d.Run()

	done := make(chan struct{})
	_ = d.Submit(funcJob{id: "panics", fn: func() error { panic("boom") }})
	_ = d.Submit(funcJob{id: "fails", fn: func() error { return errors.New("nope") }})
	_ = d.Submit(funcJob{id: "ok", fn: func() error { close(done); return nil }})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not recover from panic")
	}
	d.Stop()
}

func TestNewDispatcherClampsSizes(t *testing.T) {
	d := NewDispatcher(0, -1, quietLogger())
	if d.MaxWorkers != 1 || cap(d.JobQueue) != 1 {
		t.Fatalf("expected sizes clamped to 1, got workers=%d queue=%d", d.MaxWorkers, cap(d.JobQueue))
	}
}
