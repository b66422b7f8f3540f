package job

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Requeuer hands overdue scheduled posts back to the queue.
type Requeuer interface {
	RequeueOverdue(ctx context.Context) int
}

// Scheduler is satisfied by *cron.Cron.
type Scheduler interface {
	AddFunc(spec string, cmd func()) error
}

type OverdueSweepJob struct {
	rq      Requeuer
	timeout time.Duration

	// a slow sweep must not overlap the next tick
	mu sync.Mutex
}

func NewOverdueSweepJob(rq Requeuer, timeout time.Duration) *OverdueSweepJob {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &OverdueSweepJob{
		rq:      rq,
		timeout: timeout,
	}
}

// Sweep requeues every pending post whose time has passed, for example after
// the worker was down or a dispatch failed.
func (j *OverdueSweepJob) Sweep() {
	if !j.mu.TryLock() {
		slog.Info("overdue sweep still running, skipping tick")
		return
	}
	defer j.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if n := j.rq.RequeueOverdue(ctx); n > 0 {
		slog.Info("requeued overdue scheduled posts", "count", n)
	}
}

// Schedule registers the sweep to run every interval.
func (j *OverdueSweepJob) Schedule(s Scheduler, interval time.Duration) error {
	return s.AddFunc("@every "+interval.String(), j.Sweep)
}
