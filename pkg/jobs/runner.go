// Package jobs implements the asynchronous job supervisor: an in-memory
// store of job records and a single-worker runner per job kind.
//
// The runner wraps slow external operations (a transformation run, a
// verification build) behind an immediately returned job id. Callers poll
// the store for the terminal record; nothing in this package blocks a
// status read on a running job.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is the outcome a unit of work reports on normal return.
// OK selects between the SUCCESS and FAILURE terminal states.
type Result struct {
	OK      bool
	Message string
}

// Work is one unit of background work. A returned error, or a panic, marks
// the job ERROR; the runner itself never crashes from a job's fault.
type Work func(ctx context.Context) (Result, error)

type task struct {
	jobID string
	work  Work
}

// Runner executes submitted work on one long-lived worker goroutine, so
// jobs of a given kind run one at a time in submission order. This is a
// deliberate backpressure choice: the external engine and build tool are
// serialized resources, not targets for unbounded parallelism.
type Runner struct {
	kind   Kind
	store  *Store
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []task
	closed bool
	done   chan struct{}
}

// NewRunner starts the worker goroutine for one job kind. Pass a nil
// logger to disable logging.
func NewRunner(kind Kind, store *Store, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		kind:   kind,
		store:  store,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	r.cond = sync.NewCond(&r.mu)
	go r.loop()
	return r
}

// Store returns the store this runner writes to.
func (r *Runner) Store() *Store {
	return r.store
}

// Submit registers a RUNNING placeholder record for a fresh job id, queues
// work for the background worker, and returns the id. The id is visible to
// Store.Get before Submit returns; Submit never waits for execution. The
// queue is unbounded, matching the unbounded job map.
func (r *Runner) Submit(placeholder string, work Work) (string, error) {
	if work == nil {
		return "", fmt.Errorf("work is required")
	}
	if placeholder == "" {
		placeholder = "Starting job..."
	}

	jobID := uuid.New().String()
	r.store.Put(Record{
		ID:        jobID,
		Kind:      r.kind,
		Status:    StatusRunning,
		Message:   placeholder,
		CreatedAt: time.Now().UTC(),
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return "", fmt.Errorf("runner is closed")
	}
	r.queue = append(r.queue, task{jobID: jobID, work: work})
	r.cond.Signal()

	r.logger.Debug("job submitted",
		zap.String("job_id", jobID),
		zap.String("kind", string(r.kind)))
	return jobID, nil
}

// Close stops accepting submissions and waits for queued work to drain.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		<-r.done
		return
	}
	r.closed = true
	r.cond.Signal()
	r.mu.Unlock()

	<-r.done
	r.cancel()
}

func (r *Runner) loop() {
	defer close(r.done)
	for {
		r.mu.Lock()
		for len(r.queue) == 0 && !r.closed {
			r.cond.Wait()
		}
		if len(r.queue) == 0 && r.closed {
			r.mu.Unlock()
			return
		}
		next := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()

		r.run(next)
	}
}

// run executes one job and writes its single terminal record. The path is
// total: normal return, returned error, and panic all land in a terminal
// state, so the store is never left without one.
func (r *Runner) run(t task) {
	defer func() {
		if rec := recover(); rec != nil {
			r.finish(t.jobID, StatusError, fmt.Sprintf("panic: %v", rec))
		}
	}()

	r.logger.Info("job started",
		zap.String("job_id", t.jobID),
		zap.String("kind", string(r.kind)))

	result, err := t.work(r.ctx)
	if err != nil {
		r.logger.Error("job faulted",
			zap.String("job_id", t.jobID),
			zap.Error(err))
		r.finish(t.jobID, StatusError, err.Error())
		return
	}

	status := StatusSuccess
	if !result.OK {
		status = StatusFailure
	}
	r.logger.Info("job completed",
		zap.String("job_id", t.jobID),
		zap.String("status", string(status)))
	r.finish(t.jobID, status, result.Message)
}

func (r *Runner) finish(jobID string, status Status, message string) {
	now := time.Now().UTC()
	prev := r.store.Get(jobID)
	r.store.Put(Record{
		ID:        jobID,
		Kind:      r.kind,
		Status:    status,
		Message:   message,
		CreatedAt: prev.CreatedAt,
		EndedAt:   &now,
	})
}
