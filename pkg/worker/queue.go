// Package worker runs independent jobs concurrently under a bounded worker
// budget. Jobs are queued first, then workers are spawned to drain the
// queue; a failing job is reported and recorded without stopping its
// siblings, and Join always returns once every job has finished.
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pairsync/pairsync/pkg/logging"
)

// Job is one queued unit of work. Jobs share no state with each other
// beyond whatever the Run closure captures.
type Job struct {
	// Name identifies the job in logs and error messages, e.g. a pair name.
	Name string

	// Run does the work. The error (or panic) it produces marks this job
	// failed; it never affects other jobs.
	Run func(ctx context.Context) error
}

// State tracks a job through its lifecycle.
type State int

// Job states. Failed is terminal; the queue never retries.
const (
	StateQueued State = iota
	StateRunning
	StateCompleted
	StateFailed
)

// ErrorHandler is called once per failed job, from the worker goroutine
// that ran it. It is responsible for user-facing reporting; the queue only
// records the failure.
type ErrorHandler func(jobName string, err error)

type job struct {
	id    string
	state State
	spec  Job
}

// Queue is a worker-queue: enqueue jobs with Put, then call SpawnWorker
// once per job, then Join. Workers exit when the queue runs dry, so jobs
// must be enqueued before their worker is spawned.
type Queue struct {
	maxWorkers int
	onError    ErrorHandler

	mu      sync.Mutex
	pending []*job
	spawned int
	errs    []error

	wg sync.WaitGroup // open jobs
}

// Option configures a Queue.
type Option func(*Queue)

// WithErrorHandler replaces the default error handler, which logs the
// failure through the default logger.
func WithErrorHandler(h ErrorHandler) Option {
	return func(q *Queue) {
		q.onError = h
	}
}

// NewQueue creates a queue with the given concurrency budget. A budget of 0
// means one worker per submitted job, i.e. maximum fan-out; see
// ResolveMaxWorkers for how the CLI narrows that under debug logging.
func NewQueue(maxWorkers int, opts ...Option) *Queue {
	q := &Queue{
		maxWorkers: maxWorkers,
		onError: func(jobName string, err error) {
			logging.Error().Err(err).Str("job", jobName).Msg("Job failed")
		},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Put enqueues a job. It never blocks.
func (q *Queue) Put(spec Job) {
	j := &job{
		id:    uuid.NewString(),
		state: StateQueued,
		spec:  spec,
	}

	// The counter must cover the job before any worker can take it, or a
	// fast worker could Done past zero ahead of this Add.
	q.wg.Add(1)

	q.mu.Lock()
	q.pending = append(q.pending, j)
	q.mu.Unlock()
}

// SpawnWorker starts a worker to drain the queue, unless the concurrency
// budget has been reached already. Workers stop as soon as the queue is
// empty, so call Put before SpawnWorker.
func (q *Queue) SpawnWorker(ctx context.Context) {
	q.mu.Lock()
	if q.maxWorkers > 0 && q.spawned >= q.maxWorkers {
		q.mu.Unlock()
		return
	}
	q.spawned++
	q.mu.Unlock()

	go q.worker(ctx)
}

// Join blocks until every submitted job has finished, successfully or not.
// It never fails itself; inspect Failed or Errors for the outcome.
func (q *Queue) Join() {
	q.wg.Wait()
}

// Failed returns the number of failed jobs.
func (q *Queue) Failed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.errs)
}

// Errors returns the errors of all failed jobs, in completion order.
func (q *Queue) Errors() []error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]error(nil), q.errs...)
}

// worker drains the queue until it is empty, then exits.
func (q *Queue) worker(ctx context.Context) {
	for {
		j := q.take()
		if j == nil {
			return
		}
		q.run(ctx, j)
		q.wg.Done()
	}
}

// take pops the next queued job, or nil when the queue is empty.
func (q *Queue) take() *job {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}
	j := q.pending[0]
	q.pending = q.pending[1:]
	j.state = StateRunning
	return j
}

// run executes one job inside the error boundary: a returned error or a
// panic marks the job failed and is handed to the error handler; nothing
// escapes to the worker loop.
func (q *Queue) run(ctx context.Context, j *job) {
	ctx = logging.WithJob(ctx, j.id)
	log := logging.Ctx(ctx)
	log.Debug().Str("job", j.spec.Name).Msg("Job started")

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("job %s panicked: %v", j.spec.Name, r)
			}
		}()
		err = j.spec.Run(ctx)
	}()

	q.mu.Lock()
	if err != nil {
		j.state = StateFailed
		q.errs = append(q.errs, err)
	} else {
		j.state = StateCompleted
	}
	q.mu.Unlock()

	if err != nil {
		q.onError(j.spec.Name, err)
		return
	}
	log.Debug().Str("job", j.spec.Name).Msg("Job finished")
}

// ResolveMaxWorkers applies the budget rule for the --max-workers flag:
// 0 normally means one worker per job, but with debug logging enabled it
// degrades to 1 so interleaved debug output stays readable.
func ResolveMaxWorkers(n int, debugLogging bool) int {
	if n == 0 && debugLogging {
		return 1
	}
	return n
}
