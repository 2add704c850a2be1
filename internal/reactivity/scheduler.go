package reactivity

import (
	"sync"
	"time"
)

// FlushMode selects which queue a job or watcher is enqueued onto (spec.md
// §4.3).
type FlushMode int

const (
	FlushPre FlushMode = iota
	FlushPost
	FlushSyncMode
)

// Job is a unit of scheduled work keyed by identity for dedup/cancel.
type Job struct {
	id uint64
	fn func()
}

// NewJob wraps fn with a fresh identity. Two Jobs are never considered the
// same job for dedup purposes unless the caller reuses the same *Job
// value — which is the normal case: a Subscriber/render-effect keeps one
// Job around and re-enqueues it.
func NewJob(fn func()) *Job {
	return &Job{id: nextSignalID(), fn: fn}
}

// ID returns the job's dedup/cancel identity.
func (j *Job) ID() uint64 { return j.id }

// fifoQueue is an ordered, dedup-by-identity job queue: re-enqueuing a job
// already present moves nothing (it keeps its original position), which
// is what "executes it once" per spec.md §8 requires — FIFO by the first
// enqueue in the cycle.
type fifoQueue struct {
	order []*Job
	index map[uint64]int
}

func newFifoQueue() *fifoQueue {
	return &fifoQueue{index: map[uint64]int{}}
}

func (q *fifoQueue) push(j *Job) bool {
	if _, ok := q.index[j.id]; ok {
		return false
	}
	q.index[j.id] = len(q.order)
	q.order = append(q.order, j)
	return true
}

func (q *fifoQueue) remove(id uint64) bool {
	i, ok := q.index[id]
	if !ok {
		return false
	}
	q.order = append(q.order[:i], q.order[i+1:]...)
	delete(q.index, id)
	for k := i; k < len(q.order); k++ {
		q.index[q.order[k].id] = k
	}
	return true
}

func (q *fifoQueue) drain() []*Job {
	out := q.order
	q.order = nil
	q.index = map[uint64]int{}
	return out
}

func (q *fifoQueue) len() int { return len(q.order) }

// Scheduler is the single-threaded, cooperative job queue of spec.md §4.3.
// There is no background goroutine: Flush/FlushSync must be pumped
// explicitly by the host event loop (the same discipline the teacher's
// FlushWatchers documents for a Bubbletea Update() cycle).
type Scheduler struct {
	mu         sync.Mutex
	pre        *fifoQueue
	post       *fifoQueue
	syncQueue  *fifoQueue
	flushing   bool
	nextTicks  []func()
	onJobError func(err error, job *Job)
	metrics    *Metrics
}

// SchedulerOption configures a Scheduler at construction, following the
// teacher's functional-options convention (runner_options.go).
type SchedulerOption func(*Scheduler)

// WithJobErrorHandler installs the handler invoked when a job panics
// during flush; by default the error is logged and the
// flush continues (spec.md §4.3 exception policy).
func WithJobErrorHandler(h func(err error, job *Job)) SchedulerOption {
	return func(s *Scheduler) { s.onJobError = h }
}

// WithMetrics attaches a Metrics recorder to the scheduler.
func WithMetrics(m *Metrics) SchedulerOption {
	return func(s *Scheduler) { s.metrics = m }
}

// NewScheduler constructs an empty scheduler.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		pre:       newFifoQueue(),
		post:      newFifoQueue(),
		syncQueue: newFifoQueue(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultScheduler = NewScheduler()

// DefaultScheduler returns the process-wide scheduler used by the public
// watch/effect API.
func DefaultScheduler() *Scheduler { return defaultScheduler }

// QueueJob enqueues j onto the queue selected by mode. sync jobs run
// immediately if no flush is in progress, or onto the re-entrant sync
// queue if one is (spec.md §4.3: "syncQueue used only for re-entrant work
// during a flush").
func (s *Scheduler) QueueJob(j *Job, mode FlushMode) {
	s.mu.Lock()
	if mode == FlushSyncMode && !s.flushing {
		s.mu.Unlock()
		s.runJob(j)
		return
	}
	var q *fifoQueue
	switch mode {
	case FlushSyncMode:
		q = s.syncQueue
	case FlushPre:
		q = s.pre
	default:
		q = s.post
	}
	q.push(j)
	if s.metrics != nil {
		s.metrics.observeQueueDepth(s.pre.len() + s.post.len() + s.syncQueue.len())
	}
	s.mu.Unlock()
}

// Cancel dequeues a pending job by identity from every queue. Disposing an
// effect cancels any of its pending jobs by calling this for the effect's
// job.
func (s *Scheduler) Cancel(j *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pre.remove(j.id)
	s.post.remove(j.id)
	s.syncQueue.remove(j.id)
}

// NextTick registers cb to run at the next Flush/FlushSync boundary, after
// all pre/post jobs have run. It is the public nextTick primitive.
func (s *Scheduler) NextTick(cb func()) {
	s.mu.Lock()
	s.nextTicks = append(s.nextTicks, cb)
	s.mu.Unlock()
}

// Flush runs pre exhaustively (pre jobs enqueued during the flush are
// processed in the same cycle), then one pass of post. A post job commonly
// writes a signal a pre-flush watcher depends on, which re-queues a pre
// job; spec.md §9 requires that job to run before the outer flush completes
// rather than waiting for the next Flush call, so post and pre keep
// alternating — pre drained exhaustively, one pass of post, repeat — until
// a round leaves post empty. The re-entrant sync queue runs last, then
// queued nextTick callbacks fire. Re-entering Flush from inside a job is a
// no-op (spec.md §4.3: "the inner flush() is a no-op").
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if s.flushing {
		s.mu.Unlock()
		return
	}
	s.flushing = true
	s.mu.Unlock()

	for {
		s.drainExhaustively(func() *fifoQueue { return s.pre })
		jobs := s.drainOnePass(func() *fifoQueue { return s.post })
		if len(jobs) == 0 {
			break
		}
	}
	s.drainExhaustively(func() *fifoQueue { return s.syncQueue })

	s.mu.Lock()
	ticks := s.nextTicks
	s.nextTicks = nil
	s.flushing = false
	if s.metrics != nil {
		s.metrics.observeQueueDepth(s.pre.len() + s.post.len() + s.syncQueue.len())
	}
	s.mu.Unlock()

	for _, cb := range ticks {
		cb()
	}
}

// FlushSync forces an immediate full flush, used in tests and at initial
// mount.
func (s *Scheduler) FlushSync() { s.Flush() }

// drainExhaustively repeatedly drains the queue returned by pick until it
// is empty, so jobs enqueued by a running job in the same queue are still
// processed within this flush cycle.
func (s *Scheduler) drainExhaustively(pick func() *fifoQueue) {
	for {
		s.mu.Lock()
		jobs := pick().drain()
		s.mu.Unlock()
		if len(jobs) == 0 {
			return
		}
		for _, j := range jobs {
			s.runJob(j)
		}
	}
}

// drainOnePass drains and runs whatever is in the picked queue right now,
// without looping back for jobs those jobs themselves enqueue onto the same
// queue (drainExhaustively does that; this is the building block Flush uses
// to alternate between pre and post a round at a time). Returns the jobs
// that ran, so the caller can tell whether the round did anything.
func (s *Scheduler) drainOnePass(pick func() *fifoQueue) []*Job {
	s.mu.Lock()
	jobs := pick().drain()
	s.mu.Unlock()
	for _, j := range jobs {
		s.runJob(j)
	}
	return jobs
}

func (s *Scheduler) runJob(j *Job) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.reportJobError(Wrap(SourceScheduler, AsPanic(r)), j)
		}
		if s.metrics != nil {
			s.metrics.observeJobDuration(time.Since(start))
		}
	}()
	j.fn()
	if s.metrics != nil {
		s.metrics.incJobsTotal()
	}
}

func (s *Scheduler) reportJobError(err error, j *Job) {
	if s.onJobError != nil {
		s.onJobError(err, j)
		return
	}
	Logf("scheduler job failed: %v", err)
}

// Pending reports the combined number of jobs currently queued, used by
// tests asserting dedup behavior.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pre.len() + s.post.len() + s.syncQueue.len()
}
