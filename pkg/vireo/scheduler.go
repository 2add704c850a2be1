package vireo

import "github.com/vireoui/vireo/internal/reactivity"

// FlushMode selects which queue a job or watcher is enqueued onto.
type FlushMode = reactivity.FlushMode

const (
	FlushPre  = reactivity.FlushPre
	FlushPost = reactivity.FlushPost
	FlushSync = reactivity.FlushSyncMode
)

// Job is a unit of work the scheduler can queue, dedup, and cancel by
// identity.
type Job = reactivity.Job

// NewJob wraps fn as a cancelable, dedupable scheduler job.
func NewJob(fn func()) *Job { return reactivity.NewJob(fn) }

// QueueJob enqueues j onto the queue selected by mode, on the process-wide
// default scheduler (spec.md §6's queueJob).
func QueueJob(j *Job, mode FlushMode) {
	reactivity.DefaultScheduler().QueueJob(j, mode)
}

// NextTick registers cb to run after the next full flush completes.
func NextTick(cb func()) {
	reactivity.DefaultScheduler().NextTick(cb)
}

// FlushSyncNow forces an immediate full flush of the default scheduler,
// draining pre/post/sync queues and firing any pending NextTick callbacks
// (spec.md §6's flushSync). Named with the Now suffix to avoid colliding
// with the FlushSync FlushMode constant above.
func FlushSyncNow() {
	reactivity.DefaultScheduler().FlushSync()
}

// PendingJobs reports the number of jobs currently queued on the default
// scheduler.
func PendingJobs() int {
	return reactivity.DefaultScheduler().Pending()
}
