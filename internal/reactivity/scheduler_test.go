package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_FlushRunsPreBeforePost(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.QueueJob(NewJob(func() { order = append(order, "post") }), FlushPost)
	s.QueueJob(NewJob(func() { order = append(order, "pre") }), FlushPre)
	s.Flush()

	assert.Equal(t, []string{"pre", "post"}, order)
}

func TestScheduler_RequeueingSameJobDedupsWithinACycle(t *testing.T) {
	s := NewScheduler()
	runs := 0
	j := NewJob(func() { runs++ })

	s.QueueJob(j, FlushPre)
	s.QueueJob(j, FlushPre)
	assert.Equal(t, 1, s.Pending(), "re-enqueuing the same job must not duplicate it")

	s.Flush()
	assert.Equal(t, 1, runs)
}

func TestScheduler_ReentrantQueueingDrainsExhaustively(t *testing.T) {
	s := NewScheduler()
	count := 0
	var first *Job
	first = NewJob(func() {
		count++
		if count < 3 {
			s.QueueJob(first, FlushPre)
		}
	})
	s.QueueJob(first, FlushPre)
	s.Flush()

	assert.Equal(t, 3, count, "jobs enqueued by a running pre job must run within the same flush cycle")
}

func TestScheduler_CancelRemovesPendingJob(t *testing.T) {
	s := NewScheduler()
	ran := false
	j := NewJob(func() { ran = true })
	s.QueueJob(j, FlushPre)
	s.Cancel(j)
	s.Flush()

	assert.False(t, ran)
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_NextTickFiresAfterFlush(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.QueueJob(NewJob(func() { order = append(order, "job") }), FlushPre)
	s.NextTick(func() { order = append(order, "tick") })
	s.Flush()

	assert.Equal(t, []string{"job", "tick"}, order)
}

func TestScheduler_SyncJobRunsImmediatelyOutsideFlush(t *testing.T) {
	s := NewScheduler()
	ran := false
	s.QueueJob(NewJob(func() { ran = true }), FlushSyncMode)
	assert.True(t, ran, "a sync job queued outside a flush must run immediately")
}

func TestScheduler_SyncJobDuringFlushIsDeferredToSyncQueue(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.QueueJob(NewJob(func() {
		order = append(order, "pre")
		s.QueueJob(NewJob(func() { order = append(order, "sync") }), FlushSyncMode)
	}), FlushPre)
	s.Flush()

	require.Equal(t, []string{"pre", "sync"}, order)
}

func TestScheduler_JobPanicIsReportedAndFlushContinues(t *testing.T) {
	s := NewScheduler()
	var gotErr error
	s2 := NewScheduler(WithJobErrorHandler(func(err error, j *Job) { gotErr = err }))
	_ = s

	ranAfter := false
	s2.QueueJob(NewJob(func() { panic("boom") }), FlushPre)
	s2.QueueJob(NewJob(func() { ranAfter = true }), FlushPre)
	s2.Flush()

	require.Error(t, gotErr)
	assert.True(t, ranAfter, "one job panicking must not stop the rest of the flush")
}

func TestScheduler_PreJobQueuedDuringPostReentersBeforeFlushCompletes(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.QueueJob(NewJob(func() {
		order = append(order, "post")
		s.QueueJob(NewJob(func() { order = append(order, "pre-again") }), FlushPre)
	}), FlushPost)
	s.Flush()

	assert.Equal(t, []string{"post", "pre-again"}, order, "a pre job enqueued during the post drain must run before the outer flush completes, not on the next Flush call")
}

func TestScheduler_ReenteringFlushIsNoOp(t *testing.T) {
	s := NewScheduler()
	inner := false
	s.QueueJob(NewJob(func() {
		s.Flush() // re-entrant call while flushing must be a no-op
		inner = true
	}), FlushPre)
	assert.NotPanics(t, func() { s.Flush() })
	assert.True(t, inner)
}
