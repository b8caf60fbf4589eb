package core

import (
	"context"
	"time"

	"github.com/pingcap/errors"
	"go.uber.org/atomic"
)

// ExecutionHandle is an opaque reference to one in-flight unit of work.
// It is created by spawning a task onto its own goroutine and supports a single
// operation, Await, which blocks the caller until the unit's Execute has returned.
//
// A handle is owned by the StrategyRun that created it. Once the unit has
// completed, Await returns immediately on every subsequent call; abandoning an
// Await (via context) does not cancel the unit. No cancellation is supported
// anywhere: once a unit begins its delay, it runs to completion.
type ExecutionHandle struct {
	task    Task
	done    chan struct{}
	awaited atomic.Bool
}

// spawn starts the task on a new goroutine and returns its handle.
// The spawned goroutine executes the task with a background-like context carried
// from the run, then reports the completed execution through record.
func spawn(run *StrategyRun, task Task, sink Sink, record func(ExecutionRecord)) *ExecutionHandle {
	h := &ExecutionHandle{
		task: task,
		done: make(chan struct{}),
	}

	go func() {
		defer close(h.done)

		startedAt := time.Now()
		interrupted := task.execute(run.ctx, sink)
		record(ExecutionRecord{
			RunID:       run.id,
			TaskID:      task.ID(),
			Policy:      run.policy,
			Declared:    task.Duration(),
			StartedAt:   startedAt,
			FinishedAt:  time.Now(),
			Interrupted: interrupted,
		})
	}()

	return h
}

// Await blocks the calling goroutine until the unit's Execute has returned, or
// until ctx is done. Returning ctx's error abandons the wait only; the unit
// keeps running to completion.
func (h *ExecutionHandle) Await(ctx context.Context) error {
	select {
	case <-h.done:
		h.awaited.Store(true)
		return nil
	case <-ctx.Done():
		return errors.Trace(ctx.Err())
	}
}

// Completed reports whether the unit's Execute has returned.
func (h *ExecutionHandle) Completed() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Awaited reports whether a call to Await has observed completion.
func (h *ExecutionHandle) Awaited() bool {
	return h.awaited.Load()
}

// TaskID returns the identifier of the task this handle tracks.
func (h *ExecutionHandle) TaskID() string {
	return h.task.ID()
}
