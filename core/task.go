package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pingcap/errors"
)

// Task is an immutable unit of work carrying an identifier and a simulated duration.
// Executing a task blocks the calling goroutine for the declared duration and emits
// a Started and a Finished line through the sink.
type Task struct {
	id       string
	duration time.Duration
}

// ErrEmptyTaskID is returned when a task is constructed without an identifier.
var ErrEmptyTaskID = errors.New("task id must not be empty")

// ErrNegativeDuration is returned when a task is constructed with a negative duration.
var ErrNegativeDuration = errors.New("task duration must not be negative")

// NewTask creates an immutable task with the given identifier and simulated duration.
func NewTask(id string, duration time.Duration) (Task, error) {
	if id == "" {
		return Task{}, errors.Trace(ErrEmptyTaskID)
	}
	if duration < 0 {
		return Task{}, errors.Annotatef(ErrNegativeDuration, "task %q", id)
	}
	return Task{id: id, duration: duration}, nil
}

// MustTask is like NewTask but panics on invalid input.
// Intended for fixed in-process batches and tests.
func MustTask(id string, duration time.Duration) Task {
	t, err := NewTask(id, duration)
	if err != nil {
		panic(err)
	}
	return t
}

// ID returns the task identifier.
func (t Task) ID() string {
	return t.id
}

// Duration returns the declared simulated duration.
func (t Task) Duration() time.Duration {
	return t.duration
}

// WithPrefix returns a copy of the task whose identifier carries the given prefix.
// The receiver is unchanged; tasks are immutable after construction.
func (t Task) WithPrefix(prefix string) Task {
	return Task{id: prefix + t.id, duration: t.duration}
}

// Execute blocks the calling goroutine for the declared duration, bracketed by a
// Started and a Finished line on the sink. A cancellation of ctx while sleeping is
// swallowed: execution proceeds to emit the Finished line as if the delay completed.
// No error conditions are surfaced.
//
// The Finished line reports the task's declared duration in whole seconds
// (declared milliseconds divided by 1000), never measured wall time.
func (t Task) Execute(ctx context.Context, sink Sink) {
	t.execute(ctx, sink)
}

// execute is the internal form; it additionally reports whether the delay was
// interrupted, for execution records and metrics.
func (t Task) execute(ctx context.Context, sink Sink) (interrupted bool) {
	sink.Emit(fmt.Sprintf("Started task %s", t.id))

	if t.duration > 0 {
		timer := time.NewTimer(t.duration)
		select {
		case <-timer.C:
		case <-ctx.Done():
			// Interruption is a recoverable local condition: swallow it and
			// report the task as finished with its declared duration.
			timer.Stop()
			interrupted = true
		}
	}

	sink.Emit(fmt.Sprintf("Finished task %s in %d seconds", t.id, t.duration.Milliseconds()/1000))
	return interrupted
}

// =============================================================================
// Task spec parsing: "A=1s", "B=1100ms"
// =============================================================================

// ParseTask parses a single "id=duration" spec into a Task.
func ParseTask(spec string) (Task, error) {
	id, raw, ok := strings.Cut(spec, "=")
	if !ok {
		return Task{}, errors.Errorf("task spec %q: want id=duration", spec)
	}

	duration, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return Task{}, errors.Annotatef(err, "task spec %q", spec)
	}

	task, err := NewTask(strings.TrimSpace(id), duration)
	if err != nil {
		return Task{}, errors.Annotatef(err, "task spec %q", spec)
	}
	return task, nil
}

// ParseTaskList parses a comma-separated list of "id=duration" specs,
// preserving order. Empty elements are rejected.
func ParseTaskList(specs string) ([]Task, error) {
	parts := strings.Split(specs, ",")
	tasks := make([]Task, 0, len(parts))
	for _, part := range parts {
		task, err := ParseTask(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Trace(err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
