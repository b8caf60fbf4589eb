package core

import (
	"context"
	"testing"
	"time"

	"github.com/pingcap/errors"
)

func spawnForTest(task Task) *ExecutionHandle {
	run := newStrategyRun(context.Background(), PolicyBatched, RunModeAwaited, []Task{task})
	return spawn(run, task, NewNopSink(), func(ExecutionRecord) {})
}

// TestExecutionHandle_AwaitBlocksUntilComplete tests the blocking wait
// Main test items:
// 1. Await returns nil only after the unit's Execute has returned
// 2. Completed and Awaited report the handle's state transitions
func TestExecutionHandle_AwaitBlocksUntilComplete(t *testing.T) {
	h := spawnForTest(MustTask("A", 50*time.Millisecond))

	start := time.Now()
	if err := h.Await(context.Background()); err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Await returned after %v, want at least the 50ms delay", elapsed)
	}

	if !h.Completed() {
		t.Error("handle not completed after Await")
	}
	if !h.Awaited() {
		t.Error("handle not marked awaited after Await")
	}
}

// TestExecutionHandle_ReAwaitReturnsImmediately tests retired handles
// Main test items:
// 1. A second Await on a completed handle returns immediately
func TestExecutionHandle_ReAwaitReturnsImmediately(t *testing.T) {
	h := spawnForTest(MustTask("A", 10*time.Millisecond))

	if err := h.Await(context.Background()); err != nil {
		t.Fatalf("first Await failed: %v", err)
	}

	start := time.Now()
	if err := h.Await(context.Background()); err != nil {
		t.Fatalf("second Await failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Errorf("re-Await took %v, want immediate return", elapsed)
	}
}

// TestExecutionHandle_AbandonedAwait tests wait abandonment
// Main test items:
// 1. Await returns the wait context's error when it ends before completion
// 2. Abandoning the wait does not cancel the unit; it runs to completion
func TestExecutionHandle_AbandonedAwait(t *testing.T) {
	sink := NewMemorySink()
	run := newStrategyRun(context.Background(), PolicyBatched, RunModeAwaited, nil)
	h := spawn(run, MustTask("A", 100*time.Millisecond), sink, func(ExecutionRecord) {})

	waitCtx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := h.Await(waitCtx)
	if !errors.ErrorEqual(errors.Cause(err), context.DeadlineExceeded) {
		t.Fatalf("abandoned Await error = %v, want context.DeadlineExceeded", err)
	}
	if h.Awaited() {
		t.Error("handle marked awaited after abandoned wait")
	}

	// The unit was not cancelled: a fresh Await observes normal completion.
	if err := h.Await(context.Background()); err != nil {
		t.Fatalf("follow-up Await failed: %v", err)
	}
	if sink.Len() != 2 {
		t.Errorf("sink lines = %d, want the unit's full Started/Finished bracket", sink.Len())
	}
}
