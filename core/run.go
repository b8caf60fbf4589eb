package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pingcap/errors"
	"go.uber.org/atomic"
)

// =============================================================================
// RunMode: awaited vs detached completion contract
// =============================================================================

// RunMode distinguishes runs whose handles are all awaited before the engine
// call returns from fire-and-forget runs, where that invariant is waived by
// design rather than by oversight.
type RunMode int

const (
	// RunModeAwaited: every handle created within the run is awaited before
	// the run reaches Drained.
	RunModeAwaited RunMode = iota

	// RunModeDetached: handles are never awaited by the engine call; the run
	// stays Running and completion is observed only through sink output.
	RunModeDetached
)

func (m RunMode) String() string {
	if m == RunModeDetached {
		return "detached"
	}
	return "awaited"
}

// =============================================================================
// RunState: Idle -> Running -> Drained
// =============================================================================

// RunState is the lifecycle state of a StrategyRun.
type RunState int32

const (
	// RunStateIdle: created, no task started yet.
	RunStateIdle RunState = iota

	// RunStateRunning: at least one task started; not all handles awaited.
	RunStateRunning

	// RunStateDrained: every unit has completed and been awaited.
	// Never reached by a detached engine call.
	RunStateDrained
)

func (s RunState) String() string {
	switch s {
	case RunStateIdle:
		return "idle"
	case RunStateRunning:
		return "running"
	case RunStateDrained:
		return "drained"
	default:
		return "unknown"
	}
}

// =============================================================================
// StrategyRun
// =============================================================================

// StrategyRun is the ephemeral record of one strategy execution: the ordered
// task list plus the chosen policy. It owns the goroutines it spawns and the
// handles referencing them.
type StrategyRun struct {
	id     string
	policy Policy
	mode   RunMode
	tasks  []Task
	ctx    context.Context

	handles []*ExecutionHandle

	state     atomic.Int32
	startedAt time.Time
	wall      atomic.Duration
}

func newStrategyRun(ctx context.Context, policy Policy, mode RunMode, tasks []Task) *StrategyRun {
	if ctx == nil {
		ctx = context.Background()
	}
	return &StrategyRun{
		id:     uuid.NewString(),
		policy: policy,
		mode:   mode,
		tasks:  tasks,
		ctx:    ctx,
	}
}

// ID returns the unique run identifier.
func (r *StrategyRun) ID() string {
	return r.id
}

// Policy returns the policy this run executed under.
func (r *StrategyRun) Policy() Policy {
	return r.policy
}

// Mode returns the run's completion contract.
func (r *StrategyRun) Mode() RunMode {
	return r.mode
}

// State returns the current lifecycle state.
func (r *StrategyRun) State() RunState {
	return RunState(r.state.Load())
}

// TaskCount returns the number of tasks in the run's ordered list.
func (r *StrategyRun) TaskCount() int {
	return len(r.tasks)
}

// Spawned returns the number of execution handles the run created.
// Zero for sequential runs, which never leave the calling goroutine.
func (r *StrategyRun) Spawned() int {
	return len(r.handles)
}

// WallTime returns the run's total wall time. For detached runs this covers
// only the spawn loop, since the engine call returned before completion.
func (r *StrategyRun) WallTime() time.Duration {
	return r.wall.Load()
}

// Settle blocks until every spawned unit in this run has completed, regardless
// of run mode. It lets demos and tests observe the eventual completion of a
// detached run without changing the fire-and-forget contract of the engine call
// itself. Settling an already drained or handle-free run returns immediately.
func (r *StrategyRun) Settle(ctx context.Context) error {
	for _, h := range r.handles {
		if err := h.Await(ctx); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func (r *StrategyRun) markRunning() {
	r.startedAt = time.Now()
	r.state.CompareAndSwap(int32(RunStateIdle), int32(RunStateRunning))
}

func (r *StrategyRun) markDrained() {
	r.wall.Store(time.Since(r.startedAt))
	r.state.Store(int32(RunStateDrained))
}

// finishSpawnPhase records wall time for runs that return before draining.
func (r *StrategyRun) finishSpawnPhase() {
	r.wall.Store(time.Since(r.startedAt))
}
