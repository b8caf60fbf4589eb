package core

import (
	"context"
	"time"

	"github.com/pingcap/errors"
)

// Engine executes an ordered list of tasks under one of four policies, each
// with distinct concurrency and blocking semantics. The engine itself carries
// no per-run state; every call produces a fresh StrategyRun that owns the
// goroutines it spawns.
//
// No policy has a failure mode: tasks cannot fail, interruptions are swallowed
// inside Task, and nothing is retried. The only errors an engine surfaces come
// from dispatching on an unknown policy value.
type Engine struct {
	sink    Sink
	logger  Logger
	metrics Metrics

	history  executionHistory
	counters engineCounters
}

// NewEngine creates an engine with the given config, filling in defaults for
// any collaborator left nil.
func NewEngine(config EngineConfig) *Engine {
	config = config.withDefaults()
	return &Engine{
		sink:    config.Sink,
		logger:  config.Logger,
		metrics: config.Metrics,
		history: newExecutionHistory(config.HistoryCapacity),
	}
}

// Run dispatches to the policy's engine operation.
func (e *Engine) Run(ctx context.Context, policy Policy, tasks []Task) (*StrategyRun, error) {
	switch policy {
	case PolicySequential:
		return e.RunSequential(ctx, tasks), nil
	case PolicyDetached:
		return e.RunDetached(ctx, tasks), nil
	case PolicyLockstep:
		return e.RunLockstep(ctx, tasks), nil
	case PolicyBatched:
		return e.RunBatched(ctx, tasks), nil
	default:
		return nil, errors.Annotatef(ErrUnknownPolicy, "policy %d", policy)
	}
}

// RunSequential executes each task in order on the calling goroutine, waiting
// for it to return before advancing to the next. Never more than one unit of
// work is outstanding, so Running and Drained coincide per element. Total wall
// time is the sum of the declared durations.
//
// Ordering guarantee: strict program order of Started/Finished lines, one task
// fully bracketed before the next begins.
func (e *Engine) RunSequential(ctx context.Context, tasks []Task) *StrategyRun {
	run := e.beginRun(ctx, PolicySequential, RunModeAwaited, tasks)

	for _, task := range tasks {
		startedAt := time.Now()
		interrupted := task.execute(run.ctx, e.sink)
		e.record(ExecutionRecord{
			RunID:       run.id,
			TaskID:      task.ID(),
			Policy:      PolicySequential,
			Declared:    task.Duration(),
			StartedAt:   startedAt,
			FinishedAt:  time.Now(),
			Interrupted: interrupted,
		})
	}

	e.drain(run)
	return run
}

// RunDetached spawns every task onto its own goroutine in order and returns as
// soon as all handles are created, awaiting none of them. The returned run
// stays in the Running state: Drained is never reached by this call, and
// completion is observed only through sink output.
//
// This is the one policy that waives the drain invariant by design. The caller
// has no guarantee that any task has finished, or even started, by the time
// this returns. Start order among spawned units is not guaranteed to match
// creation order. Use StrategyRun.Settle to observe eventual completion.
func (e *Engine) RunDetached(ctx context.Context, tasks []Task) *StrategyRun {
	run := e.beginRun(ctx, PolicyDetached, RunModeDetached, tasks)

	for _, task := range tasks {
		run.handles = append(run.handles, e.spawnUnit(run, task))
	}

	run.finishSpawnPhase()
	e.finishStrategy(run)
	e.logger.Info("engine: spawn phase complete, run left detached",
		F("policy", run.policy.String()),
		F("runID", run.id),
		F("spawned", run.Spawned()))
	return run
}

// RunLockstep spawns each task onto its own goroutine, then immediately awaits
// it before spawning the next. Observable start/finish ordering is identical to
// RunSequential's for the same input, but every unit pays a goroutine spawn and
// no parallelism is achieved. This policy demonstrates the pitfall of naively
// interleaving "start" and "join"; it is intentionally not an optimization.
func (e *Engine) RunLockstep(ctx context.Context, tasks []Task) *StrategyRun {
	run := e.beginRun(ctx, PolicyLockstep, RunModeAwaited, tasks)

	for _, task := range tasks {
		h := e.spawnUnit(run, task)
		run.handles = append(run.handles, h)
		if err := h.Await(ctx); err != nil {
			e.abandonRun(run, err)
			return run
		}
	}

	e.drain(run)
	return run
}

// RunBatched spawns all tasks onto their own goroutines first, then awaits each
// handle in the same order. All units begin running essentially simultaneously,
// subject to scheduler fairness; the call returns only once every handle has
// completed. Completion order among tasks is not guaranteed to match creation
// order, but the return happens only after the slowest task's Finished line.
// Total wall time is bounded by the maximum single-task duration, not the sum.
func (e *Engine) RunBatched(ctx context.Context, tasks []Task) *StrategyRun {
	run := e.beginRun(ctx, PolicyBatched, RunModeAwaited, tasks)

	for _, task := range tasks {
		run.handles = append(run.handles, e.spawnUnit(run, task))
	}

	for _, h := range run.handles {
		if err := h.Await(ctx); err != nil {
			e.abandonRun(run, err)
			return run
		}
	}

	e.drain(run)
	return run
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() EngineStats {
	return e.counters.snapshot()
}

// History returns up to limit completed execution records, most recent first.
// A non-positive limit returns everything retained.
func (e *Engine) History(limit int) []ExecutionRecord {
	return e.history.Recent(limit)
}

// LastExecution returns the most recent completed execution record.
func (e *Engine) LastExecution() (ExecutionRecord, bool) {
	return e.history.Last()
}

// =============================================================================
// Internal machinery
// =============================================================================

func (e *Engine) beginRun(ctx context.Context, policy Policy, mode RunMode, tasks []Task) *StrategyRun {
	run := newStrategyRun(ctx, policy, mode, tasks)
	run.markRunning()
	e.counters.runsStarted.Inc()
	e.logger.Info("engine: starting strategy",
		F("policy", policy.String()),
		F("runID", run.id),
		F("mode", mode.String()),
		F("tasks", len(tasks)))
	return run
}

func (e *Engine) spawnUnit(run *StrategyRun, task Task) *ExecutionHandle {
	e.counters.unitsSpawned.Inc()
	e.metrics.RecordSpawn(run.policy)
	return spawn(run, task, e.sink, e.record)
}

func (e *Engine) record(rec ExecutionRecord) {
	e.history.Add(rec)
	e.counters.tasksExecuted.Inc()
	if rec.Interrupted {
		e.counters.interruptions.Inc()
		e.metrics.RecordInterruption(rec.Policy)
	}
	e.metrics.RecordTaskDuration(rec.Policy, rec.TaskID, rec.FinishedAt.Sub(rec.StartedAt))
}

func (e *Engine) drain(run *StrategyRun) {
	run.markDrained()
	e.counters.runsDrained.Inc()
	e.finishStrategy(run)
	e.logger.Info("engine: strategy drained",
		F("policy", run.policy.String()),
		F("runID", run.id),
		F("wall", run.WallTime()))
}

// abandonRun handles an abandoned await: the wait context ended before the
// unit completed. The unit itself keeps running, so the run stays Running.
func (e *Engine) abandonRun(run *StrategyRun, err error) {
	run.finishSpawnPhase()
	e.finishStrategy(run)
	e.logger.Warn("engine: await abandoned, run left running",
		F("policy", run.policy.String()),
		F("runID", run.id),
		F("error", err))
}

func (e *Engine) finishStrategy(run *StrategyRun) {
	wall := run.WallTime()
	e.counters.lastStrategyWall.Store(wall)
	e.metrics.RecordStrategyDuration(run.policy, wall)
}
