package taskstrat

import (
	"context"
	"fmt"
	"time"

	"github.com/aritram1/go-task-strategies/core"
)

// Runner drives the four policies in sequence over one task batch, applying a
// distinguishing prefix per policy to task identifiers so log output is
// attributable, and emitting a banner line before each policy's run.
//
// The Runner itself is purely sequential: the Sequential, Lockstep, and
// Batched calls return only after full completion. Only the Detached call
// returns early, so the next banner may print before detached tasks finish.
// That interleaving in the output is expected and correct.
type Runner struct {
	engine *core.Engine
	sink   core.Sink
	logger core.Logger
}

// NewRunner creates a Runner and its engine from the given config.
// Nil collaborators get the same defaults NewEngine applies.
func NewRunner(config core.EngineConfig) *Runner {
	if config.Sink == nil {
		config.Sink = core.NewStdoutSink()
	}
	if config.Logger == nil {
		config.Logger = core.NewNoOpLogger()
	}
	return &Runner{
		engine: core.NewEngine(config),
		sink:   config.Sink,
		logger: config.Logger,
	}
}

// Engine returns the underlying engine, for stats and history inspection.
func (r *Runner) Engine() *core.Engine {
	return r.engine
}

// DefaultBatch returns the fixed demonstration batch.
func DefaultBatch() []core.Task {
	return []core.Task{
		core.MustTask("A", 1000*time.Millisecond),
		core.MustTask("B", 1100*time.Millisecond),
		core.MustTask("C", 1200*time.Millisecond),
		core.MustTask("D", 1500*time.Millisecond),
	}
}

// PolicyPrefix returns the identifier prefix the Runner applies to tasks run
// under the given policy.
func PolicyPrefix(policy core.Policy) string {
	switch policy {
	case core.PolicySequential:
		return "Seq-"
	case core.PolicyDetached:
		return "Det-"
	case core.PolicyLockstep:
		return "Lck-"
	case core.PolicyBatched:
		return "Bat-"
	default:
		return ""
	}
}

// RunAll executes all four policies in their canonical order over the same
// task list and returns the four runs in that order. Each policy sees its own
// prefixed copy of the batch; the input tasks are never mutated.
func (r *Runner) RunAll(ctx context.Context, tasks []core.Task) []*core.StrategyRun {
	r.sink.Emit("=== Task execution strategies: start ===")

	runs := make([]*core.StrategyRun, 0, 4)
	for _, policy := range core.AllPolicies() {
		r.sink.Emit(fmt.Sprintf("--- Strategy: %s ---", policy))

		run, err := r.engine.Run(ctx, policy, prefixTasks(tasks, PolicyPrefix(policy)))
		if err != nil {
			// Unreachable for the canonical policy set.
			r.logger.Error("runner: policy dispatch failed",
				core.F("policy", policy.String()),
				core.F("error", err))
			continue
		}
		runs = append(runs, run)
	}

	r.sink.Emit("=== Task execution strategies: end ===")
	return runs
}

// RunOne executes a single policy over a prefixed copy of the task list,
// with the same banner framing RunAll uses.
func (r *Runner) RunOne(ctx context.Context, policy core.Policy, tasks []core.Task) (*core.StrategyRun, error) {
	r.sink.Emit(fmt.Sprintf("--- Strategy: %s ---", policy))
	return r.engine.Run(ctx, policy, prefixTasks(tasks, PolicyPrefix(policy)))
}

// Settle waits for every spawned unit across the given runs to complete.
// Use after RunAll so detached tasks get to print their Finished lines before
// the process exits; it does not change the fire-and-forget contract of the
// detached engine call itself.
func Settle(ctx context.Context, runs []*core.StrategyRun) error {
	for _, run := range runs {
		if err := run.Settle(ctx); err != nil {
			return err
		}
	}
	return nil
}

func prefixTasks(tasks []core.Task, prefix string) []core.Task {
	out := make([]core.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.WithPrefix(prefix))
	}
	return out
}
