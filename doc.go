// Package taskstrat provides a task-execution harness demonstrating four
// strategies for running a fixed batch of named, timed units of work.
//
// The core is the execution-strategy engine: the policy governing when a task
// starts relative to others, when the initiating goroutine blocks, and what
// ordering guarantees hold between task completion and subsequent program
// actions.
//
// # Quick Start
//
// Run the full demonstration over the default batch:
//
//	runner := taskstrat.NewRunner(taskstrat.DefaultEngineConfig())
//	runner.RunAll(context.Background(), taskstrat.DefaultBatch())
//
// Or drive a single policy directly:
//
//	engine := taskstrat.NewEngine(taskstrat.DefaultEngineConfig())
//	engine.RunBatched(context.Background(), taskstrat.DefaultBatch())
//
// # Key Concepts
//
// Policy: one of the four execution strategies.
//
//   - Sequential: each task runs on the calling goroutine, fully bracketed
//     before the next begins. Wall time is the sum of durations.
//   - Detached: fire-and-forget. Every task is spawned onto its own goroutine
//     and none is awaited; the call returns immediately and completion is
//     observed only through sink output.
//   - Lockstep: each task is spawned and then immediately awaited. Observably
//     identical to Sequential, but pays a goroutine spawn per task. It exists
//     to demonstrate the pitfall of naive start/join interleaving.
//   - Batched: all tasks are spawned first, then every handle is awaited. Wall
//     time is bounded by the slowest task, not the sum.
//
// ExecutionHandle: reference to one in-flight unit of work, supporting a
// blocking Await. StrategyRun: the ephemeral record of one strategy execution,
// owning the handles it created.
//
// Sink: the serialized event sink receiving the timestamped Started/Finished
// lines. Lines are emitted atomically; their relative order across concurrent
// units is timing-dependent.
//
// # Example
//
//	import (
//		"context"
//
//		taskstrat "github.com/aritram1/go-task-strategies"
//	)
//
//	func main() {
//		runner := taskstrat.NewRunner(taskstrat.DefaultEngineConfig())
//		runs := runner.RunAll(context.Background(), taskstrat.DefaultBatch())
//
//		// The detached run returned before its tasks finished; settle it so
//		// the demo output includes their Finished lines.
//		for _, run := range runs {
//			if run.Mode() == taskstrat.RunModeDetached {
//				run.Settle(context.Background())
//			}
//		}
//	}
//
// For engine internals, see the core package.
package taskstrat
