package taskstrat_test

import (
	"context"
	"fmt"
	"time"

	taskstrat "github.com/aritram1/go-task-strategies"
)

// ExampleEngine_RunSequential demonstrates driving a single policy with a
// capture sink, so the output is deterministic.
func ExampleEngine_RunSequential() {
	sink := taskstrat.NewMemorySink()
	engine := taskstrat.NewEngine(taskstrat.EngineConfig{Sink: sink})

	tasks := []taskstrat.Task{
		taskstrat.MustTask("A", 10*time.Millisecond),
		taskstrat.MustTask("B", 20*time.Millisecond),
	}

	run := engine.RunSequential(context.Background(), tasks)

	for _, line := range sink.Lines() {
		fmt.Println(line)
	}
	fmt.Println("state:", run.State())

	// Output:
	// Started task A
	// Finished task A in 0 seconds
	// Started task B
	// Finished task B in 0 seconds
	// state: drained
}

// ExampleEngine_RunDetached demonstrates the fire-and-forget policy: the call
// returns before any task completes, and Settle observes eventual completion.
func ExampleEngine_RunDetached() {
	sink := taskstrat.NewMemorySink()
	engine := taskstrat.NewEngine(taskstrat.EngineConfig{Sink: sink})

	tasks := []taskstrat.Task{
		taskstrat.MustTask("A", 10*time.Millisecond),
	}

	run := engine.RunDetached(context.Background(), tasks)
	fmt.Println("state after call:", run.State())

	_ = run.Settle(context.Background())
	fmt.Println("lines after settle:", sink.Len())

	// Output:
	// state after call: running
	// lines after settle: 2
}

// ExampleParseTaskList demonstrates the "id=duration" batch syntax.
func ExampleParseTaskList() {
	tasks, err := taskstrat.ParseTaskList("A=1s,B=1100ms")
	if err != nil {
		panic(err)
	}
	for _, task := range tasks {
		fmt.Printf("%s %v\n", task.ID(), task.Duration())
	}

	// Output:
	// A 1s
	// B 1.1s
}

// ExamplePolicy demonstrates the stable policy names used for log
// attribution and metric labels.
func ExamplePolicy() {
	for _, policy := range taskstrat.AllPolicies() {
		fmt.Println(policy)
	}

	// Output:
	// sequential
	// detached
	// lockstep
	// batched
}
