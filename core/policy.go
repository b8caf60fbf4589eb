package core

import (
	"github.com/pingcap/errors"
)

// Policy selects one of the four execution strategies.
type Policy int

const (
	// PolicySequential: execute each task on the calling goroutine, one fully
	// bracketed before the next begins.
	PolicySequential Policy = iota

	// PolicyDetached: fire-and-forget. Spawn every task on its own goroutine
	// and return without awaiting any of them.
	PolicyDetached

	// PolicyLockstep: spawn each task on its own goroutine, then immediately
	// await it before spawning the next. Observationally sequential; exists to
	// demonstrate the pitfall of naive start/join interleaving.
	PolicyLockstep

	// PolicyBatched: spawn all tasks first, then await each handle in order.
	// Wall time is bounded by the slowest task, not the sum.
	PolicyBatched
)

// ErrUnknownPolicy is returned when dispatching on a policy value the engine
// does not recognize.
var ErrUnknownPolicy = errors.New("unknown execution policy")

// String returns the stable policy name used for log attribution and metric labels.
func (p Policy) String() string {
	switch p {
	case PolicySequential:
		return "sequential"
	case PolicyDetached:
		return "detached"
	case PolicyLockstep:
		return "lockstep"
	case PolicyBatched:
		return "batched"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a policy name back into a Policy value.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "sequential":
		return PolicySequential, nil
	case "detached":
		return PolicyDetached, nil
	case "lockstep":
		return PolicyLockstep, nil
	case "batched":
		return PolicyBatched, nil
	default:
		return 0, errors.Annotatef(ErrUnknownPolicy, "%q", name)
	}
}

// AllPolicies returns the four policies in their canonical demonstration order.
func AllPolicies() []Policy {
	return []Policy{PolicySequential, PolicyDetached, PolicyLockstep, PolicyBatched}
}
