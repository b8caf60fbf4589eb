package core

import (
	"testing"

	"github.com/pingcap/errors"
)

// TestPolicy_StringAndParse tests policy name round-tripping
// Main test items:
// 1. Each policy has a stable name and parses back to itself
// 2. Unknown names are rejected with ErrUnknownPolicy
// 3. AllPolicies returns the canonical demonstration order
func TestPolicy_StringAndParse(t *testing.T) {
	names := map[Policy]string{
		PolicySequential: "sequential",
		PolicyDetached:   "detached",
		PolicyLockstep:   "lockstep",
		PolicyBatched:    "batched",
	}

	for policy, want := range names {
		if got := policy.String(); got != want {
			t.Errorf("policy string = %q, want %q", got, want)
		}
		parsed, err := ParsePolicy(want)
		if err != nil {
			t.Errorf("ParsePolicy(%q) failed: %v", want, err)
		}
		if parsed != policy {
			t.Errorf("ParsePolicy(%q) = %v, want %v", want, parsed, policy)
		}
	}

	if got := Policy(42).String(); got != "unknown" {
		t.Errorf("out-of-range policy string = %q, want %q", got, "unknown")
	}
	if _, err := ParsePolicy("round-robin"); !errors.ErrorEqual(errors.Cause(err), ErrUnknownPolicy) {
		t.Errorf("ParsePolicy error = %v, want ErrUnknownPolicy", err)
	}

	order := AllPolicies()
	want := []Policy{PolicySequential, PolicyDetached, PolicyLockstep, PolicyBatched}
	if len(order) != len(want) {
		t.Fatalf("AllPolicies length = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("AllPolicies[%d] = %v, want %v", i, order[i], want[i])
		}
	}
}

// TestRunMode_String tests run mode names
func TestRunMode_String(t *testing.T) {
	if got := RunModeAwaited.String(); got != "awaited" {
		t.Errorf("awaited mode string = %q, want %q", got, "awaited")
	}
	if got := RunModeDetached.String(); got != "detached" {
		t.Errorf("detached mode string = %q, want %q", got, "detached")
	}
}

// TestRunState_String tests run state names
func TestRunState_String(t *testing.T) {
	cases := map[RunState]string{
		RunStateIdle:    "idle",
		RunStateRunning: "running",
		RunStateDrained: "drained",
		RunState(9):     "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("state string = %q, want %q", got, want)
		}
	}
}
