package scanner

import "testing"

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StatePending:            "PENDING",
		StateListingGlobal:      "LISTING_GLOBAL",
		StateNeedsRegionalRetry: "NEEDS_REGIONAL_RETRY",
		StateListingRegional:    "LISTING_REGIONAL",
		StateDone:               "DONE",
		StateFailed:             "FAILED",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestStateTerminal(t *testing.T) {
	terminal := map[State]bool{
		StatePending:            false,
		StateListingGlobal:      false,
		StateNeedsRegionalRetry: false,
		StateListingRegional:    false,
		StateDone:               true,
		StateFailed:             true,
	}
	for state, want := range terminal {
		if got := state.Terminal(); got != want {
			t.Fatalf("%s.Terminal() = %v, want %v", state, got, want)
		}
	}
}

func TestStateTable(t *testing.T) {
	table := make(stateTable)
	if got := table.get("111111111111", "us-east-1"); got != StatePending {
		t.Fatalf("expected zero value PENDING, got %s", got)
	}
	table.set("111111111111", "us-east-1", StateDone)
	if got := table.get("111111111111", "us-east-1"); got != StateDone {
		t.Fatalf("expected DONE, got %s", got)
	}
	if got := table.get("111111111111", "us-west-2"); got != StatePending {
		t.Fatalf("expected other regions untouched, got %s", got)
	}
}
