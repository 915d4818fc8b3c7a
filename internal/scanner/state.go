package scanner

// State is the listing state of one (account, region) pair.
type State int

const (
	StatePending State = iota
	StateListingGlobal
	StateNeedsRegionalRetry
	StateListingRegional
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateListingGlobal:
		return "LISTING_GLOBAL"
	case StateNeedsRegionalRetry:
		return "NEEDS_REGIONAL_RETRY"
	case StateListingRegional:
		return "LISTING_REGIONAL"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transition can occur.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

type pairKey struct {
	accountID string
	region    string
}

// stateTable tracks the listing state of every (account, region) pair.
type stateTable map[pairKey]State

func (t stateTable) set(accountID, region string, s State) {
	t[pairKey{accountID, region}] = s
}

func (t stateTable) get(accountID, region string) State {
	return t[pairKey{accountID, region}]
}
