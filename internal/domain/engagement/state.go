// Package engagement models the like/dislike signal state between two users
// and the canonical unordered pair a match is stored under.
package engagement

// PairState is the derived state of an ordered (requester, target) pair.
type PairState int

const (
	StateNoSignal PairState = iota
	StateLiked
	StateMatched
)

func (s PairState) String() string {
	switch s {
	case StateLiked:
		return "liked"
	case StateMatched:
		return "matched"
	default:
		return "no_signal"
	}
}

// CanonicalPair orders two user ids so one row represents both directions.
func CanonicalPair(a, b int64) (low, high int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// DeriveState computes the ordered pair's state from the stored signals.
// A match always wins: it is only ever created when both directed likes
// exist, and deleting a like later does not retract it.
func DeriveState(forwardLike, matched bool) PairState {
	switch {
	case matched:
		return StateMatched
	case forwardLike:
		return StateLiked
	default:
		return StateNoSignal
	}
}
