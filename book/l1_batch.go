package book

import "github.com/river-walras/nexuscore/market"

// l1BatchState tracks which kind of top-of-book batch, if any, an L1 ladder
// is currently accumulating.
type l1BatchState uint8

const (
	l1BatchNone l1BatchState = iota
	l1BatchMbp
	l1BatchSnapshot
)

func (s l1BatchState) String() string {
	switch s {
	case l1BatchMbp:
		return "mbp_batch"
	case l1BatchSnapshot:
		return "snapshot_batch"
	default:
		return "none"
	}
}

// l1Retain selects which single level survives after an L1 add.
type l1Retain uint8

const (
	// l1RetainBest keeps the best sorted level.
	l1RetainBest l1Retain = iota
	// l1RetainStanding keeps the level that was already resting before the
	// final delta of an MBP batch landed. The final delta of such a batch
	// confirms the standing top-of-book rather than replacing it.
	l1RetainStanding
)

// l1Action is the full outcome of one step of the L1 state machine.
type l1Action struct {
	ClearFirst bool
	SkipAdd    bool
	Retain     l1Retain
	Next       l1BatchState
}

// l1Transition classifies an L1 add as a pure function of the current batch
// state, the record flags and whether the incoming size is zero.
// An L1 top-of-book may arrive in several shapes: a plain replacement, a
// streaming MBP delta, an MBP batch terminated by F_LAST, or a snapshot
// batch. A zero-sized add always clears the whole ladder regardless of its
// order id.
func l1Transition(state l1BatchState, flags market.RecordFlags, zeroSize bool) l1Action {
	if zeroSize {
		return l1Action{ClearFirst: true, SkipAdd: true, Next: l1BatchNone}
	}

	switch {
	case flags.Has(market.FlagSnapshot | market.FlagLast):
		// Accumulate only when already inside a snapshot batch; anything
		// else is stale MBP state or cross-contamination and is dropped.
		return l1Action{
			ClearFirst: state != l1BatchSnapshot,
			Retain:     l1RetainBest,
			Next:       l1BatchNone,
		}
	case flags.Has(market.FlagSnapshot):
		return l1Action{
			ClearFirst: state != l1BatchSnapshot,
			Retain:     l1RetainBest,
			Next:       l1BatchSnapshot,
		}
	case flags.Has(market.FlagMbp | market.FlagLast):
		retain := l1RetainBest
		if state == l1BatchMbp {
			retain = l1RetainStanding
		}
		return l1Action{
			ClearFirst: state != l1BatchMbp,
			Retain:     retain,
			Next:       l1BatchNone,
		}
	case flags.Has(market.FlagMbp):
		// Streaming mode: each delta supersedes the previous one.
		return l1Action{ClearFirst: true, Retain: l1RetainBest, Next: l1BatchMbp}
	default:
		// Single replacement; the top-of-book price may degrade freely.
		return l1Action{ClearFirst: true, Retain: l1RetainBest, Next: l1BatchNone}
	}
}
