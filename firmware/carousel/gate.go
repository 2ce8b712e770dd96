package carousel

import "github.com/IanScottMcGuire/bincarousel"

// GateEvent is a transition reported by Gate.Update
type GateEvent int

const (
	GateNoEvent GateEvent = iota
	GateEventBlocked
	GateEventOpened
	GateEventArmed
)

// Gate debounces the break-beam and derives the lockout state. Update is the only
// writer apart from ClearInventoryPending, which the inventory sequencer calls after a
// successful measurement.
type Gate struct {
	cfg *Config

	started        bool
	settled        bool
	stableBlocked  bool
	candidate      bool
	candidateSince int64

	state    bincarousel.GateState
	openedAt int64
}

// State is the current lockout state. It is GateSettling until the first reading has
// been stable for the debounce dwell.
func (g *Gate) State() bincarousel.GateState {
	if !g.settled {
		return bincarousel.GateSettling
	}
	return g.state
}

// Blocked reports whether the beam is stably blocked
func (g *Gate) Blocked() bool {
	return g.state == bincarousel.GateBlocked
}

// OpenedAt is when the beam became stably open; only meaningful while rearming
func (g *Gate) OpenedAt() int64 {
	return g.openedAt
}

// Update feeds one raw beam sample taken at nowMs
func (g *Gate) Update(nowMs int64, rawBlocked bool) GateEvent {
	if !g.started || rawBlocked != g.candidate {
		g.started = true
		g.candidate = rawBlocked
		g.candidateSince = nowMs
	}

	if !g.settled {
		if nowMs-g.candidateSince < g.cfg.GateDebounceMs {
			return GateNoEvent
		}
		g.settled = true
		g.stableBlocked = g.candidate
		if g.stableBlocked {
			g.state = bincarousel.GateBlocked
			return GateEventBlocked
		}
		g.state = bincarousel.GateReady
		return GateNoEvent
	}

	if g.candidate != g.stableBlocked && nowMs-g.candidateSince >= g.cfg.GateDebounceMs {
		g.stableBlocked = g.candidate
		if g.stableBlocked {
			g.state = bincarousel.GateBlocked
			g.openedAt = 0
			return GateEventBlocked
		}
		if g.state == bincarousel.GateBlocked {
			g.state = bincarousel.GateRearming
			g.openedAt = nowMs
			return GateEventOpened
		}
	}

	if g.state == bincarousel.GateRearming && !g.stableBlocked && nowMs-g.openedAt >= g.cfg.GateArmDelayMs {
		g.state = bincarousel.GateInventoryPending
		return GateEventArmed
	}

	return GateNoEvent
}

// ClearInventoryPending moves InventoryPending to Ready. It does nothing in any other
// state.
func (g *Gate) ClearInventoryPending() {
	if g.state == bincarousel.GateInventoryPending {
		g.state = bincarousel.GateReady
	}
}
