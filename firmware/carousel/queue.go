package carousel

import (
	"strconv"

	"github.com/IanScottMcGuire/bincarousel"
)

// Request is a deferred operator command. A newer request of the same kind replaces
// the payload of an older one.
type Request struct {
	Pending bool
	Bin     bincarousel.Bin
	AtMs    int64
}

// Queue holds at most one bin request and one inventory request
type Queue struct {
	Bin       Request
	Inventory Request
}

// QueueBin records a bin selection to run once the gate allows it
func (q *Queue) QueueBin(b bincarousel.Bin, nowMs int64) {
	q.Bin = Request{Pending: true, Bin: b, AtMs: nowMs}
}

// QueueInventory records an inventory request to run once the gate arms
func (q *Queue) QueueInventory(nowMs int64) {
	q.Inventory = Request{Pending: true, Bin: bincarousel.BinUnknown, AtMs: nowMs}
}

// Clear drops both requests
func (q *Queue) Clear() {
	q.Bin = Request{}
	q.Inventory = Request{}
}

// Drain runs whatever queued request the gate now permits. An inventory request wins
// and ends the pass, since it takes seconds and changes the gate state; inventory
// completion drains again. Pending flags are cleared before running so a nested drain
// can never execute the same request twice.
func (c *Controller) Drain() {
	q := &c.state.Queue
	gate := c.state.Gate.State()

	if q.Inventory.Pending && gate == bincarousel.GateInventoryPending {
		q.Inventory.Pending = false
		c.report("Running queued inventory" + c.waited(q.Inventory))
		c.reportErr(c.inventory())
		return
	}

	if q.Bin.Pending && gate == bincarousel.GateReady {
		target := q.Bin.Bin
		q.Bin.Pending = false
		c.report("Running queued selection: " + target.String() + c.waited(q.Bin))
		c.reportErr(c.selectBin(target))
	}
}

func (c *Controller) waited(r Request) string {
	return " (queued " + strconv.FormatInt(c.hw.Clock.Millis()-r.AtMs, 10) + " ms ago)"
}
