package carousel

import (
	"errors"
	"strconv"

	"github.com/IanScottMcGuire/bincarousel"
)

// InventoryResult is one completed measurement
type InventoryResult struct {
	Record     bincarousel.InventoryRecord
	DistanceCM float64
	// Defined is false when the sensor produced no usable reading
	Defined bool
}

// classify reports a full bin only for a defined distance under the threshold. An
// undefined reading is always reported as empty.
func classify(cm float64, defined bool, threshCM float64) bool {
	return defined && cm < threshCM
}

// RunInventory rotates the last selected bin under the sensor, measures it, and clears
// the pending inventory so selection is allowed again.
func (c *Controller) RunInventory() (InventoryResult, error) {
	switch {
	case !c.state.Homed:
		return InventoryResult{}, ErrNotHomed
	case c.state.Gate.Blocked():
		return InventoryResult{}, ErrGateBlocked
	case c.state.Gate.State() != bincarousel.GateInventoryPending:
		return InventoryResult{}, ErrInventoryNotPending
	case !c.state.LastSelectedBin.Valid():
		return InventoryResult{}, ErrNoBinSelected
	}

	c.report(bincarousel.MsgInventoryStart)
	for range c.cfg.SensorOffsetBins {
		if err := c.MoveOneBin(); err != nil {
			return InventoryResult{}, err
		}
	}

	cm, err := c.ranger.RobustDistance()
	defined := err == nil
	if err != nil && !errors.Is(err, ErrSensorUndefined) {
		return InventoryResult{}, err
	}

	res := InventoryResult{
		Record: bincarousel.InventoryRecord{
			Bin:         c.state.LastSelectedBin,
			Full:        classify(cm, defined, c.cfg.InventoryThreshCM),
			TimestampMs: c.hw.Clock.Millis(),
		},
		DistanceCM: cm,
		Defined:    defined,
	}

	if defined {
		c.report(bincarousel.MsgDistancePrefix + strconv.FormatFloat(cm, 'f', 2, 64) + ")")
	} else {
		c.report(bincarousel.MsgDistancePrefix + "N/A)")
	}
	c.report(res.Record.Result())
	c.report(res.Record.String())
	c.report(bincarousel.MsgInventoryComplete + c.state.Position.String())

	c.state.Gate.ClearInventoryPending()
	c.Drain()
	return res, nil
}
