package carousel

import (
	"github.com/IanScottMcGuire/bincarousel"
)

// MoveOneBin advances the drum to the next bin. The notch for bin 0 is preceded by the
// encoder artifact, so leaving bin 3 takes two seeks.
func (c *Controller) MoveOneBin() error {
	if !c.state.Homed || c.state.Calibration == nil || !c.state.Position.Valid() {
		return ErrNotHomed
	}

	seeks := 1
	if c.state.Position == bincarousel.Bin3 {
		seeks = 2
	}

	err := c.motor.Burst(func() error {
		for range seeks {
			if _, err := c.seekFreshPress(); err != nil {
				return err
			}
		}
		return c.motor.Advance(c.cfg.OffsetSteps(), c.cfg.OffsetPulseUs)
	})
	if err != nil {
		// The drum stopped somewhere between notches
		c.invalidateHoming()
		return err
	}

	c.state.Position = c.state.Position.Next()
	return nil
}

// forwardMoves is how many single-bin moves reach target from current. The drum only
// turns one way, so a "backwards" target is reached by going around.
func forwardMoves(current, target bincarousel.Bin) int {
	return (int(target) - int(current) + bincarousel.NumBins) % bincarousel.NumBins
}

// MoveToBin turns the drum forward until target is at the access position
func (c *Controller) MoveToBin(target bincarousel.Bin) error {
	if !target.Valid() {
		return ErrInvalidBin
	}
	if !c.state.Homed || !c.state.Position.Valid() {
		return ErrNotHomed
	}

	n := forwardMoves(c.state.Position, target)
	if n == 0 {
		c.report(bincarousel.MsgAlreadyAt + target.String())
		return nil
	}

	c.report("Moving to " + target.String())
	for range n {
		if err := c.MoveOneBin(); err != nil {
			return err
		}
	}

	c.report(bincarousel.MsgMoveDone + c.state.Position.String())
	return nil
}
