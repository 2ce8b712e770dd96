package carousel

import (
	"math"
	"slices"
	"strconv"

	"github.com/IanScottMcGuire/bincarousel"
)

// HomingCalibration is measured fresh on every homing attempt
type HomingCalibration struct {
	// NormalGapSteps is the median step count between consecutive press events
	NormalGapSteps int64
	// ShortGapThreshold: a gap below this ends at the real bin 0 notch
	ShortGapThreshold int64
	// Samples is how many gaps the median was taken over
	Samples int
}

// newCalibration derives the calibration from measured gaps. The index switch fires once
// per bin notch plus once for an encoder artifact, and the artifact-to-notch gap is much
// shorter than the rest, so a fraction of the median separates it without knowing the
// absolute geometry.
func newCalibration(gaps []int64, ratio float64) HomingCalibration {
	sorted := slices.Clone(gaps)
	slices.Sort(sorted)
	median := sorted[len(sorted)/2]
	return HomingCalibration{
		NormalGapSteps:    median,
		ShortGapThreshold: int64(math.Round(float64(median) * ratio)),
		Samples:           len(gaps),
	}
}

// Home calibrates the absolute bin 0 reference. On any failure the carousel is left
// un-homed with no calibration.
func (c *Controller) Home() error {
	if c.state.Homed {
		return ErrAlreadyHomed
	}
	switch c.state.Gate.State() {
	case bincarousel.GateBlocked:
		return ErrGateBlocked
	case bincarousel.GateSettling:
		return ErrGateSettling
	}

	c.invalidateHoming()
	c.report(bincarousel.MsgHomingStart)

	var cal HomingCalibration
	err := c.motor.Burst(func() error {
		// The first event has an arbitrary phase
		if _, err := c.seekFreshPress(); err != nil {
			return err
		}

		gaps := make([]int64, 0, c.cfg.HomingGapSamples)
		for range c.cfg.HomingGapSamples {
			gap, err := c.seekFreshPress()
			if err != nil {
				return err
			}
			gaps = append(gaps, gap)
		}
		cal = newCalibration(gaps, c.cfg.ShortGapRatio)
		c.report("Calibrated: normal gap " + strconv.FormatInt(cal.NormalGapSteps, 10) +
			" steps, short gap below " + strconv.FormatInt(cal.ShortGapThreshold, 10))

		for {
			gap, err := c.seekFreshPress()
			if err != nil {
				return err
			}
			if gap < cal.ShortGapThreshold {
				break
			}
		}

		return c.motor.Advance(c.cfg.OffsetSteps(), c.cfg.OffsetPulseUs)
	})
	if err != nil {
		c.invalidateHoming()
		return err
	}

	c.state.Calibration = &cal
	c.state.Homed = true
	c.state.Position = bincarousel.Bin0
	c.state.LastSelectedBin = bincarousel.Bin0
	c.report(bincarousel.MsgHomingComplete)
	return nil
}

func (c *Controller) invalidateHoming() {
	c.state.Homed = false
	c.state.Calibration = nil
	c.state.Position = bincarousel.BinUnknown
}
