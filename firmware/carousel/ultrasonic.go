package carousel

import (
	"math"
	"slices"
)

// speed of sound in cm/us, halved for the round trip
const cmPerEchoUs = 0.0343 / 2

// EchoDistance converts an echo high-time to centimeters. A zero duration or one at or
// beyond the timeout means no echo came back.
func EchoDistance(durationUs, timeoutUs int64) (float64, bool) {
	if durationUs <= 0 || durationUs >= timeoutUs {
		return 0, false
	}
	return float64(durationUs) * cmPerEchoUs, true
}

// Ranger turns noisy pings into one robust distance: a median per block of pings rejects
// single-ping glitches, then a trimmed mean over the block medians of a fixed window
// rejects slower disturbances such as a hand passing over the bin.
type Ranger struct {
	pinger Pinger
	clock  Clock
	latch  *Latch
	cfg    *Config
}

// MedianOfBlock collects PingsPerBlock valid pings spaced PingSpacingMs apart and
// returns their middle value. It gives up when deadlineMs passes first.
func (r *Ranger) MedianOfBlock(deadlineMs int64) (float64, error) {
	samples := make([]float64, 0, r.cfg.PingsPerBlock)
	for len(samples) < r.cfg.PingsPerBlock {
		if r.latch.Tripped() {
			return 0, ErrSafetyAbort
		}
		if r.clock.Millis() >= deadlineMs {
			return 0, ErrSensorUndefined
		}

		if cm, ok := r.pinger.Ping(); ok {
			samples = append(samples, cm)
		}
		r.clock.SleepMicros(r.cfg.PingSpacingMs * 1000)
	}

	slices.Sort(samples)
	return samples[len(samples)/2], nil
}

// RobustDistance runs block medians for RangeWindowMs and reduces them with a trimmed
// mean. Fewer than MinBlockMedians medians yields ErrSensorUndefined.
func (r *Ranger) RobustDistance() (float64, error) {
	start := r.clock.Millis()
	deadline := start + r.cfg.RangeWindowMs

	var medians []float64
	for r.clock.Millis() < deadline {
		if r.latch.Tripped() {
			return 0, ErrSafetyAbort
		}

		m, err := r.MedianOfBlock(deadline)
		switch err {
		case nil:
			medians = append(medians, m)
		case ErrSafetyAbort:
			return 0, err
		}
	}

	if len(medians) < r.cfg.MinBlockMedians {
		return 0, ErrSensorUndefined
	}
	return trimmedMean(medians, r.cfg.TrimFraction), nil
}

// trimmedMean drops round(n*fraction) values from each end of the sorted values, always
// keeping at least one, and averages the rest
func trimmedMean(values []float64, fraction float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := len(sorted)
	trim := int(math.Round(float64(n) * fraction))
	if 2*trim >= n {
		trim = (n - 1) / 2
	}

	kept := sorted[trim : n-trim]
	var sum float64
	for _, v := range kept {
		sum += v
	}
	return sum / float64(len(kept))
}
