package carousel

import (
	"errors"
	"math"
)

// Config has the mechanical calibration and timing for the carousel. All fields keep the
// units in their names so they can be filled in from firmware/main.go without guessing.
type Config struct {
	// StepsPerRevolution is full steps times microstepping for one turn of the drum
	StepsPerRevolution int64

	// IndexToStopDeg is the angle from the index press point to the bin stop position.
	// TrimDeg is a small per-machine correction added to it.
	IndexToStopDeg float64
	TrimDeg        float64

	// Line polarities
	EnableActiveLow bool
	ForwardDirHigh  bool
	IndexPressedLow bool
	BeamBlockedLow  bool

	PulseHighUs     int64
	SeekPulseUs     int64
	ApproachPulseUs int64
	OffsetPulseUs   int64

	// ApproachWindowSteps is the length of the slow high-precision window entered when a
	// raw press is seen that has not been confirmed yet
	ApproachWindowSteps int
	// SeekGuardRevolutions bounds a single seek
	SeekGuardRevolutions int64

	ConfirmPressSamples   int
	ConfirmReleaseSamples int
	ConfirmSampleUs       int64

	// HomingGapSamples is the number of gaps measured after the discarded first event
	HomingGapSamples int
	// ShortGapRatio of the median gap separates the short artifact-to-notch gap
	ShortGapRatio float64

	GateDebounceMs  int64
	GateArmDelayMs  int64
	EchoTimeoutUs   int64
	PingsPerBlock   int
	PingSpacingMs   int64
	RangeWindowMs   int64
	MinBlockMedians int
	TrimFraction    float64

	// InventoryThreshCM: a distance below this is a full bin
	InventoryThreshCM float64
	// SensorOffsetBins is how far the drum turns to bring the selected bin under the sensor
	SensorOffsetBins int
}

// DefaultConfig returns the calibration of the reference build: 200 step motor at 16
// microsteps, A4988 driver, pulled-up index switch and an IR break-beam receiver.
func DefaultConfig() Config {
	return Config{
		StepsPerRevolution: 200 * 16,
		IndexToStopDeg:     15,
		TrimDeg:            -2,

		EnableActiveLow: true,
		ForwardDirHigh:  true,
		IndexPressedLow: true,
		BeamBlockedLow:  true,

		PulseHighUs:     10,
		SeekPulseUs:     800,
		ApproachPulseUs: 2000,
		OffsetPulseUs:   1200,

		ApproachWindowSteps:  140,
		SeekGuardRevolutions: 3,

		ConfirmPressSamples:   5,
		ConfirmReleaseSamples: 7,
		ConfirmSampleUs:       200,

		HomingGapSamples: 10,
		ShortGapRatio:    0.60,

		GateDebounceMs:  20,
		GateArmDelayMs:  2000,
		EchoTimeoutUs:   12000,
		PingsPerBlock:   7,
		PingSpacingMs:   25,
		RangeWindowMs:   4000,
		MinBlockMedians: 5,
		TrimFraction:    0.20,

		InventoryThreshCM: 12.0,
		SensorOffsetBins:  2,
	}
}

// Validate checks for values that would make the motion code misbehave
func (c Config) Validate() error {
	if c.StepsPerRevolution <= 0 {
		return errors.New("StepsPerRevolution must be positive")
	}
	if c.SeekGuardRevolutions <= 0 {
		return errors.New("SeekGuardRevolutions must be positive")
	}
	if c.ConfirmPressSamples <= 0 || c.ConfirmReleaseSamples <= 0 {
		return errors.New("confirmation sample counts must be positive")
	}
	if c.HomingGapSamples <= 0 {
		return errors.New("HomingGapSamples must be positive")
	}
	if c.ShortGapRatio <= 0 || c.ShortGapRatio >= 1 {
		return errors.New("ShortGapRatio must be between 0 and 1")
	}
	if c.PingsPerBlock <= 0 || c.MinBlockMedians <= 0 {
		return errors.New("ultrasonic block sizes must be positive")
	}
	if c.TrimFraction < 0 || c.TrimFraction >= 0.5 {
		return errors.New("TrimFraction must be in [0, 0.5)")
	}
	if c.SensorOffsetBins < 0 {
		return errors.New("SensorOffsetBins must not be negative")
	}
	return nil
}

// DegToSteps converts an angle to microsteps, normalizing it into [0, 360) first.
// Rounds to nearest, never truncates.
func (c Config) DegToSteps(deg float64) int64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return int64(math.Round(deg / 360 * float64(c.StepsPerRevolution)))
}

// OffsetSteps is the move from the index press point to the bin stop
func (c Config) OffsetSteps() int64 {
	return c.DegToSteps(c.IndexToStopDeg + c.TrimDeg)
}

// SeekGuardSteps is the most steps a single seek may take
func (c Config) SeekGuardSteps() int64 {
	return c.SeekGuardRevolutions * c.StepsPerRevolution
}
