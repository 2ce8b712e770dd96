package carousel

// Motor drives a step/dir/enable stepper driver. The carousel only ever turns forward.
type Motor struct {
	step   Output
	dir    Output
	enable Output
	clock  Clock
	latch  *Latch
	cfg    *Config

	// Steps counts completed pulses since boot; only used for diagnostics and tests
	Steps int64
}

func newMotor(hw Hardware, cfg *Config, latch *Latch) *Motor {
	m := &Motor{
		step:   hw.Step,
		dir:    hw.Dir,
		enable: hw.Enable,
		clock:  hw.Clock,
		latch:  latch,
		cfg:    cfg,
	}
	m.step.Set(false)
	m.Disable()
	return m
}

// Pulse emits one step and then idles for delayAfterUs. It returns false without
// stepping if the latch is already set, and false after the idle if the latch was set
// meanwhile. The caller must de-energize on failure; Burst does that.
func (m *Motor) Pulse(delayAfterUs int64) bool {
	if m.latch.Tripped() {
		return false
	}

	m.step.Set(true)
	m.clock.SleepMicros(m.cfg.PulseHighUs)
	m.step.Set(false)
	m.Steps++
	m.clock.SleepMicros(delayAfterUs)

	return !m.latch.Tripped()
}

// Advance emits n pulses with the same spacing
func (m *Motor) Advance(n int64, delayAfterUs int64) error {
	for range n {
		if !m.Pulse(delayAfterUs) {
			return ErrSafetyAbort
		}
	}
	return nil
}

// Burst energizes the driver in the forward direction, runs fn, and always de-energizes
// afterwards
func (m *Motor) Burst(fn func() error) error {
	if m.latch.Tripped() {
		return ErrSafetyAbort
	}

	m.dir.Set(m.cfg.ForwardDirHigh)
	m.enable.Set(!m.cfg.EnableActiveLow)
	defer m.Disable()

	return fn()
}

// Disable de-energizes the driver. The drum freewheels.
func (m *Motor) Disable() {
	m.enable.Set(m.cfg.EnableActiveLow)
}
