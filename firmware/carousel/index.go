package carousel

// Confirmer debounces a digital input by requiring an unbroken run of matching samples.
// Any mismatching sample resets the run. It gives up after a bounded number of samples
// so a caller that is stepping the motor can keep moving.
type Confirmer struct {
	want    bool
	need    int
	limit   int
	run     int
	samples int
}

// NewConfirmer requires need consecutive samples equal to want within 2*need samples
func NewConfirmer(want bool, need int) *Confirmer {
	return &Confirmer{want: want, need: need, limit: 2 * need}
}

// Step feeds one sample
func (c *Confirmer) Step(sample bool) StepResult {
	c.samples++
	if sample == c.want {
		c.run++
	} else {
		c.run = 0
	}

	if c.run >= c.need {
		return stepDone
	}
	if c.samples >= c.limit {
		return stepFailed(nil)
	}
	return stepContinue
}

// IndexSwitch is the mechanical index switch at the notch position
type IndexSwitch struct {
	in    Input
	clock Clock
	cfg   *Config
}

// Pressed is the raw, undebounced state
func (s *IndexSwitch) Pressed() bool {
	return s.in.Get() != s.cfg.IndexPressedLow
}

// ConfirmPressed trusts a press after an unbroken run of pressed samples
func (s *IndexSwitch) ConfirmPressed() bool {
	return s.confirm(true, s.cfg.ConfirmPressSamples)
}

// ConfirmReleased needs a longer run than a press so bounce while leaving the notch
// does not look like a new press.
func (s *IndexSwitch) ConfirmReleased() bool {
	return s.confirm(false, s.cfg.ConfirmReleaseSamples)
}

func (s *IndexSwitch) confirm(pressed bool, need int) bool {
	c := NewConfirmer(pressed, need)
	for {
		switch c.Step(s.Pressed()).Status {
		case StepDone:
			return true
		case StepFailed:
			return false
		}
		s.clock.SleepMicros(s.cfg.ConfirmSampleUs)
	}
}
