package carousel

type seekPhase int

const (
	seekRelease seekPhase = iota
	seekPress
	seekApproach
)

// Seeker advances the drum to the next fresh press event of the index switch: it first
// leaves any notch it is sitting in, then steps until a press is confirmed. Steps counts
// every pulse of the seek, so for back-to-back seeks it is the gap between press events.
type Seeker struct {
	motor *Motor
	index *IndexSwitch
	cfg   *Config

	phase        seekPhase
	approachLeft int
	Steps        int64
}

func newSeeker(m *Motor, idx *IndexSwitch, cfg *Config) *Seeker {
	return &Seeker{motor: m, index: idx, cfg: cfg}
}

// Step advances the seek by at most one pulse
func (s *Seeker) Step() StepResult {
	if s.Steps > s.cfg.SeekGuardSteps() {
		return stepFailed(ErrGuardExceeded)
	}

	switch s.phase {
	case seekRelease:
		if s.index.ConfirmReleased() {
			s.phase = seekPress
			return stepContinue
		}
		return s.pulse(s.cfg.SeekPulseUs)

	case seekPress:
		if r := s.pulse(s.cfg.SeekPulseUs); r.Status == StepFailed {
			return r
		}
		if !s.index.Pressed() {
			return stepContinue
		}
		if s.index.ConfirmPressed() {
			return stepDone
		}
		// Bouncing at the notch edge: finish the approach slowly for a repeatable stop
		s.phase = seekApproach
		s.approachLeft = s.cfg.ApproachWindowSteps
		return stepContinue

	case seekApproach:
		if r := s.pulse(s.cfg.ApproachPulseUs); r.Status == StepFailed {
			return r
		}
		s.approachLeft--
		if s.index.Pressed() && s.index.ConfirmPressed() {
			return stepDone
		}
		if s.approachLeft <= 0 {
			s.phase = seekPress
		}
		return stepContinue
	}

	return stepContinue
}

func (s *Seeker) pulse(delayUs int64) StepResult {
	if !s.motor.Pulse(delayUs) {
		return stepFailed(ErrSafetyAbort)
	}
	s.Steps++
	return stepContinue
}

// seekFreshPress runs one complete seek and returns its step count
func (c *Controller) seekFreshPress() (int64, error) {
	s := newSeeker(c.motor, c.index, &c.cfg)
	err := runToCompletion(s)
	return s.Steps, err
}
