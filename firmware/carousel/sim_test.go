package carousel

import (
	"strings"
	"testing"

	"github.com/IanScottMcGuire/bincarousel"
)

// Simulated drum geometry: four bin notches a quarter turn apart plus the encoder
// artifact 600 steps after the bin 3 notch, so the artifact-to-bin-0 gap is short.
const (
	simStepsPerRev = 3200
	simNotchWidth  = 30
	simArtifact    = 3000
	simBinSpacing  = simStepsPerRev / 4
)

var simNotches = []int64{0, 800, 1600, 2400, simArtifact}

type simClock struct {
	us int64
}

func (c *simClock) Millis() int64        { return c.us / 1000 }
func (c *simClock) SleepMicros(us int64) { c.us += us }
func (c *simClock) advanceMs(ms int64)   { c.us += ms * 1000 }

// simDrum acts like the stepper driver, the drum and the index switch
type simDrum struct {
	cfg *Config

	pos       int64
	enabled   bool
	forward   bool
	stepLevel bool

	// disconnected never reports a press, stuck always does
	disconnected bool
	stuck        bool
	// bounceSteps makes the first steps of every notch chatter
	bounceSteps int64
	bounceFlip  bool
}

type simLine func(bool)

func (f simLine) Set(v bool) { f(v) }

func (d *simDrum) stepLine() Output {
	return simLine(func(v bool) {
		if v && !d.stepLevel && d.enabled {
			if d.forward {
				d.pos++
			} else {
				d.pos--
			}
		}
		d.stepLevel = v
	})
}

func (d *simDrum) dirLine() Output {
	return simLine(func(v bool) { d.forward = v == d.cfg.ForwardDirHigh })
}

func (d *simDrum) enableLine() Output {
	return simLine(func(v bool) { d.enabled = v != d.cfg.EnableActiveLow })
}

func (d *simDrum) angle() int64 {
	a := d.pos % simStepsPerRev
	if a < 0 {
		a += simStepsPerRev
	}
	return a
}

func (d *simDrum) pressed() bool {
	if d.stuck {
		return true
	}
	if d.disconnected {
		return false
	}
	a := d.angle()
	for _, n := range simNotches {
		if a >= n && a < n+simNotchWidth {
			if a < n+d.bounceSteps {
				d.bounceFlip = !d.bounceFlip
				return d.bounceFlip
			}
			return true
		}
	}
	return false
}

// Get is the index switch input
func (d *simDrum) Get() bool {
	return d.pressed() != d.cfg.IndexPressedLow
}

type simBeam struct {
	cfg     *Config
	blocked bool
}

func (b *simBeam) Get() bool {
	return b.blocked != b.cfg.BeamBlockedLow
}

type simPinger struct {
	clock *simClock
	read  func(n int) (float64, bool)
	n     int
}

func (p *simPinger) Ping() (float64, bool) {
	p.n++
	p.clock.SleepMicros(600)
	if p.read == nil {
		return 30, true
	}
	return p.read(p.n)
}

type simLines struct {
	lines []string
}

func (l *simLines) ReadLine() (string, bool) {
	if len(l.lines) == 0 {
		return "", false
	}
	line := l.lines[0]
	l.lines = l.lines[1:]
	return line, true
}

// simStop requests a stop once it has been polled after calls times
type simStop struct {
	after int
	calls int
}

func (s *simStop) StopRequested() bool {
	if s.after <= 0 {
		return false
	}
	s.calls++
	return s.calls >= s.after
}

type simReporter struct {
	lines []string
}

func (r *simReporter) Report(line string) {
	r.lines = append(r.lines, line)
}

func (r *simReporter) contains(substr string) bool {
	for _, l := range r.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func (r *simReporter) reset() {
	r.lines = nil
}

type rig struct {
	cfg    Config
	clock  *simClock
	drum   *simDrum
	beam   *simBeam
	pinger *simPinger
	lines  *simLines
	stop   *simStop
	out    *simReporter
	c      *Controller
}

func newRig(t *testing.T, startPos int64) *rig {
	t.Helper()

	r := &rig{
		cfg:   DefaultConfig(),
		clock: &simClock{},
		lines: &simLines{},
		stop:  &simStop{},
		out:   &simReporter{},
	}
	r.drum = &simDrum{cfg: &r.cfg, pos: startPos}
	r.beam = &simBeam{cfg: &r.cfg}
	r.pinger = &simPinger{clock: r.clock}

	c, err := New(r.cfg, Hardware{
		Step:     r.drum.stepLine(),
		Dir:      r.drum.dirLine(),
		Enable:   r.drum.enableLine(),
		Index:    r.drum,
		Beam:     r.beam,
		Pinger:   r.pinger,
		Clock:    r.clock,
		Lines:    r.lines,
		Stop:     r.stop,
		Reporter: r.out,
	})
	if err != nil {
		t.Fatalf("unexpected error creating controller: %v", err)
	}
	r.c = c
	c.Start()
	r.settle()
	return r
}

func newHomedRig(t *testing.T) *rig {
	t.Helper()
	r := newRig(t, 1234)
	if err := r.c.Home(); err != nil {
		t.Fatalf("unexpected error homing: %v", err)
	}
	r.out.reset()
	return r
}

// settle ticks the loop across the gate debounce window
func (r *rig) settle() {
	r.c.Tick()
	r.clock.advanceMs(r.cfg.GateDebounceMs + 5)
	r.c.Tick()
}

func (r *rig) setBeam(blocked bool) {
	r.beam.blocked = blocked
	r.settle()
}

func binStop(b bincarousel.Bin, offset int64) int64 {
	return int64(b)*simBinSpacing + offset
}

// reinsertBin pulls the bin, puts it back and waits out the arm delay
func (r *rig) reinsertBin() {
	r.setBeam(true)
	r.setBeam(false)
	r.clock.advanceMs(r.cfg.GateArmDelayMs)
	r.c.Tick()
}
