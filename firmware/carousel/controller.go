package carousel

import (
	"errors"
	"strings"

	"github.com/IanScottMcGuire/bincarousel"
)

// ControlState is all mutable state of the carousel. It is owned by the single control
// loop; nothing else writes it.
type ControlState struct {
	Position        bincarousel.Bin
	Homed           bool
	Calibration     *HomingCalibration
	LastSelectedBin bincarousel.Bin

	Gate  Gate
	Queue Queue
	Latch Latch
}

// Controller runs the carousel: gate polling, deferred commands, homing, navigation
// and inventory, all on one cooperative loop.
type Controller struct {
	cfg   Config
	hw    Hardware
	state *ControlState

	motor  *Motor
	index  *IndexSwitch
	ranger *Ranger

	commands map[string]*Command
}

// New validates the config and wires the hardware. Nothing moves until a command asks.
func New(cfg Config, hw Hardware) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.New("invalid config: " + err.Error())
	}
	if hw.Step == nil || hw.Dir == nil || hw.Enable == nil || hw.Index == nil || hw.Beam == nil {
		return nil, errors.New("missing motor, index or beam line")
	}
	if hw.Clock == nil || hw.Pinger == nil || hw.Reporter == nil || hw.Lines == nil {
		return nil, errors.New("missing clock, pinger, reporter or line reader")
	}

	c := &Controller{
		cfg: cfg,
		hw:  hw,
		state: &ControlState{
			Position:        bincarousel.BinUnknown,
			LastSelectedBin: bincarousel.BinUnknown,
		},
	}
	c.state.Gate.cfg = &c.cfg
	c.state.Latch.input = hw.Stop

	c.motor = newMotor(hw, &c.cfg, &c.state.Latch)
	c.index = &IndexSwitch{in: hw.Index, clock: hw.Clock, cfg: &c.cfg}
	c.ranger = &Ranger{pinger: hw.Pinger, clock: hw.Clock, latch: &c.state.Latch, cfg: &c.cfg}

	c.state.Latch.OnTrip(c.motor.Disable)
	c.state.Latch.OnTrip(func() {
		c.report(bincarousel.MsgEStop)
	})

	c.commands = commandMap()
	return c, nil
}

// State exposes the control state for inspection
func (c *Controller) State() *ControlState {
	return c.state
}

// Motor exposes the motion primitive
func (c *Controller) Motor() *Motor {
	return c.motor
}

// Start takes the first gate sample and prints the banner
func (c *Controller) Start() {
	c.report(bincarousel.MsgBoot)
	c.pollGate()
	c.report(bincarousel.MsgPrompt)
}

// Run is the firmware main loop. It never returns.
func (c *Controller) Run() {
	c.Start()
	for {
		c.Tick()
	}
}

// Tick is one loop pass: gate first so everything after sees fresh state, then the
// deferred queue, then at most one operator command.
func (c *Controller) Tick() {
	c.pollGate()
	c.Drain()

	if line, ok := c.hw.Lines.ReadLine(); ok {
		c.Dispatch(line)
	}
}

func (c *Controller) pollGate() {
	rawBlocked := c.hw.Beam.Get() != c.cfg.BeamBlockedLow
	switch c.state.Gate.Update(c.hw.Clock.Millis(), rawBlocked) {
	case GateEventBlocked:
		c.report(bincarousel.MsgGateBlocked)
	case GateEventOpened:
		c.report(bincarousel.MsgGateOpen)
	case GateEventArmed:
		c.report(bincarousel.MsgGateReady)
		c.Drain()
	}
}

// Dispatch runs one command line. Every outcome ends in a report and a fresh prompt.
func (c *Controller) Dispatch(line string) {
	verb := strings.ToLower(strings.TrimSpace(line))
	if verb == "" {
		return
	}

	cmd, ok := c.commands[verb]
	if !ok {
		c.report(bincarousel.MsgUnknownCommand + line + "'")
		c.report(bincarousel.MsgPrompt)
		return
	}

	c.reportErr(cmd.Run(c))
	c.report(bincarousel.MsgPrompt)
}

// selectBin moves to target now and records it as the last selection
func (c *Controller) selectBin(target bincarousel.Bin) error {
	if err := c.MoveToBin(target); err != nil {
		return err
	}
	c.state.LastSelectedBin = target
	return nil
}

// requestBin selects target now when the gate is ready, otherwise queues it
func (c *Controller) requestBin(target bincarousel.Bin) error {
	if !target.Valid() {
		return ErrInvalidBin
	}
	if !c.state.Homed {
		return ErrNotHomed
	}

	switch c.state.Gate.State() {
	case bincarousel.GateReady:
		return c.selectBin(target)
	case bincarousel.GateSettling:
		return ErrGateSettling
	case bincarousel.GateInventoryPending:
		c.state.Queue.QueueBin(target, c.hw.Clock.Millis())
		c.report("INVENTORY REQUIRED. Press 'i' to measure. " + target.String() + " queued.")
	default:
		c.state.Queue.QueueBin(target, c.hw.Clock.Millis())
		c.report("GATE LOCKOUT. " + target.String() + " queued until the bin is back and measured.")
	}
	return nil
}

// requestInventory runs the inventory now when it is pending, or queues it while the
// gate is still blocked or re-arming
func (c *Controller) requestInventory() error {
	if !c.state.Homed {
		return ErrNotHomed
	}

	switch c.state.Gate.State() {
	case bincarousel.GateBlocked, bincarousel.GateRearming:
		c.state.Queue.QueueInventory(c.hw.Clock.Millis())
		c.report("Inventory queued; it will run when the gate re-arms.")
		return nil
	}
	return c.inventory()
}

func (c *Controller) inventory() error {
	_, err := c.RunInventory()
	return err
}

// Quit returns to the un-homed startup state and forgets everything pending
func (c *Controller) Quit() {
	c.invalidateHoming()
	c.state.LastSelectedBin = bincarousel.BinUnknown
	c.state.Queue.Clear()
	c.state.Gate.ClearInventoryPending()
	c.report(bincarousel.MsgQuit)
}

// EStop sets the safety latch
func (c *Controller) EStop() {
	c.state.Latch.Trip()
}

func (c *Controller) report(line string) {
	c.hw.Reporter.Report(line)
}

func (c *Controller) reportErr(err error) {
	if err != nil {
		c.report(bincarousel.MsgErrorPrefix + err.Error())
	}
}
