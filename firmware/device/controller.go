//go:build tinygo

package device

import (
	"errors"
	"machine"
	"time"

	"github.com/IanScottMcGuire/bincarousel/firmware/carousel"

	"tinygo.org/x/drivers/hcsr04"
)

// Device binds the carousel controller to the board's pins, the HC-SR04 sensor and the
// serial console
type Device struct {
	controller *carousel.Controller
	startTime  time.Time
}

// New configures the pins and creates the controller. The motor is left de-energized.
func New(pins PinConfig, cfg carousel.Config) (*Device, error) {
	for _, p := range []machine.Pin{pins.Step, pins.Dir, pins.Enable, pins.Trigger} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	pins.Index.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	pins.Beam.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	sensor := hcsr04.New(pins.Trigger, pins.Echo)
	sensor.Configure()

	d := &Device{startTime: time.Now()}
	lines := carousel.NewSerialLines(machine.Serial)

	c, err := carousel.New(cfg, carousel.Hardware{
		Step:     pin(pins.Step),
		Dir:      pin(pins.Dir),
		Enable:   pin(pins.Enable),
		Index:    pin(pins.Index),
		Beam:     pin(pins.Beam),
		Pinger:   &sonar{dev: &sensor, timeoutUs: cfg.EchoTimeoutUs},
		Clock:    d,
		Lines:    lines,
		Stop:     lines,
		Reporter: console{},
	})
	if err != nil {
		return nil, errors.New("error creating controller: " + err.Error())
	}
	d.controller = c

	return d, nil
}

// Run is the main loop. It never returns.
func (d *Device) Run() {
	d.controller.Run()
}

// Millis is the time since boot
func (d *Device) Millis() int64 {
	return time.Since(d.startTime).Milliseconds()
}

// SleepMicros blocks for us microseconds
func (d *Device) SleepMicros(us int64) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

// pin adapts machine.Pin to the carousel's Input and Output
type pin machine.Pin

func (p pin) Set(high bool) {
	machine.Pin(p).Set(high)
}

func (p pin) Get() bool {
	return machine.Pin(p).Get()
}

// sonar pings with the HC-SR04 driver and applies the carousel's own echo timeout
type sonar struct {
	dev       *hcsr04.Device
	timeoutUs int64
}

func (s *sonar) Ping() (float64, bool) {
	return carousel.EchoDistance(int64(s.dev.ReadPulse()), s.timeoutUs)
}

// console prints status lines to the serial console, which is also where commands
// arrive
type console struct{}

func (console) Report(line string) {
	println(line)
}
