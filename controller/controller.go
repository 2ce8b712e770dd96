package controller

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/IanScottMcGuire/bincarousel"
	"github.com/IanScottMcGuire/bincarousel/firmware/carousel"
	"github.com/IanScottMcGuire/bincarousel/inventory"
)

// Controller bridges an operator terminal to the carousel firmware over a serial port.
// Device lines are echoed to the operator and tracked in a Status; operator lines are
// forwarded unless they are local verbs.
type Controller struct {
	port     io.ReadWriteCloser
	recorder Recorder
	history  History
	now      func() time.Time

	mtx    sync.Mutex
	status Status
}

// New opens the configured serial port
func New(cfg Config) (*Controller, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	port, err := openPort(cfg)
	if err != nil {
		return nil, err
	}

	c := newController(port, nil)
	c.recorder, c.history = recorderFromConfig(cfg)
	return c, nil
}

// NewFromEnv creates a Controller configured by environment variables
func NewFromEnv() (*Controller, error) {
	cfg, err := NewConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return New(cfg)
}

func newController(port io.ReadWriteCloser, recorder Recorder) *Controller {
	return &Controller{
		port:     port,
		recorder: recorder,
		now:      time.Now,
		status:   NewStatus(),
	}
}

// Close closes the serial port
func (c *Controller) Close() error {
	return c.port.Close()
}

// Status returns the tracked device state
func (c *Controller) Status() Status {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.status
}

// Run bridges in and out to the device until the operator exits, in is exhausted, the
// device connection fails, or ctx is cancelled. Cancelling ctx e-stops the carousel.
func (c *Controller) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	deviceLines := make(chan string)
	deviceErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.port)
		for scanner.Scan() {
			select {
			case deviceLines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		deviceErr <- err
	}()

	operatorLines := make(chan string)
	go func() {
		defer close(operatorLines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case operatorLines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "[LOCAL] Interrupted, sending E-STOP")
			return c.send("e")
		case err := <-deviceErr:
			return fmt.Errorf("error reading from device: %w", err)
		case line := <-deviceLines:
			c.handleDeviceLine(ctx, line, out)
		case line, ok := <-operatorLines:
			if !ok {
				return nil
			}
			exit, err := c.handleOperatorLine(line, out)
			if err != nil || exit {
				return err
			}
		}
	}
}

func (c *Controller) handleDeviceLine(ctx context.Context, line string, out io.Writer) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return
	}

	c.mtx.Lock()
	c.status.Apply(line)
	distance := c.status.LastDistance
	c.mtx.Unlock()

	fmt.Fprintf(out, "[MCU] %s\n", line)

	r, err := bincarousel.ParseInventoryRecord(line)
	if err != nil {
		return
	}

	err = c.recorder.Record(ctx, inventory.NewRecord(r, distance, c.now()))
	if err != nil {
		log.Printf("error recording inventory for %s: %v", r.Bin, err)
	}
}

// handleOperatorLine runs local verbs and forwards everything else
func (c *Controller) handleOperatorLine(line string, out io.Writer) (bool, error) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch cmd {
	case "":
		return false, nil
	case "exit":
		fmt.Fprintln(out, "Exiting.")
		return true, nil
	case "status":
		fmt.Fprint(out, c.Status().String())
		return false, nil
	case "help":
		printHelp(out)
		return false, nil
	}

	if bin, err := bincarousel.ParseBin(cmd); err == nil {
		c.warnOutOfStock(bin, out)
	}

	if err := c.send(cmd); err != nil {
		return false, err
	}
	return false, nil
}

// warnOutOfStock tells the operator when the bin they asked for last measured LO
func (c *Controller) warnOutOfStock(bin bincarousel.Bin, out io.Writer) {
	if c.history == nil {
		return
	}

	result, ok, err := c.history.Last(bin)
	if err != nil {
		log.Printf("error reading inventory history for %s: %v", bin, err)
		return
	}
	if ok && result == bincarousel.ResultEmptyOrUnknown {
		fmt.Fprintf(out, "[LOCAL] %s last measured %s (out of stock)\n", bin, result)
	}
}

func (c *Controller) send(cmd string) error {
	_, err := io.WriteString(c.port, cmd+"\n")
	if err != nil {
		return fmt.Errorf("error writing to device: %w", err)
	}
	return nil
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	for _, cmd := range carousel.Commands() {
		fmt.Fprintf(out, "  %-6s - %s\n", cmd.Verb, cmd.Description)
	}
	fmt.Fprintf(out, "  %-6s - %s\n", "status", "Show the state tracked from device output.")
	fmt.Fprintf(out, "  %-6s - %s\n", "help", "This help message.")
	fmt.Fprintf(out, "  %-6s - %s\n", "exit", "Leave the bridge. The carousel keeps its state.")
}
