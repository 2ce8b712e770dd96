package controller

import (
	"fmt"
	"strings"

	"github.com/IanScottMcGuire/bincarousel"
)

// Status is the device state as far as the host can tell from its status lines
type Status struct {
	Homed            bool
	CurrentBin       bincarousel.Bin
	GateBlocked      bool
	InventoryPending bool
	EStopped         bool

	// LastResult is HI or LO, empty before the first inventory
	LastResult string
	// LastDistance is the device's distance text, "N/A" for no reading
	LastDistance string
}

// NewStatus is the state of a freshly booted device
func NewStatus() Status {
	return Status{CurrentBin: bincarousel.BinUnknown}
}

// Apply updates the status from one device line
func (s *Status) Apply(line string) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ">"))

	switch {
	case line == "":
		return
	case line == bincarousel.MsgHomingStart:
		s.Homed = false
		s.CurrentBin = bincarousel.BinUnknown
	case strings.HasPrefix(line, bincarousel.MsgHomingComplete):
		s.Homed = true
		s.CurrentBin = bincarousel.Bin0
	case line == bincarousel.MsgQuit:
		s.Homed = false
		s.CurrentBin = bincarousel.BinUnknown
		s.InventoryPending = false
	case line == bincarousel.MsgEStop:
		s.EStopped = true
	case line == bincarousel.MsgBoot:
		*s = NewStatus()
	case strings.HasPrefix(line, "GATE: BLOCKED"):
		s.GateBlocked = true
	case strings.HasPrefix(line, "GATE: OPEN"):
		s.GateBlocked = false
	case strings.HasPrefix(line, "GATE: Ready"):
		s.GateBlocked = false
		s.InventoryPending = true
	case line == bincarousel.ResultFull, line == bincarousel.ResultEmptyOrUnknown:
		s.LastResult = line
		s.InventoryPending = false
	case strings.HasPrefix(line, bincarousel.MsgDistancePrefix):
		s.LastDistance = strings.TrimSuffix(strings.TrimPrefix(line, bincarousel.MsgDistancePrefix), ")")
	}

	// moves, inventory and "already at" all end with the bin the drum stopped at
	if _, after, ok := strings.Cut(line, "Now at "); ok {
		if b, err := bincarousel.ParseBin(after); err == nil {
			s.CurrentBin = b
		}
	} else if after, ok := strings.CutPrefix(line, bincarousel.MsgAlreadyAt); ok {
		if b, err := bincarousel.ParseBin(after); err == nil {
			s.CurrentBin = b
		}
	}
}

func (s Status) String() string {
	result := s.LastResult
	if result == "" {
		result = "-"
	}
	distance := s.LastDistance
	if distance == "" {
		distance = "-"
	}

	return fmt.Sprintf(`  Homed          : %t
  Current bin    : %s
  Gate blocked   : %t
  Inventory pend : %t
  E-stop         : %t
  Last inv result: %s
  Last distance  : %s cm
`, s.Homed, s.CurrentBin, s.GateBlocked, s.InventoryPending, s.EStopped, result, distance)
}
