package bincarousel

import (
	"errors"
	"strconv"
	"strings"
)

// Bin is one of the four carousel slots. BinUnknown is used before homing and whenever
// the physical position can no longer be trusted.
type Bin int

const (
	BinUnknown Bin = -1
	Bin0       Bin = 0
	Bin1       Bin = 1
	Bin2       Bin = 2
	Bin3       Bin = 3

	// NumBins is the number of slots on the drum
	NumBins = 4
)

// Valid reports whether b names a real slot
func (b Bin) Valid() bool {
	return b >= Bin0 && b <= Bin3
}

func (b Bin) String() string {
	if !b.Valid() {
		return "BIN?"
	}
	return "BIN" + strconv.Itoa(int(b))
}

// Next is the slot reached by moving one position forward
func (b Bin) Next() Bin {
	if !b.Valid() {
		return BinUnknown
	}
	return (b + 1) % NumBins
}

// ParseBin accepts "bin2" or "BIN2"
func ParseBin(s string) (Bin, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	n, err := strconv.Atoi(strings.TrimPrefix(s, "bin"))
	if err != nil || !strings.HasPrefix(s, "bin") || !Bin(n).Valid() {
		return BinUnknown, errors.New("invalid bin: " + s)
	}
	return Bin(n), nil
}

// GateState is the lockout state derived from the break-beam sensor
type GateState int

const (
	GateReady GateState = iota
	GateBlocked
	GateRearming
	GateInventoryPending
	// GateSettling is the boot state until the first beam reading has held for the
	// debounce dwell
	GateSettling
)

func (g GateState) String() string {
	switch g {
	case GateBlocked:
		return "Blocked"
	case GateRearming:
		return "Rearming"
	case GateInventoryPending:
		return "InventoryPending"
	case GateSettling:
		return "Settling"
	default:
		fallthrough
	case GateReady:
		return "Ready"
	}
}

// Status lines written by the firmware. The host bridge matches on these, so they are
// part of the serial protocol.
const (
	MsgBoot              = "Carousel controller started. Send 'h' to home."
	MsgHomingStart       = "Homing..."
	MsgHomingComplete    = "Homing complete. Now at BIN0"
	MsgMoveDone          = "Done. Now at "
	MsgAlreadyAt         = "Already at "
	MsgGateBlocked       = "GATE: BLOCKED (bin removed), selection locked"
	MsgGateOpen          = "GATE: OPEN, re-arming"
	MsgGateReady         = "GATE: Ready. Press 'i' to perform inventory"
	MsgInventoryStart    = "Inventory: rotating to sensor"
	MsgDistancePrefix    = "(Distance(cm)= "
	MsgInventoryComplete = "Inventory complete. Now at "
	MsgEStop             = "E-STOP: motor disabled. Reset required."
	MsgQuit              = "Returned to startup state. Send 'h' to home."
	MsgUnknownCommand    = "Unknown command '"
	MsgErrorPrefix       = "error: "
	MsgPrompt            = "> "
	ResultFull           = "HI"
	ResultEmptyOrUnknown = "LO"
)

// InventoryRecord is the machine-parsable inventory result: bin<N>,<HI|LO>,<timestampMs>
type InventoryRecord struct {
	Bin         Bin
	Full        bool
	TimestampMs int64
}

// Result is HI for a full bin and LO otherwise
func (r InventoryRecord) Result() string {
	if r.Full {
		return ResultFull
	}
	return ResultEmptyOrUnknown
}

func (r InventoryRecord) String() string {
	return "bin" + strconv.Itoa(int(r.Bin)) + "," + r.Result() + "," + strconv.FormatInt(r.TimestampMs, 10)
}

var errInvalidRecord = errors.New("invalid inventory record")

// ParseInventoryRecord parses a line produced by InventoryRecord.String
func ParseInventoryRecord(line string) (InventoryRecord, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "bin") {
		return InventoryRecord{}, errInvalidRecord
	}

	n, err := strconv.Atoi(strings.TrimPrefix(parts[0], "bin"))
	if err != nil || !Bin(n).Valid() {
		return InventoryRecord{}, errInvalidRecord
	}

	var full bool
	switch parts[1] {
	case ResultFull:
		full = true
	case ResultEmptyOrUnknown:
	default:
		return InventoryRecord{}, errInvalidRecord
	}

	ts, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return InventoryRecord{}, errInvalidRecord
	}

	return InventoryRecord{Bin: Bin(n), Full: full, TimestampMs: ts}, nil
}
