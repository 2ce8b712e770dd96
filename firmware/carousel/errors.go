package carousel

import "errors"

var (
	// ErrSafetyAbort is returned by every operation that observed the e-stop latch
	ErrSafetyAbort = errors.New("e-stop active, operation aborted")
	// ErrGuardExceeded means a seek ran past its step guard: switch disconnected, stuck, or jammed drum
	ErrGuardExceeded = errors.New("index seek exceeded step guard")
	// ErrSensorUndefined means the ultrasonic sensor could not produce a reading
	ErrSensorUndefined = errors.New("no valid distance reading")
)

// PreconditionError is returned when an operation is invoked in a state where it cannot
// run. It never has side effects.
type PreconditionError string

func (e PreconditionError) Error() string {
	return string(e)
}

const (
	ErrNotHomed            PreconditionError = "Not homed. Send 'h' first."
	ErrAlreadyHomed        PreconditionError = "Already homed. Send 'quit' to return to startup and re-home."
	ErrGateBlocked         PreconditionError = "GATE BLOCKED. Push bin fully in first."
	ErrGateSettling        PreconditionError = "Gate sensor still settling. Try again."
	ErrInventoryNotPending PreconditionError = "Inventory not pending (no bin reinserted yet or already measured)."
	ErrNoBinSelected       PreconditionError = "No bin has been selected yet."
	ErrInvalidBin          PreconditionError = "Invalid bin. Use bin0..bin3."
)

// IsPrecondition reports whether err is a PreconditionError
func IsPrecondition(err error) bool {
	var p PreconditionError
	return errors.As(err, &p)
}
