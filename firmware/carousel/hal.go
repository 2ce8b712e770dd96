package carousel

// Output is a digital output line
type Output interface {
	Set(high bool)
}

// Input is a digital input line
type Input interface {
	Get() bool
}

// Clock is the monotonic time source plus the busy-wait used for pulse spacing and
// debounce timing.
type Clock interface {
	Millis() int64
	SleepMicros(us int64)
}

// LineReader yields complete, trimmed command lines. ReadLine must not block when no
// line is available.
type LineReader interface {
	ReadLine() (string, bool)
}

// StopInput reports an emergency stop request that arrived while the loop was busy
// moving, for example an 'e' byte waiting in the serial buffer.
type StopInput interface {
	StopRequested() bool
}

// Pinger fires one ultrasonic ping and returns the distance in centimeters. ok is false
// when no echo returned in time.
type Pinger interface {
	Ping() (cm float64, ok bool)
}

// Reporter receives every human-readable status line
type Reporter interface {
	Report(line string)
}

// Hardware bundles the logical lines and services the controller depends on
type Hardware struct {
	Step   Output
	Dir    Output
	Enable Output
	Index  Input
	Beam   Input

	Pinger   Pinger
	Clock    Clock
	Lines    LineReader
	Stop     StopInput
	Reporter Reporter
}
