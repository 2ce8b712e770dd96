package carousel

// Latch is the process-wide emergency stop. It is set by the 'e' command or by a stop
// request noticed while polling during motion, and nothing in software clears it: only a
// reset of the controller does.
type Latch struct {
	tripped bool
	input   StopInput
	onTrip  []func()
}

// Trip sets the latch. Hooks (motor de-energize, report) run only on the first call.
func (l *Latch) Trip() {
	if l.tripped {
		return
	}
	l.tripped = true
	for _, f := range l.onTrip {
		f()
	}
}

// Tripped reports whether the latch is set, first checking the stop input so an e-stop
// typed mid-motion takes effect at the next pulse boundary.
func (l *Latch) Tripped() bool {
	if !l.tripped && l.input != nil && l.input.StopRequested() {
		l.Trip()
	}
	return l.tripped
}

// OnTrip registers f to run when the latch is first set
func (l *Latch) OnTrip(f func()) {
	l.onTrip = append(l.onTrip, f)
}
