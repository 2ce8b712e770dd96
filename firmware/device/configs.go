//go:build tinygo

package device

import (
	"machine"
)

// PinConfig is the wiring between the board and the carousel
type PinConfig struct {
	// Step, Dir and Enable go to the stepper driver
	Step   machine.Pin
	Dir    machine.Pin
	Enable machine.Pin

	// Index is the notch switch; it idles high through the pull-up and is pulled low
	// when pressed
	Index machine.Pin
	// Beam is the break-beam receiver at the bin access slot
	Beam machine.Pin

	Trigger machine.Pin
	Echo    machine.Pin
}
