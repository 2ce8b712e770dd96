//go:build tinygo

package main

import (
	"machine"

	"github.com/IanScottMcGuire/bincarousel/firmware/carousel"
	"github.com/IanScottMcGuire/bincarousel/firmware/device"
)

func main() {
	pins := device.PinConfig{
		Step:    machine.GP2,
		Dir:     machine.GP3,
		Enable:  machine.GP4,
		Index:   machine.GP6,
		Beam:    machine.GP7,
		Trigger: machine.GP10,
		Echo:    machine.GP11,
	}

	cfg := carousel.DefaultConfig()
	// measured on the reference build: index press to bin stop, less the drift trim
	cfg.IndexToStopDeg = 15
	cfg.TrimDeg = -2

	d, err := device.New(pins, cfg)
	if err != nil {
		panic(err)
	}

	d.Run()
}
