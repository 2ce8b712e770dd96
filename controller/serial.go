package controller

import (
	"errors"
	"fmt"
	"strings"

	"go.bug.st/serial"
)

// ErrNoUSBSerial is returned when no port looks like a microcontroller
var ErrNoUSBSerial = errors.New("no USB serial port found")

// GetSerialPorts lists ports that look like a microcontroller or board UART
func GetSerialPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	var result []string
	for _, p := range ports {
		if isDevicePort(p) {
			result = append(result, p)
		}
	}

	if len(result) == 0 {
		return nil, ErrNoUSBSerial
	}
	return result, nil
}

func isDevicePort(name string) bool {
	for _, s := range []string{"usbmodem", "usbserial", "ttyUSB", "ttyACM", "ttyTHS"} {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// openPort opens the configured port at 8N1, or the first device port when none is set
func openPort(cfg Config) (serial.Port, error) {
	name := cfg.SerialPort
	if name == "" {
		ports, err := GetSerialPorts()
		if err != nil {
			return nil, err
		}
		name = ports[0]
	}

	port, err := serial.Open(name, &serial.Mode{
		BaudRate: cfg.baudRate(),
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %q: %w", name, err)
	}
	return port, nil
}
