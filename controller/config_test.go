package controller

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/IanScottMcGuire/bincarousel/inventory"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		env      map[string]string
		expected Config
		wantErr  bool
	}{
		{
			"Full",
			`
serial_port: /dev/ttyTHS1
baud_rate: "9600"
inventory_addr: http://localhost:8080/
csv_log: inventory_log.csv
`,
			nil,
			Config{SerialPort: "/dev/ttyTHS1", BaudRate: "9600", InventoryAddr: "http://localhost:8080", CSVLogPath: "inventory_log.csv"},
			false,
		},
		{
			"Defaults",
			`serial_port: /dev/ttyACM0`,
			nil,
			Config{SerialPort: "/dev/ttyACM0", BaudRate: "115200"},
			false,
		},
		{
			"EnvOverrides",
			`serial_port: /dev/ttyACM0`,
			map[string]string{"SERIAL_PORT": "/dev/ttyUSB1", "INVENTORY_CSV": "/tmp/log.csv"},
			Config{SerialPort: "/dev/ttyUSB1", BaudRate: "115200", CSVLogPath: "/tmp/log.csv"},
			false,
		},
		{
			"BadBaudRate",
			`baud_rate: fast`,
			nil,
			Config{},
			true,
		},
		{
			"BadInventoryAddr",
			`inventory_addr: localhost:8080`,
			nil,
			Config{},
			true,
		},
		{
			"InvalidYAML",
			`serial_port: [`,
			nil,
			Config{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, env := range []string{"SERIAL_PORT", "BAUD_RATE", "INVENTORY_ADDR", "INVENTORY_CSV"} {
				t.Setenv(env, tt.env[env])
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			err := os.WriteFile(path, []byte(tt.yaml), 0o644)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			cfg, err := LoadConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("expected=%+v, got=%+v", tt.expected, cfg)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Errorf("expected error")
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("SERIAL_PORT", " /dev/cu.usbmodem2101 ")
	t.Setenv("BAUD_RATE", "")
	t.Setenv("INVENTORY_ADDR", "https://inventory.local")
	t.Setenv("INVENTORY_CSV", "")

	cfg, err := NewConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := Config{SerialPort: "/dev/cu.usbmodem2101", BaudRate: "115200", InventoryAddr: "https://inventory.local"}
	if cfg != expected {
		t.Errorf("expected=%+v, got=%+v", expected, cfg)
	}
	if cfg.baudRate() != 115200 {
		t.Errorf("expected=%d, got=%d", 115200, cfg.baudRate())
	}
}

func TestRecorderFromConfig(t *testing.T) {
	rec, history := recorderFromConfig(Config{})
	if _, ok := rec.(noopRecorder); !ok {
		t.Errorf("expected noop recorder without destinations")
	}
	if history != nil {
		t.Errorf("expected no history without a CSV log")
	}

	rec, history = recorderFromConfig(Config{CSVLogPath: "log.csv", InventoryAddr: "http://localhost"})
	m, ok := rec.(multiRecorder)
	if !ok || len(m) != 2 {
		t.Errorf("expected two recorders, got %#v", rec)
	}
	if _, ok := history.(*inventory.CSVLog); !ok {
		t.Errorf("expected CSV log history, got %#v", history)
	}
}
