package controller

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultBaudRate = "115200"

// Config is the host bridge configuration
type Config struct {
	// SerialPort is the MCU UART. Empty picks the first USB serial port found.
	SerialPort string `yaml:"serial_port"`
	BaudRate   string `yaml:"baud_rate"`

	// InventoryAddr is the base URL of the inventory service. Empty disables posting.
	InventoryAddr string `yaml:"inventory_addr"`
	// CSVLogPath is the local inventory log. Empty disables it.
	CSVLogPath string `yaml:"csv_log"`
}

// NewConfigFromEnv reads SERIAL_PORT, BAUD_RATE, INVENTORY_ADDR and INVENTORY_CSV
func NewConfigFromEnv() (Config, error) {
	var cfg Config
	cfg.applyEnv()
	cfg.normalize()
	return cfg, cfg.validate()
}

// LoadConfig reads a YAML file. Environment variables that are set override the file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config %q: %w", path, err)
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, cfg.validate()
}

func (c *Config) applyEnv() {
	for env, field := range map[string]*string{
		"SERIAL_PORT":    &c.SerialPort,
		"BAUD_RATE":      &c.BaudRate,
		"INVENTORY_ADDR": &c.InventoryAddr,
		"INVENTORY_CSV":  &c.CSVLogPath,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*field = v
		}
	}
}

func (c *Config) normalize() {
	c.SerialPort = strings.TrimSpace(c.SerialPort)
	c.BaudRate = strings.TrimSpace(c.BaudRate)
	c.InventoryAddr = strings.TrimSuffix(strings.TrimSpace(c.InventoryAddr), "/")
	c.CSVLogPath = strings.TrimSpace(c.CSVLogPath)

	if c.BaudRate == "" {
		c.BaudRate = defaultBaudRate
	}
}

func (c Config) validate() error {
	baud, err := strconv.Atoi(c.BaudRate)
	if err != nil || baud <= 0 {
		return fmt.Errorf("invalid baud rate %q", c.BaudRate)
	}
	if c.InventoryAddr != "" && !strings.HasPrefix(c.InventoryAddr, "http://") && !strings.HasPrefix(c.InventoryAddr, "https://") {
		return fmt.Errorf("inventory address must be an http(s) URL: %q", c.InventoryAddr)
	}
	return nil
}

func (c Config) baudRate() int {
	baud, _ := strconv.Atoi(c.BaudRate)
	return baud
}
