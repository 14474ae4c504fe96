// Package config loads and validates softfloppyd configuration.
//
// Configuration is a YAML document selecting the channel transport,
// the emulated drives, and logging options:
//
//	log:
//	  level: debug
//	  format: text
//	transport:
//	  kind: serial
//	  serial:
//	    device: /dev/ttyUSB0
//	    baud_rate: 115200
//	drives:
//	  - drive: 1
//	    image: boot.img
//	  - drive: 2
//	    sectors: 800
//
// Use [Load], then [Validate], then [Normalize].
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Transport kinds.
const (
	KindLoopback = "loopback"
	KindSerial   = "serial"
	KindConsole  = "console"
)

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Drives    []DriveConfig   `yaml:"drives"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// ---- TRANSPORT ----

type TransportConfig struct {
	Kind     string       `yaml:"kind"`     // loopback | serial | console
	Capacity int          `yaml:"capacity"` // receive queue capacity; 0 = default
	Serial   SerialConfig `yaml:"serial"`
}

type SerialConfig struct {
	Device    string `yaml:"device"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	StopBits  int    `yaml:"stop_bits"`
	Parity    string `yaml:"parity"` // N | E | O
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- DRIVES ----

type DriveConfig struct {
	Drive    uint8  `yaml:"drive"`
	Image    string `yaml:"image"`   // image file path; empty selects a memory image
	Sectors  uint32 `yaml:"sectors"` // memory image size; ignored when Image is set
	ReadOnly bool   `yaml:"read_only"`
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
