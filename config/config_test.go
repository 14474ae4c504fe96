package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "softfloppyd.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
transport:
  kind: serial
  capacity: 4000
  serial:
    device: /dev/ttyUSB0
    baud_rate: 57600
drives:
  - drive: 1
    image: boot.img
    read_only: true
  - drive: 2
    sectors: 800
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log config = %+v", cfg.Log)
	}
	if cfg.Transport.Kind != KindSerial || cfg.Transport.Capacity != 4000 {
		t.Errorf("transport config = %+v", cfg.Transport)
	}
	if cfg.Transport.Serial.Device != "/dev/ttyUSB0" || cfg.Transport.Serial.BaudRate != 57600 {
		t.Errorf("serial config = %+v", cfg.Transport.Serial)
	}
	if len(cfg.Drives) != 2 || cfg.Drives[0].Drive != 1 || !cfg.Drives[0].ReadOnly {
		t.Errorf("drives config = %+v", cfg.Drives)
	}
	if cfg.Drives[1].Sectors != 800 {
		t.Errorf("drive 2 sectors = %d, want 800", cfg.Drives[1].Sectors)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() of missing file succeeded")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "drives: [unterminated")
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed YAML succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"empty config", func(c *Config) {}, false},
		{"loopback", func(c *Config) { c.Transport.Kind = KindLoopback }, false},
		{"console", func(c *Config) { c.Transport.Kind = KindConsole }, false},
		{
			"serial with device",
			func(c *Config) {
				c.Transport.Kind = KindSerial
				c.Transport.Serial.Device = "/dev/ttyS0"
			},
			false,
		},
		{
			"serial without device",
			func(c *Config) { c.Transport.Kind = KindSerial },
			true,
		},
		{
			"bad transport kind",
			func(c *Config) { c.Transport.Kind = "carrier-pigeon" },
			true,
		},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{
			"bad data bits",
			func(c *Config) {
				c.Transport.Kind = KindSerial
				c.Transport.Serial.Device = "/dev/ttyS0"
				c.Transport.Serial.DataBits = 9
			},
			true,
		},
		{
			"bad parity",
			func(c *Config) {
				c.Transport.Kind = KindSerial
				c.Transport.Serial.Device = "/dev/ttyS0"
				c.Transport.Serial.Parity = "Q"
			},
			true,
		},
		{
			"negative capacity",
			func(c *Config) { c.Transport.Capacity = -1 },
			true,
		},
		{
			"drive without backing",
			func(c *Config) { c.Drives = []DriveConfig{{Drive: 1}} },
			true,
		},
		{
			"duplicate drive",
			func(c *Config) {
				c.Drives = []DriveConfig{
					{Drive: 1, Sectors: 10},
					{Drive: 1, Sectors: 20},
				}
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			tt.mutate(&cfg)
			err := Validate(&cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalize_Defaults(t *testing.T) {
	var cfg Config
	if err := Validate(&cfg); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	Normalize(&cfg)

	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log defaults = %+v", cfg.Log)
	}
	if cfg.Transport.Kind != KindLoopback {
		t.Errorf("transport kind default = %q, want %q", cfg.Transport.Kind, KindLoopback)
	}
}

func TestNormalize_SerialDefaults(t *testing.T) {
	cfg := Config{
		Transport: TransportConfig{
			Kind:   KindSerial,
			Serial: SerialConfig{Device: "/dev/ttyS0"},
		},
	}
	Normalize(&cfg)

	s := cfg.Transport.Serial
	if s.BaudRate != 115200 || s.DataBits != 8 || s.StopBits != 1 || s.Parity != "N" || s.TimeoutMs != 100 {
		t.Errorf("serial defaults = %+v", s)
	}
}
