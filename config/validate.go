package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: must be debug, info, warn or error", cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q: must be text or json", cfg.Log.Format)
	}

	switch cfg.Transport.Kind {
	case "", KindLoopback, KindConsole:
	case KindSerial:
		if cfg.Transport.Serial.Device == "" {
			return fmt.Errorf("transport.serial.device is required for kind %q", KindSerial)
		}
		switch d := cfg.Transport.Serial.DataBits; d {
		case 0, 5, 6, 7, 8:
		default:
			return fmt.Errorf("transport.serial.data_bits %d: must be 5, 6, 7 or 8", d)
		}
		switch s := cfg.Transport.Serial.StopBits; s {
		case 0, 1, 2:
		default:
			return fmt.Errorf("transport.serial.stop_bits %d: must be 1 or 2", s)
		}
		switch p := cfg.Transport.Serial.Parity; p {
		case "", "N", "E", "O":
		default:
			return fmt.Errorf("transport.serial.parity %q: must be N, E or O", p)
		}
		if cfg.Transport.Serial.BaudRate < 0 {
			return fmt.Errorf("transport.serial.baud_rate %d: must not be negative", cfg.Transport.Serial.BaudRate)
		}
	default:
		return fmt.Errorf("transport.kind %q: must be %s, %s or %s",
			cfg.Transport.Kind, KindLoopback, KindSerial, KindConsole)
	}

	if cfg.Transport.Capacity < 0 {
		return fmt.Errorf("transport.capacity %d: must not be negative", cfg.Transport.Capacity)
	}

	seen := make(map[uint8]bool)
	for _, d := range cfg.Drives {
		if seen[d.Drive] {
			return fmt.Errorf("drive %d: defined more than once", d.Drive)
		}
		seen[d.Drive] = true

		if d.Image == "" && d.Sectors == 0 {
			return fmt.Errorf("drive %d: needs an image path or a sector count", d.Drive)
		}
	}

	return nil
}

// Normalize applies defaults for omitted fields.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	if cfg.Transport.Kind == "" {
		cfg.Transport.Kind = KindLoopback
	}
	if cfg.Transport.Kind == KindSerial {
		s := &cfg.Transport.Serial
		if s.BaudRate == 0 {
			s.BaudRate = 115200
		}
		if s.DataBits == 0 {
			s.DataBits = 8
		}
		if s.StopBits == 0 {
			s.StopBits = 1
		}
		if s.Parity == "" {
			s.Parity = "N"
		}
		if s.TimeoutMs == 0 {
			s.TimeoutMs = 100
		}
	}
}
