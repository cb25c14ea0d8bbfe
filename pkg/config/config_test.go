package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/odrive-go/odrive/pkg/discovery"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "odrive.yaml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
discovery:
  serial_pattern: "^ttyUSB"
metrics:
  addr: ":9100"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Discovery.BaudRate != 115200 {
		t.Fatalf("expected default baud 115200, got %d", cfg.Discovery.BaudRate)
	}
	if cfg.Discovery.ProbeTimeout != 2*time.Second {
		t.Fatalf("expected default probe timeout 2s, got %s", cfg.Discovery.ProbeTimeout)
	}
	if cfg.Discovery.PollInterval != time.Second {
		t.Fatalf("expected default poll interval 1s, got %s", cfg.Discovery.PollInterval)
	}
	if got := cfg.Discovery.USBIDs(); len(got) != len(discovery.DefaultUSBIDs) || got[0] != discovery.DefaultUSBIDs[0] {
		t.Fatalf("expected default USB ids, got %v", got)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.Log.Level)
	}
	if cfg.Metrics.Addr != ":9100" {
		t.Fatalf("expected metrics addr :9100, got %s", cfg.Metrics.Addr)
	}

	re, err := cfg.Discovery.Pattern()
	if err != nil || re == nil || !re.MatchString("ttyUSB0") {
		t.Fatalf("pattern = %v, %v", re, err)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
discovery:
  usb_devices:
    - vendor: 0x1209
      product: "0x0d32"
    - vendor: 1155
      product: 22336
  baud_rate: 921600
  probe_timeout: 500ms
  poll_interval: 250ms
  max_poll_interval: 4s
  disable_serial: true
log:
  level: debug
  protocol_log: /tmp/odrive.olog
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	want := []discovery.USBID{{Vendor: 0x1209, Product: 0x0D32}, {Vendor: 0x0483, Product: 0x5740}}
	got := cfg.Discovery.USBIDs()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("USBIDs = %v, want %v", got, want)
	}

	fc := cfg.Discovery.Finder()
	if fc.ProbeTimeout != 500*time.Millisecond || fc.PollInterval != 250*time.Millisecond || fc.MaxPollInterval != 4*time.Second {
		t.Fatalf("finder config = %+v", fc)
	}
	if !cfg.Discovery.DisableSerial || cfg.Discovery.DisableUSB {
		t.Fatalf("disable flags = usb %v serial %v", cfg.Discovery.DisableUSB, cfg.Discovery.DisableSerial)
	}
	if cfg.Discovery.BaudRate != 921600 {
		t.Fatalf("baud = %d", cfg.Discovery.BaudRate)
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Fatalf("level = %v, %v", level, err)
	}
	if cfg.Log.ProtocolLog != "/tmp/odrive.olog" {
		t.Fatalf("protocol log = %q", cfg.Log.ProtocolLog)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"bad pattern", "discovery:\n  serial_pattern: \"([\"\n", ErrInvalidPattern},
		{"bad level", "log:\n  level: loud\n", ErrInvalidLevel},
		{"negative duration", "discovery:\n  probe_timeout: -1s\n", ErrInvalidDuration},
		{"max below poll", "discovery:\n  poll_interval: 2s\n  max_poll_interval: 1s\n", ErrInvalidDuration},
		{"no sources", "discovery:\n  disable_usb: true\n  disable_serial: true\n", ErrNoSources},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.data)
			_, err := Load(path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load error = %v, want %v", err, tt.want)
			}
			var le *LoadError
			if !errors.As(err, &le) || le.Path != path {
				t.Fatalf("expected LoadError for %s, got %v", path, err)
			}
		})
	}
}

func TestLoadBadInput(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: %v", err)
	}

	path := writeConfig(t, "discovery:\n  usb_devices:\n    - vendor: 0x10000\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for out-of-range vendor id")
	}

	path = writeConfig(t, "discovery: [1, 2]\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed discovery section")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	re, err := cfg.Discovery.Pattern()
	if err != nil || re != nil {
		t.Fatalf("default pattern = %v, %v", re, err)
	}
	if cfg.Metrics.Addr != "" {
		t.Fatalf("metrics should be off by default, got %q", cfg.Metrics.Addr)
	}
}

func TestHexUint16MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(USBDevice{Vendor: 0x1209, Product: 0x0D31})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back USBDevice
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if back.Vendor != 0x1209 || back.Product != 0x0D31 {
		t.Fatalf("round trip = %+v", back)
	}
}
