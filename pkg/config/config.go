// Package config loads odrivetool settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/odrive-go/odrive/pkg/discovery"
	"github.com/odrive-go/odrive/pkg/transport"
)

// Config is the top-level configuration file.
type Config struct {
	Discovery DiscoveryConfig `yaml:"discovery"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// DiscoveryConfig selects the sources probed and the discovery timing.
type DiscoveryConfig struct {
	USBDevices      []USBDevice   `yaml:"usb_devices"`
	SerialPattern   string        `yaml:"serial_pattern"`
	BaudRate        int           `yaml:"baud_rate"`
	ProbeTimeout    time.Duration `yaml:"probe_timeout"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	MaxPollInterval time.Duration `yaml:"max_poll_interval"`
	DisableUSB      bool          `yaml:"disable_usb"`
	DisableSerial   bool          `yaml:"disable_serial"`
}

// USBDevice is a vendor/product pair. Values may be written in decimal or
// with a 0x prefix.
type USBDevice struct {
	Vendor  HexUint16 `yaml:"vendor"`
	Product HexUint16 `yaml:"product"`
}

// LogConfig controls operational and protocol logging.
type LogConfig struct {
	// Level is a slog level name: debug, info, warn or error.
	Level string `yaml:"level"`

	// ProtocolLog is the path of an .olog file. Empty disables it.
	ProtocolLog string `yaml:"protocol_log"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// HexUint16 is a uint16 that also accepts 0x-prefixed YAML scalars.
type HexUint16 uint16

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *HexUint16) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	v, err := strconv.ParseUint(node.Value, 0, 16)
	if err != nil {
		return fmt.Errorf("line %d: invalid 16-bit value %q", node.Line, node.Value)
	}
	*h = HexUint16(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (h HexUint16) MarshalYAML() (any, error) {
	return fmt.Sprintf("0x%04x", uint16(h)), nil
}

// LoadError reports a configuration file that could not be used.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Validation errors.
var (
	ErrInvalidPattern  = errors.New("invalid serial_pattern")
	ErrInvalidLevel    = errors.New("invalid log level")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrNoSources       = errors.New("both usb and serial discovery are disabled")
)

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the YAML file at path and applies defaults to unset fields.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	d := &c.Discovery
	if len(d.USBDevices) == 0 {
		for _, id := range discovery.DefaultUSBIDs {
			d.USBDevices = append(d.USBDevices, USBDevice{Vendor: HexUint16(id.Vendor), Product: HexUint16(id.Product)})
		}
	}
	if d.BaudRate == 0 {
		d.BaudRate = transport.DefaultBaudRate
	}
	if d.ProbeTimeout == 0 {
		d.ProbeTimeout = discovery.DefaultProbeTimeout
	}
	if d.PollInterval == 0 {
		d.PollInterval = discovery.DefaultPollInterval
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	d := c.Discovery
	if d.SerialPattern != "" {
		if _, err := regexp.Compile(d.SerialPattern); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
	}
	if d.BaudRate < 0 {
		return fmt.Errorf("discovery.baud_rate must be positive, got %d", d.BaudRate)
	}
	if d.ProbeTimeout < 0 || d.PollInterval < 0 || d.MaxPollInterval < 0 {
		return fmt.Errorf("%w: discovery durations must not be negative", ErrInvalidDuration)
	}
	if d.MaxPollInterval != 0 && d.MaxPollInterval < d.PollInterval {
		return fmt.Errorf("%w: max_poll_interval %s is below poll_interval %s", ErrInvalidDuration, d.MaxPollInterval, d.PollInterval)
	}
	if d.DisableUSB && d.DisableSerial {
		return ErrNoSources
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, l.Level)
	}
	return level, nil
}

// USBIDs converts the configured devices.
func (d DiscoveryConfig) USBIDs() []discovery.USBID {
	ids := make([]discovery.USBID, len(d.USBDevices))
	for i, dev := range d.USBDevices {
		ids[i] = discovery.USBID{Vendor: uint16(dev.Vendor), Product: uint16(dev.Product)}
	}
	return ids
}

// Pattern compiles SerialPattern, returning nil when it is unset so that
// the platform default applies.
func (d DiscoveryConfig) Pattern() (*regexp.Regexp, error) {
	if d.SerialPattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(d.SerialPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

// Finder returns the discovery timing settings. Sources, logger and metrics
// are left for the caller.
func (d DiscoveryConfig) Finder() discovery.Config {
	return discovery.Config{
		ProbeTimeout:    d.ProbeTimeout,
		PollInterval:    d.PollInterval,
		MaxPollInterval: d.MaxPollInterval,
	}
}
