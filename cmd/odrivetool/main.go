// Command odrivetool finds an ODrive and inspects or changes its properties.
//
// Usage:
//
//	odrivetool [flags]
//
// Flags:
//
//	-config string         Configuration file path
//	-log-level string      Log level: debug, info, warn, error (default "info")
//	-protocol-log string   Write protocol events to an .olog file
//	-metrics string        Serve Prometheus metrics on this address
//	-serial-pattern string Regular expression for serial device names
//	-baud int              Serial baud rate (default 115200)
//	-no-usb                Do not probe USB devices
//	-no-serial             Do not probe serial ports
//	-timeout duration      Give up discovery after this long (0 waits forever)
//	-get string            Print one property and exit
//	-set string            Write path=value and exit
//	-i                     Start the interactive shell
//	-simulate              Use a built-in simulated device
//	-schema string         Schema file (.json or .yaml) for the simulator
//
// Examples:
//
//	# Print the tree of the first device found
//	odrivetool
//
//	# Read and write single properties
//	odrivetool -get vbus_voltage
//	odrivetool -set axis0.controller.config.vel_limit=20
//
//	# Explore a simulated device
//	odrivetool -simulate -i
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/odrive-go/odrive/cmd/odrivetool/interactive"
	"github.com/odrive-go/odrive/pkg/config"
	"github.com/odrive-go/odrive/pkg/discovery"
	"github.com/odrive-go/odrive/pkg/inspect"
)

// Options holds the command-line settings.
type Options struct {
	ConfigFile    string
	LogLevel      string
	ProtocolLog   string
	MetricsAddr   string
	SerialPattern string
	BaudRate      int
	NoUSB         bool
	NoSerial      bool
	Timeout       time.Duration
	Get           string
	Set           string
	Interactive   bool
	Simulate      bool
	SchemaFile    string
}

var opts Options

func init() {
	flag.StringVar(&opts.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&opts.ProtocolLog, "protocol-log", "", "Write protocol events to an .olog file")
	flag.StringVar(&opts.MetricsAddr, "metrics", "", "Serve Prometheus metrics on this address")
	flag.StringVar(&opts.SerialPattern, "serial-pattern", "", "Regular expression for serial device names")
	flag.IntVar(&opts.BaudRate, "baud", 115200, "Serial baud rate")
	flag.BoolVar(&opts.NoUSB, "no-usb", false, "Do not probe USB devices")
	flag.BoolVar(&opts.NoSerial, "no-serial", false, "Do not probe serial ports")
	flag.DurationVar(&opts.Timeout, "timeout", 0, "Give up discovery after this long (0 waits forever)")
	flag.StringVar(&opts.Get, "get", "", "Print one property and exit")
	flag.StringVar(&opts.Set, "set", "", "Write path=value and exit")
	flag.BoolVar(&opts.Interactive, "i", false, "Start the interactive shell")
	flag.BoolVar(&opts.Simulate, "simulate", false, "Use a built-in simulated device")
	flag.StringVar(&opts.SchemaFile, "schema", "", "Schema file (.json or .yaml) for the simulator")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "odrivetool: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return err
		}
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlags(cfg, &opts, set)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := setup(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	findCtx := ctx
	if opts.Timeout > 0 {
		var cancelFind context.CancelFunc
		findCtx, cancelFind = context.WithTimeout(ctx, opts.Timeout)
		defer cancelFind()
	}

	logger.Info("Waiting for ODrive...")
	dev, err := app.finder.FindAny(findCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("no device found within %s", opts.Timeout)
		}
		return err
	}
	defer dev.Close()
	logger.Info("Connected", "device", dev.Name, "connection", dev.ConnectionID)

	insp := inspect.NewInspector(dev.Root)
	switch {
	case opts.Get != "":
		return printProperty(ctx, insp, opts.Get)
	case opts.Set != "":
		return setProperty(ctx, insp, opts.Set)
	case opts.Interactive:
		return interactive.Run(ctx, dev.Root, "odrive> ")
	default:
		rows, err := insp.Tree(ctx, "", true)
		if err != nil {
			return err
		}
		fmt.Print(inspect.NewFormatter().FormatTree(rows))
		return nil
	}
}

// applyFlags copies explicitly set flags over the file configuration.
func applyFlags(cfg *config.Config, o *Options, set map[string]bool) {
	if set["log-level"] {
		cfg.Log.Level = o.LogLevel
	}
	if set["protocol-log"] {
		cfg.Log.ProtocolLog = o.ProtocolLog
	}
	if set["metrics"] {
		cfg.Metrics.Addr = o.MetricsAddr
	}
	if set["serial-pattern"] {
		cfg.Discovery.SerialPattern = o.SerialPattern
	}
	if set["baud"] {
		cfg.Discovery.BaudRate = o.BaudRate
	}
	if set["no-usb"] {
		cfg.Discovery.DisableUSB = o.NoUSB
	}
	if set["no-serial"] {
		cfg.Discovery.DisableSerial = o.NoSerial
	}
}

func printProperty(ctx context.Context, insp *inspect.Inspector, path string) error {
	v, err := insp.Read(ctx, path)
	if err != nil {
		return err
	}
	fmt.Println(inspect.NewFormatter().FormatValue(v))
	return nil
}

func setProperty(ctx context.Context, insp *inspect.Inspector, assignment string) error {
	path, value, err := parseAssignment(assignment)
	if err != nil {
		return err
	}
	_, err = insp.Write(ctx, path, value)
	return err
}

// parseAssignment splits "path=value".
func parseAssignment(s string) (path, value string, err error) {
	path, value, ok := strings.Cut(s, "=")
	path, value = strings.TrimSpace(path), strings.TrimSpace(value)
	if !ok || path == "" || value == "" {
		return "", "", fmt.Errorf("invalid assignment %q, want path=value", s)
	}
	return path, value, nil
}

// finderConfig derives finder timing from cfg. Property reads share the
// probe timeout.
func finderConfig(cfg *config.Config) discovery.Config {
	fc := cfg.Discovery.Finder()
	fc.ResponseTimeout = cfg.Discovery.ProbeTimeout
	return fc
}
