package discovery

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/odrive-go/odrive/pkg/channel"
	"github.com/odrive-go/odrive/pkg/transport"
)

// Candidate is a channel that may lead to a device.
type Candidate struct {
	// Name describes the candidate in diagnostics.
	Name string

	// Open opens the channel. Failures are reported and the candidate skipped.
	Open func() (channel.Channel, error)
}

// Source enumerates candidates for one transport.
type Source interface {
	// Name identifies the source in metrics, e.g. "usb" or "serial".
	Name() string

	// Candidates lists what is currently attached. Candidates returned
	// alongside an error are still probed.
	Candidates() ([]Candidate, error)
}

// USBID is a USB vendor/product pair.
type USBID struct {
	Vendor  uint16
	Product uint16
}

func (id USBID) String() string {
	return fmt.Sprintf("%04x:%04x", id.Vendor, id.Product)
}

// DefaultUSBIDs are the vendor/product pairs of ODrive firmware.
var DefaultUSBIDs = []USBID{
	{Vendor: 0x1209, Product: 0x0D31},
	{Vendor: 0x1209, Product: 0x0D32},
	{Vendor: 0x0483, Product: 0x5740},
}

// USBBus lists and opens USB devices. *transport.USBHost implements it.
type USBBus interface {
	List(vendor, product uint16) ([]transport.USBDeviceInfo, error)
	Open(info transport.USBDeviceInfo) (transport.Stream, error)
}

// USBSource yields one candidate per attached device matching IDs.
type USBSource struct {
	Bus  USBBus
	IDs  []USBID
	Wrap func(transport.Stream) channel.Channel
}

// NewUSBSource creates a source on bus for ids, falling back to DefaultUSBIDs.
func NewUSBSource(bus USBBus, ids []USBID, wrap func(transport.Stream) channel.Channel) *USBSource {
	if len(ids) == 0 {
		ids = DefaultUSBIDs
	}
	return &USBSource{Bus: bus, IDs: ids, Wrap: wrapOrDefault(wrap)}
}

// Name returns "usb".
func (s *USBSource) Name() string { return "usb" }

// Candidates lists matching devices without opening them.
func (s *USBSource) Candidates() ([]Candidate, error) {
	var (
		out  []Candidate
		errs []error
	)
	for _, id := range s.IDs {
		infos, err := s.Bus.List(id.Vendor, id.Product)
		if err != nil {
			errs = append(errs, err)
		}
		for _, info := range infos {
			out = append(out, Candidate{
				Name: "USB device " + info.String(),
				Open: func() (channel.Channel, error) {
					stream, err := s.Bus.Open(info)
					if err != nil {
						return nil, err
					}
					return s.Wrap(stream), nil
				},
			})
		}
	}
	return out, errors.Join(errs...)
}

// DefaultSerialPattern returns the device name pattern for the running OS.
func DefaultSerialPattern() *regexp.Regexp {
	return SerialPatternFor(runtime.GOOS)
}

// SerialPatternFor returns the device name pattern for goos.
func SerialPatternFor(goos string) *regexp.Regexp {
	if goos == "darwin" {
		return regexp.MustCompile(`^tty\.usbmodem`)
	}
	return regexp.MustCompile(`^ttyACM[0-9]+$`)
}

// SerialSource yields one candidate per serial port whose base name matches
// Pattern.
type SerialSource struct {
	Pattern  *regexp.Regexp
	BaudRate int

	// ListPorts and OpenPort default to the go.bug.st/serial backed
	// functions in package transport.
	ListPorts func() ([]string, error)
	OpenPort  func(path string, baud int) (transport.Stream, error)

	Wrap func(transport.Stream) channel.Channel
}

// NewSerialSource creates a source with the given pattern and baud rate,
// falling back to the platform pattern and 115200 baud.
func NewSerialSource(pattern *regexp.Regexp, baud int, wrap func(transport.Stream) channel.Channel) *SerialSource {
	if pattern == nil {
		pattern = DefaultSerialPattern()
	}
	if baud <= 0 {
		baud = transport.DefaultBaudRate
	}
	return &SerialSource{
		Pattern:   pattern,
		BaudRate:  baud,
		ListPorts: transport.ListSerialPorts,
		OpenPort:  openSerial,
		Wrap:      wrapOrDefault(wrap),
	}
}

func openSerial(path string, baud int) (transport.Stream, error) {
	return transport.OpenSerial(path, baud)
}

// Name returns "serial".
func (s *SerialSource) Name() string { return "serial" }

// Candidates lists matching ports. Ports are opened lazily.
func (s *SerialSource) Candidates() ([]Candidate, error) {
	ports, err := s.ListPorts()
	if err != nil {
		return nil, fmt.Errorf("%w: list serial ports: %v", transport.ErrTransportUnavailable, err)
	}

	var out []Candidate
	for _, path := range ports {
		if !s.Pattern.MatchString(filepath.Base(path)) {
			continue
		}
		out = append(out, Candidate{
			Name: fmt.Sprintf("serial port %s@%d", path, s.BaudRate),
			Open: func() (channel.Channel, error) {
				stream, err := s.OpenPort(path, s.BaudRate)
				if err != nil {
					return nil, err
				}
				return s.Wrap(stream), nil
			},
		})
	}
	return out, nil
}

// StaticSource yields a fixed list of candidates.
type StaticSource struct {
	Label string
	List  []Candidate
}

// Name returns the label.
func (s *StaticSource) Name() string { return s.Label }

// Candidates returns the fixed list.
func (s *StaticSource) Candidates() ([]Candidate, error) { return s.List, nil }

func wrapOrDefault(wrap func(transport.Stream) channel.Channel) func(transport.Stream) channel.Channel {
	if wrap != nil {
		return wrap
	}
	return func(s transport.Stream) channel.Channel {
		return channel.NewPacketChannel(s)
	}
}
