package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/gousb"
)

// USBConfig selects the bulk interface and endpoints of the native protocol.
type USBConfig struct {
	Config      int
	Interface   int
	AltSetting  int
	InEndpoint  int
	OutEndpoint int
}

// DefaultUSBConfig matches the native bulk interface of ODrive firmware.
var DefaultUSBConfig = USBConfig{
	Config:      1,
	Interface:   2,
	AltSetting:  0,
	InEndpoint:  3,
	OutEndpoint: 3,
}

// bulkIn is the subset of *gousb.InEndpoint used by USBStream.
type bulkIn interface {
	ReadContext(ctx context.Context, buf []byte) (int, error)
}

// bulkOut is the subset of *gousb.OutEndpoint used by USBStream.
type bulkOut interface {
	Write(buf []byte) (int, error)
}

// USBStream is a Stream over a pair of USB bulk endpoints.
type USBStream struct {
	name    string
	in      bulkIn
	out     bulkOut
	packet  int
	closers []func() error

	mu      sync.Mutex
	pending []byte

	closeOnce sync.Once
	closeErr  error
}

// USBDeviceInfo identifies one attached USB device.
type USBDeviceInfo struct {
	Vendor  uint16
	Product uint16
	Bus     int
	Address int
}

// String returns "usb <vid>:<pid> bus <n> addr <n>".
func (d USBDeviceInfo) String() string {
	return fmt.Sprintf("usb %04x:%04x bus %d addr %d", d.Vendor, d.Product, d.Bus, d.Address)
}

// USBHost enumerates and opens USB devices through libusb.
type USBHost struct {
	ctx *gousb.Context
	cfg USBConfig
}

// NewUSBHost creates a libusb context. Close releases it.
func NewUSBHost(cfg USBConfig) *USBHost {
	return &USBHost{ctx: gousb.NewContext(), cfg: cfg}
}

// List returns the attached devices matching vendor and product without
// opening them.
func (h *USBHost) List(vendor, product uint16) ([]USBDeviceInfo, error) {
	var found []USBDeviceInfo
	_, err := h.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if desc.Vendor == gousb.ID(vendor) && desc.Product == gousb.ID(product) {
			found = append(found, USBDeviceInfo{
				Vendor:  vendor,
				Product: product,
				Bus:     desc.Bus,
				Address: desc.Address,
			})
		}
		return false
	})
	if err != nil {
		return found, fmt.Errorf("%w: enumerate %04x:%04x: %v", ErrTransportUnavailable, vendor, product, err)
	}
	return found, nil
}

// Open opens the device and claims the bulk interface.
func (h *USBHost) Open(info USBDeviceInfo) (Stream, error) {
	devs, err := h.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Bus == info.Bus && desc.Address == info.Address &&
			desc.Vendor == gousb.ID(info.Vendor) && desc.Product == gousb.ID(info.Product)
	})
	if err != nil {
		for _, d := range devs {
			d.Close()
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrTransportUnavailable, info, err)
	}
	if len(devs) == 0 {
		return nil, fmt.Errorf("%w: %s: device gone", ErrTransportUnavailable, info)
	}
	for _, extra := range devs[1:] {
		extra.Close()
	}

	s, err := claimUSB(devs[0], info.String(), h.cfg)
	if err != nil {
		devs[0].Close()
		return nil, err
	}
	return s, nil
}

// Close releases the libusb context.
func (h *USBHost) Close() error {
	return h.ctx.Close()
}

func claimUSB(dev *gousb.Device, name string, cfg USBConfig) (*USBStream, error) {
	fail := func(step string, err error) error {
		return fmt.Errorf("%w: %s: %s: %v", ErrTransportUnavailable, name, step, err)
	}

	if err := dev.SetAutoDetach(true); err != nil {
		return nil, fail("auto detach", err)
	}
	c, err := dev.Config(cfg.Config)
	if err != nil {
		return nil, fail("config", err)
	}
	intf, err := c.Interface(cfg.Interface, cfg.AltSetting)
	if err != nil {
		c.Close()
		return nil, fail("interface", err)
	}
	in, err := intf.InEndpoint(cfg.InEndpoint)
	if err != nil {
		intf.Close()
		c.Close()
		return nil, fail("in endpoint", err)
	}
	out, err := intf.OutEndpoint(cfg.OutEndpoint)
	if err != nil {
		intf.Close()
		c.Close()
		return nil, fail("out endpoint", err)
	}

	closers := []func() error{
		func() error { intf.Close(); return nil },
		c.Close,
		dev.Close,
	}
	return newUSBStream(name, in, out, in.Desc.MaxPacketSize, closers), nil
}

func newUSBStream(name string, in bulkIn, out bulkOut, packetSize int, closers []func() error) *USBStream {
	if packetSize <= 0 {
		packetSize = 64
	}
	return &USBStream{name: name, in: in, out: out, packet: packetSize, closers: closers}
}

// Name returns the USB device description.
func (s *USBStream) Name() string { return s.name }

// WriteBytes writes all of data to the bulk OUT endpoint.
func (s *USBStream) WriteBytes(data []byte) error {
	for len(data) > 0 {
		n, err := s.out.Write(data)
		if err != nil {
			return fmt.Errorf("%w: write %s: %v", ErrChannelBroken, s.name, err)
		}
		data = data[n:]
	}
	return nil
}

// ReadBytes reads up to n bytes before the deadline. Bulk transfers are read
// in whole packets; bytes beyond n are kept for the next call.
func (s *USBStream) ReadBytes(n int, deadline time.Time) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]byte, 0, n)
	for len(out) < n {
		if len(s.pending) > 0 {
			m := copy(out[len(out):n], s.pending)
			out = out[:len(out)+m]
			s.pending = s.pending[m:]
			continue
		}

		ctx := context.Background()
		cancel := context.CancelFunc(func() {})
		if !deadline.IsZero() {
			if !time.Now().Before(deadline) {
				break
			}
			ctx, cancel = context.WithDeadline(ctx, deadline)
		}
		buf := make([]byte, s.packet)
		m, err := s.in.ReadContext(ctx, buf)
		expired := ctx.Err() != nil
		cancel()

		s.pending = buf[:m]
		if err != nil {
			if expired {
				continue
			}
			return out, fmt.Errorf("%w: read %s: %v", ErrChannelBroken, s.name, err)
		}
	}
	return out, nil
}

// Close releases the interface, configuration and device.
func (s *USBStream) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		for _, c := range s.closers {
			if err := c(); err != nil {
				errs = append(errs, err)
			}
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}
