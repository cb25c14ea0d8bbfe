// Package discovery finds devices on USB and serial transports and compiles
// their schema into a property tree.
//
// # Sources
//
// A Source enumerates Candidates: named, not yet opened channels. USBSource
// matches vendor/product pairs through libusb; SerialSource matches serial
// device names against a platform pattern:
//
//	darwin: ^tty\.usbmodem
//	other:  ^ttyACM[0-9]+$
//
// # Passes
//
// Finder.FindAll runs one lazy pass over all sources in order (USB first,
// then serial by default). Each candidate is opened, asked for endpoint 0
// within the probe timeout, checked for UTF-8, parsed as a schema and
// compiled under the "odrive" namespace. A candidate failing any step is
// closed and skipped; the pass itself never fails.
//
// Finder.FindAny repeats passes until one yields a device, waiting the poll
// interval between empty passes. It blocks until a device appears or the
// context ends.
package discovery
