package discovery

import (
	"io"

	"github.com/google/uuid"

	"github.com/odrive-go/odrive/pkg/channel"
	"github.com/odrive-go/odrive/pkg/model"
)

// Device is a discovered unit with its compiled property tree.
type Device struct {
	// Name is the candidate name the device was found on.
	Name string

	// ConnectionID tags all log events of this device.
	ConnectionID string

	// Channel is the link shared by all properties of Root.
	Channel channel.Channel

	// Root is the compiled tree under the "odrive" namespace.
	Root *model.Object

	// Schema is the raw JSON served on endpoint 0.
	Schema []byte
}

// Close closes the channel if it can be closed.
func (d *Device) Close() error {
	return closeChannel(d.Channel)
}

func closeChannel(ch channel.Channel) error {
	if c, ok := ch.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// connectionID reuses the channel's ID when it has one.
func connectionID(ch channel.Channel) string {
	if c, ok := ch.(interface{ ConnectionID() string }); ok && c.ConnectionID() != "" {
		return c.ConnectionID()
	}
	return uuid.NewString()
}
