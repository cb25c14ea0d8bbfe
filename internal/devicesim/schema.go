package devicesim

import (
	"strconv"

	"github.com/odrive-go/odrive/pkg/schema"
)

// DefaultSchema returns a two-axis schema resembling ODrive firmware.
func DefaultSchema() []schema.Entry {
	return []schema.Entry{
		{Name: "vbus_voltage", Type: "float", ID: "1", Mode: "r"},
		{Name: "serial_number", Type: "int", ID: "2", Mode: "r"},
		{Name: "hw_version", Type: "uint16", ID: "3", Mode: "r"},
		{Name: "brake_resistor_armed", Type: "bool", ID: "4", Mode: "r"},
		axis("axis0", 10),
		axis("axis1", 30),
	}
}

func axis(name string, base int) schema.Entry {
	id := func(off int) schema.ID { return schema.ID(strconv.Itoa(base + off)) }
	return schema.Entry{Name: name, Type: "tree", Content: []schema.Entry{
		{Name: "error", Type: "int", ID: id(0)},
		{Name: "current_state", Type: "int", ID: id(1), Mode: "r"},
		{Name: "requested_state", Type: "int", ID: id(2), Mode: "w"},
		{Name: "config", Type: "tree", Content: []schema.Entry{
			{Name: "startup_closed_loop_control", Type: "bool", ID: id(3)},
			{Name: "counts_per_rad", Type: "float", ID: id(4)},
		}},
		{Name: "controller", Type: "tree", Content: []schema.Entry{
			{Name: "pos_setpoint", Type: "float", ID: id(5)},
			{Name: "vel_setpoint", Type: "float", ID: id(6)},
			{Name: "config", Type: "tree", Content: []schema.Entry{
				{Name: "pos_gain", Type: "float", ID: id(7)},
				{Name: "vel_gain", Type: "float", ID: id(8)},
				{Name: "vel_limit", Type: "float", ID: id(9)},
			}},
		}},
		{Name: "motor", Type: "tree", Content: []schema.Entry{
			{Name: "current_meas", Type: "float", ID: id(10), Mode: "r"},
			{Name: "config", Type: "tree", Content: []schema.Entry{
				{Name: "pole_pairs", Type: "uint16", ID: id(11)},
				{Name: "current_lim", Type: "float", ID: id(12)},
			}},
		}},
	}}
}
