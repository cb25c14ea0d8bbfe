// Package devicesim simulates a device speaking the packet and line
// protocols. It serves a schema on endpoint 0 and a value store behind the
// property ids, and is used by tests and by odrivetool -simulate.
package devicesim
