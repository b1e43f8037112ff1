//go:build !darwin || !cgo

package macos

import "errors"

// HIDSensors needs macOS and cgo.
func HIDSensors() ([]Sensor, error) {
	return nil, errors.New("HID temperature sensors require macOS built with cgo")
}
