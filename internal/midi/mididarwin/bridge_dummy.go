//go:build !darwin
// +build !darwin

package mididarwin

import (
	"errors"

	"github.com/leandrodaf/midireader/sdk/contracts"
)

// ErrUnavailable is returned on platforms without CoreMIDI.
var ErrUnavailable = errors.New("CoreMIDI is not available on this platform")

// ListDevices logs a warning and reports that CoreMIDI is unavailable.
func ListDevices(options *contracts.ReaderOptions) ([]contracts.DeviceInfo, error) {
	options.Logger.Warn("ListDevices called without CoreMIDI")
	return nil, ErrUnavailable
}

// Open logs a warning and reports that CoreMIDI is unavailable.
func Open(options *contracts.ReaderOptions, deviceID int) (contracts.DeviceSource, error) {
	options.Logger.Warn("Open called without CoreMIDI", options.Logger.Field().Int("deviceID", deviceID))
	return nil, ErrUnavailable
}
