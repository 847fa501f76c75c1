package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midireader/internal/midi/mididarwin"
	"github.com/leandrodaf/midireader/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no device bridge.
var ErrUnsupportedOS = errors.New("unsupported operating system")

type deviceBridge struct {
	list func(*contracts.ReaderOptions) ([]contracts.DeviceInfo, error)
	open func(*contracts.ReaderOptions, int) (contracts.DeviceSource, error)
}

// deviceBridges maps OS names to the bridge exposing their MIDI devices as descriptors.
var deviceBridges = map[string]deviceBridge{
	"darwin": {list: mididarwin.ListDevices, open: mididarwin.Open}, // macOS (CoreMIDI).
}

// ListDevices lists the MIDI input devices of the platform.
// On other systems, serial ports and ALSA raw MIDI nodes are added by path
// with MIDIReader.AddSourcePath instead.
func ListDevices(opts ...contracts.Option) ([]contracts.DeviceInfo, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	bridge, ok := deviceBridges[runtime.GOOS]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
	}
	return bridge.list(&options)
}

// OpenDevice bridges the platform MIDI device deviceID to a descriptor that
// can be passed to MIDIReader.AddSource.
//
// Returns:
//   - contracts.DeviceSource: The bridged device; close it once the reader no longer uses it.
//   - error: ErrUnsupportedOS, or an error from the platform bridge.
func OpenDevice(deviceID int, opts ...contracts.Option) (contracts.DeviceSource, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	bridge, ok := deviceBridges[runtime.GOOS]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
	}
	return bridge.open(&options, deviceID)
}
