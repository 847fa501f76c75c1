package contracts

// DeviceInfo contains information about a MIDI device.
type DeviceInfo struct {
	Name         string // Device name.
	Manufacturer string // Device manufacturer.
	EntityName   string // Name of the entity to which the device belongs.
}

// DeviceSource is a platform MIDI input exposed as a readable file descriptor.
// The descriptor is handed to MIDIReader.AddSource, which takes ownership of it;
// Close releases the platform side only.
type DeviceSource interface {
	FD() int
	Info() DeviceInfo
	Close() error
}
