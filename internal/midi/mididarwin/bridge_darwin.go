//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/midireader/sdk/contracts"
	"github.com/youpy/go-coremidi"
	"golang.org/x/sys/unix"
)

// Error definitions for CoreMIDI bridge issues.
var (
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// Bridge forwards the packets of one CoreMIDI source into a pipe. The read
// end of the pipe is a plain descriptor that a reader can poll.
type Bridge struct {
	logger    contracts.Logger
	info      contracts.DeviceInfo
	inputPort coremidi.InputPort
	portConn  internalPortConnection
	readFD    int
	writeFD   int
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

// ListDevices retrieves the CoreMIDI sources available to open.
func ListDevices(options *contracts.ReaderOptions) ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		options.Logger.Warn(contracts.ErrNoMIDIDevices.Error())
		return nil, contracts.ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		devices[i] = sourceInfo(source)
	}
	return devices, nil
}

// Open connects to the CoreMIDI source deviceID and starts forwarding its
// bytes. The descriptor returned by FD belongs to whoever registers it.
func Open(options *contracts.ReaderOptions, deviceID int) (contracts.DeviceSource, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		options.Logger.Error(contracts.ErrInvalidDevice.Error(), options.Logger.Field().Int("deviceID", deviceID))
		return nil, fmt.Errorf("%w: %d", contracts.ErrInvalidDevice, deviceID)
	}
	source := sources[deviceID]

	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, fmt.Errorf("error creating CoreMIDI client: %w", err)
	}

	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, fmt.Errorf("error creating bridge pipe: %w", err)
	}
	if err := unix.SetNonblock(p[1], true); err != nil {
		_ = unix.Close(p[0])
		_ = unix.Close(p[1])
		return nil, fmt.Errorf("error creating bridge pipe: %w", err)
	}

	b := &Bridge{
		logger:  options.Logger,
		info:    sourceInfo(source),
		readFD:  p[0],
		writeFD: p[1],
	}

	b.inputPort, err = coremidi.NewInputPort(client, "Input Port", b.handleMIDIMessage)
	if err != nil {
		b.closePipe()
		return nil, fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}
	b.portConn, err = b.inputPort.Connect(source)
	if err != nil {
		b.closePipe()
		return nil, fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	b.logger.Info("MIDI device bridged",
		b.logger.Field().Int("deviceID", deviceID),
		b.logger.Field().String("deviceName", b.info.Name),
		b.logger.Field().Int("fd", b.readFD))
	return b, nil
}

// handleMIDIMessage writes the raw packet bytes into the pipe. Packets that
// do not fit are dropped; the reader never blocks CoreMIDI.
func (b *Bridge) handleMIDIMessage(source coremidi.Source, packet coremidi.Packet) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || len(packet.Data) == 0 {
		return
	}
	if _, err := unix.Write(b.writeFD, packet.Data); err != nil {
		b.logger.Warn("Bridge pipe full; dropping MIDI packet",
			b.logger.Field().Int("bytes", len(packet.Data)),
			b.logger.Field().Error("error", err))
	}
}

// FD returns the read end of the bridge pipe.
func (b *Bridge) FD() int {
	return b.readFD
}

// Info describes the bridged device.
func (b *Bridge) Info() contracts.DeviceInfo {
	return b.info
}

// Close disconnects from the device and closes the write end of the pipe,
// so the reader sees end of stream. The read end is left to its owner.
func (b *Bridge) Close() error {
	var err error
	b.closeOnce.Do(func() {
		if b.portConn != nil {
			b.portConn.Disconnect()
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.closed = true
		err = unix.Close(b.writeFD)
		b.logger.Info("MIDI device bridge closed", b.logger.Field().String("deviceName", b.info.Name))
	})
	return err
}

func (b *Bridge) closePipe() {
	_ = unix.Close(b.readFD)
	_ = unix.Close(b.writeFD)
}

func sourceInfo(source coremidi.Source) contracts.DeviceInfo {
	entity := source.Entity()
	return contracts.DeviceInfo{
		Name:         source.Name(),
		EntityName:   entity.Name(),
		Manufacturer: entity.Manufacturer(),
	}
}
