package contracts

import "io"

// MIDICommand is a MIDI status byte used for filtering.
type MIDICommand byte

const (
	NoteOff         MIDICommand = 0x80
	NoteOn          MIDICommand = 0x90
	PolyPressure    MIDICommand = 0xA0
	ControlChange   MIDICommand = 0xB0
	ProgramChange   MIDICommand = 0xC0
	ChannelPressure MIDICommand = 0xD0
	PitchBend       MIDICommand = 0xE0
	SysEx           MIDICommand = 0xF0
	TimingClock     MIDICommand = 0xF8
	Start           MIDICommand = 0xFA
	Continue        MIDICommand = 0xFB
	Stop            MIDICommand = 0xFC
	ActiveSensing   MIDICommand = 0xFE
	SystemReset     MIDICommand = 0xFF
)

// Flags tune how the reader treats frames.
type Flags uint8

const (
	// FlagDebug logs every incoming frame at debug level.
	FlagDebug Flags = 1 << iota
	// FlagExpand expands running-status runs into separate messages.
	FlagExpand
	// FlagDumpHex writes the dump as hex text instead of raw bytes.
	FlagDumpHex
)

// Has reports whether all bits of o are set in f.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

// SkipFilter lists status bytes whose frames are discarded after decoding.
// Entries are compared with the whole first byte, channel included.
type SkipFilter struct {
	Status []MIDICommand
}

// Match reports whether status is listed.
func (s *SkipFilter) Match(status byte) bool {
	if s == nil {
		return false
	}
	for _, c := range s.Status {
		if byte(c) == status {
			return true
		}
	}
	return false
}

// FrameCallback is invoked synchronously on every decoded frame before it is
// dumped and queued. It may modify the frame or empty it (Len = 0) to drop it
// silently. Returning Skipped or any state other than Complete keeps the frame
// out of the dump and the queue.
type FrameCallback func(f *Frame) FrameState

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ReaderOptions defines the configuration options for the MIDI reader.
type ReaderOptions struct {
	Logger         Logger          // Logger for lifecycle events and frame debugging.
	LogLevel       LogLevel        // Level of logging to use.
	Flags          Flags           // Decoder flags.
	SkipFilter     *SkipFilter     // Optional status bytes to discard.
	Callback       FrameCallback   // Optional per-frame hook.
	DumpWriter     io.Writer       // Optional dump sink.
	CoreMIDIConfig *CoreMIDIConfig // Configuration for the darwin device bridge.
}

// Option is a function that modifies ReaderOptions.
type Option func(*ReaderOptions)

// WithLogger sets the logger for the MIDI reader.
func WithLogger(l Logger) Option {
	return func(opts *ReaderOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI reader.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ReaderOptions) {
		opts.LogLevel = level
	}
}

// WithFlags sets the decoder flags.
func WithFlags(flags Flags) Option {
	return func(opts *ReaderOptions) {
		opts.Flags = flags
	}
}

// WithSkipFilter discards frames whose status byte is listed in filter.
func WithSkipFilter(filter SkipFilter) Option {
	return func(opts *ReaderOptions) {
		opts.SkipFilter = &filter
	}
}

// WithCallback registers a per-frame hook.
func WithCallback(cb FrameCallback) Option {
	return func(opts *ReaderOptions) {
		opts.Callback = cb
	}
}

// WithDumpWriter copies every queued frame to w.
func WithDumpWriter(w io.Writer) Option {
	return func(opts *ReaderOptions) {
		opts.DumpWriter = w
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration used by OpenDevice.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ReaderOptions) {
		opts.CoreMIDIConfig = &config
	}
}
