package contracts

import "errors"

// Errors returned by MIDIReader setup operations.
var (
	ErrInvalidHandle  = errors.New("invalid file descriptor")
	ErrTooManySources = errors.New("too many MIDI sources")
	ErrSourceNotFound = errors.New("MIDI source not found")
	ErrInvalidSource  = errors.New("invalid source index")
	ErrNoMIDIDevices  = errors.New("no MIDI devices found")
	ErrInvalidDevice  = errors.New("invalid MIDI device")
)
