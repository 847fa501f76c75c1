package midi

import (
	"github.com/leandrodaf/midireader/internal/midi/reader"
	"github.com/leandrodaf/midireader/sdk/contracts"
)

// Version identifies the frame format and decoding rules of this library.
const Version = 104

// NewMIDIReader creates a new MIDI reader with the specified options.
// It applies default options and returns a reader without sources.
//
// opts ...contracts.Option: A variadic list of option functions to customize the reader configuration.
//
// Returns:
//   - contracts.MIDIReader: An instance of the MIDI reader.
//   - error: An error, if any occurred while applying the options.
func NewMIDIReader(opts ...contracts.Option) (contracts.MIDIReader, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	return reader.NewMIDIReader(&options), nil
}
