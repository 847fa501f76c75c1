package midi

import (
	"fmt"

	"github.com/leandrodaf/midireader/internal/logger"
	"github.com/leandrodaf/midireader/sdk/contracts"
)

// applyDefaultOptions sets default values for ReaderOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ReaderOptions.
//
// Returns:
//   - contracts.ReaderOptions: A structure containing the finalized reader options with defaults applied.
//   - error: An error if an option holds an invalid value.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ReaderOptions, error) {
	options := &contracts.ReaderOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel < contracts.DebugLevel || options.LogLevel > contracts.FatalLevel {
		return contracts.ReaderOptions{}, fmt.Errorf("invalid log level %d", options.LogLevel)
	}
	if options.Flags&^(contracts.FlagDebug|contracts.FlagExpand|contracts.FlagDumpHex) != 0 {
		return contracts.ReaderOptions{}, fmt.Errorf("unknown reader flags %#x", uint8(options.Flags))
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: "GO MIDI Reader"}
	}

	// Frame debugging is only visible at debug level.
	if options.Flags.Has(contracts.FlagDebug) && options.LogLevel > contracts.DebugLevel {
		options.LogLevel = contracts.DebugLevel
	}
	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
