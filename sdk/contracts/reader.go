package contracts

import "io"

// MIDIReader reassembles MIDI frames from any number of non-blocking byte
// sources. It is not safe for concurrent use; one goroutine must drive it.
type MIDIReader interface {
	AddSource(fd int, channel int) error          // Registers an open descriptor; channel 1-16 remaps channel messages.
	AddSourcePath(path string, channel int) error // Opens path read-only and non-blocking, then registers it.
	RemoveSource(fd int) error                    // Closes fd and unregisters it.
	SetDumpFD(fd int) error                       // Dumps queued frames to fd.
	SetDumpFile(path string, truncate bool) error // Dumps queued frames to a file created with mode 0600.
	SetDumpWriter(w io.Writer)                    // Dumps queued frames to w; nil disables dumping.
	SetCallback(cb FrameCallback)                 // Replaces the per-frame hook; nil removes it.
	Poll() (int, error)                           // Counts sources with pending input, -1 when there are none.
	Update() bool                                 // Reads and decodes one round; reports whether frames are queued.
	Next() (Frame, bool)                          // Updates, then pops the oldest queued frame.
	Inject(f *Frame) int                          // Decodes f as if read from a source; returns bytes consumed.
	InjectBytes(b ...byte) int                    // Same as Inject for a literal list of bytes.
	ClearQueue()                                  // Drops every queued frame.
	Queued() int                                  // Counts frames waiting to be consumed.
	Stats(n int) (Stats, error)                   // Statistics of source n, or TotalStats.
	ResetStats(n int) error                       // Zeroes statistics of source n, or TotalStats.
	Close() error                                 // Closes every source and the dump sink.
}
