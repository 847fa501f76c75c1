package contracts

import (
	"fmt"
	"io"
	"strings"
)

// MaxFrameBytes is the capacity of a single Frame.
const MaxFrameBytes = 128

// FrameState is the outcome of feeding one byte to the decoder.
type FrameState int

const (
	// NoData means no byte was available, or the callback emptied the frame.
	NoData FrameState = iota
	// Next means the frame is in progress and more bytes are expected.
	Next
	// Complete means a frame was finalized and queued.
	Complete
	// Error means the frame was malformed and discarded.
	Error
	// IOError means the byte source yielded an out-of-range value.
	IOError
	// Skipped means the frame was excluded by the skip filter or the callback.
	Skipped
)

// String returns the lower-case name of the state.
func (s FrameState) String() string {
	switch s {
	case NoData:
		return "no-data"
	case Next:
		return "next"
	case Complete:
		return "complete"
	case Error:
		return "error"
	case IOError:
		return "io-error"
	case Skipped:
		return "skipped"
	}
	return fmt.Sprintf("FrameState(%d)", int(s))
}

// Frame holds one MIDI message, or the accumulation of a running-status run.
// Frames are values: the reader copies them into its queue and out again.
type Frame struct {
	Len  int
	Data [MaxFrameBytes]byte
}

// NewFrame builds a frame from b. It returns false if b does not fit.
func NewFrame(b ...byte) (Frame, bool) {
	var f Frame
	if len(b) > MaxFrameBytes {
		return f, false
	}
	f.Len = copy(f.Data[:], b)
	return f, true
}

// Reset empties the frame.
func (f *Frame) Reset() {
	f.Len = 0
	f.Data[0] = 0
}

// Bytes returns the valid portion of the frame. The slice aliases the frame.
func (f *Frame) Bytes() []byte {
	return f.Data[:f.Len]
}

// Full reports whether the frame reached MaxFrameBytes.
func (f *Frame) Full() bool {
	return f.Len >= MaxFrameBytes
}

// Append adds b to the frame, reporting false if the frame is full.
func (f *Frame) Append(b byte) bool {
	if f.Full() {
		return false
	}
	f.Data[f.Len] = b
	f.Len++
	return true
}

// Status returns the first byte of the frame, or 0 if it is empty.
func (f *Frame) Status() byte {
	if f.Len == 0 {
		return 0
	}
	return f.Data[0]
}

// Dump writes the frame to w as "NN " groups of lower-case hex digits.
func (f *Frame) Dump(w io.Writer) error {
	_, err := io.WriteString(w, f.String())
	return err
}

// String returns the hex dump of the frame.
func (f Frame) String() string {
	var sb strings.Builder
	sb.Grow(f.Len * 3)
	for _, b := range f.Data[:f.Len] {
		fmt.Fprintf(&sb, "%.2x ", b)
	}
	return sb.String()
}

// IsChannelStatus reports whether b is a channel-voice status byte (0x80-0xEF).
func IsChannelStatus(b byte) bool {
	return b >= 0x80 && b <= 0xEF
}

// DataWidth returns how many data bytes follow a channel-voice status in
// one message: 1 for program change and channel pressure, 2 otherwise.
func DataWidth(status byte) int {
	if status >= 0xC0 && status <= 0xDF {
		return 1
	}
	return 2
}

// ExpandRunning rewrites a running-status accumulation (a status followed by
// N groups of data bytes) into N independent messages sharing the status.
// Frames that are not channel-voice, or hold at most one message, are left
// untouched and reported as expanded. It returns false, leaving the frame
// unchanged, on a trailing partial group or when the result would not fit.
func (f *Frame) ExpandRunning() bool {
	if f.Len == 0 || !IsChannelStatus(f.Data[0]) {
		return true
	}
	width := DataWidth(f.Data[0])
	if f.Len <= width+1 {
		return true
	}
	if (f.Len-1)%width != 0 {
		return false
	}
	if f.Len+(f.Len-1)/width > MaxFrameBytes {
		return false
	}

	src := *f
	f.Reset()
	for i := 1; i < src.Len; i += width {
		f.Append(src.Data[0])
		for j := 0; j < width; j++ {
			f.Append(src.Data[i+j])
		}
	}
	return true
}
