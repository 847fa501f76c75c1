package reader

import (
	"testing"

	"github.com/leandrodaf/midireader/internal/logger"
	"github.com/leandrodaf/midireader/sdk/contracts"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sys/unix"
)

func newTestReader(t *testing.T, opts ...contracts.Option) *Reader {
	t.Helper()
	options := &contracts.ReaderOptions{}
	for _, opt := range opts {
		opt(options)
	}
	options.Logger = logger.NewZapLoggerFrom(zaptest.NewLogger(t))
	r := NewMIDIReader(options)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// feed pushes bytes through the decoder the way Update does and returns the
// state produced by each byte, replaying pushed-back status bytes.
func feed(r *Reader, s *source, bytes ...byte) []contracts.FrameState {
	var states []contracts.FrameState
	for _, b := range bytes {
		for data := int(b); data != noByte; data = s.nextByte() {
			st := r.pushByte(s, data)
			states = append(states, st)
			switch st {
			case contracts.Complete, contracts.Error, contracts.IOError, contracts.Skipped:
				s.current.Reset()
			case contracts.NoData, contracts.Next:
			}
			if s.pushBack == noByte {
				break
			}
		}
	}
	return states
}

func drain(r *Reader) []contracts.Frame {
	var frames []contracts.Frame
	for {
		f, ok := r.queue.pop()
		if !ok {
			return frames
		}
		frames = append(frames, f)
	}
}

// newPipe returns a pipe whose read end is meant to be given to a reader.
func newPipe(t *testing.T) (readFD, writeFD int) {
	t.Helper()
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	t.Cleanup(func() { _ = unix.Close(p[1]) })
	return p[0], p[1]
}

func write(t *testing.T, fd int, b ...byte) {
	t.Helper()
	if _, err := unix.Write(fd, b); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
}

func frameOf(t *testing.T, b ...byte) contracts.Frame {
	t.Helper()
	f, ok := contracts.NewFrame(b...)
	if !ok {
		t.Fatalf("frame too long: %d bytes", len(b))
	}
	return f
}

func assertFrames(t *testing.T, got []contracts.Frame, want ...[]byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d frames, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if string(got[i].Bytes()) != string(want[i]) {
			t.Errorf("Frame %d: expected % x, got % x", i, want[i], got[i].Bytes())
		}
	}
}
