package reader

import "github.com/leandrodaf/midireader/sdk/contracts"

// Inject decodes f as if its bytes had been read from a source without
// channel remapping. The resulting frames go through the skip filter,
// callback, dump and queue like any other. It returns the number of bytes
// consumed, which is short of f.Len when decoding fails, and 0 when
// f.Len is outside 0..contracts.MaxFrameBytes.
//
// A running-status run still open after the last byte is closed with an
// Active Sensing byte, which is itself discarded.
func (r *Reader) Inject(f *contracts.Frame) int {
	if f == nil || f.Len <= 0 || f.Len > contracts.MaxFrameBytes {
		return 0
	}

	src := newSource(noFD, 0)
	consumed := 0
	for consumed < f.Len {
		src.pushBack = noByte
		st := r.pushByte(src, int(f.Data[consumed]))
		switch st {
		case contracts.Complete:
			src.current.Reset()
		case contracts.Next:
		case contracts.NoData, contracts.Error, contracts.IOError, contracts.Skipped:
			return consumed
		}
		// A status byte that closed a run is pushed back: decode it again.
		if src.pushBack == noByte {
			consumed++
		}
	}

	if src.running != 0 {
		r.pushByte(src, statusActiveSensing)
	}
	return consumed
}

// InjectBytes is Inject for a literal list of bytes. It returns 0 when b is
// empty or longer than a frame.
func (r *Reader) InjectBytes(b ...byte) int {
	f, ok := contracts.NewFrame(b...)
	if !ok || f.Len == 0 {
		return 0
	}
	return r.Inject(&f)
}
