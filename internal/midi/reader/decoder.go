package reader

import (
	"github.com/leandrodaf/midireader/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// pushByte feeds one byte, or noByte, to the frame being assembled by s.
//
// Channel-voice statuses start a running-status run: data bytes keep
// accumulating on the same frame until the next status byte arrives, which
// is pushed back and decoded on the following call. A run closes cleanly only
// on a whole number of messages.
func (r *Reader) pushByte(s *source, data int) contracts.FrameState {
	f := &s.current

	if data < 0 {
		return contracts.NoData
	}
	if data > 0xFF {
		s.running = 0
		r.countError(s)
		return contracts.IOError
	}
	b := byte(data)

	if f.Full() {
		s.running = 0
		r.countError(s)
		return contracts.Error
	}

	if s.running != 0 && b&0x80 != 0 {
		s.pushBack = int(b)
		s.running = 0
		// Program change and channel pressure carry one data byte per
		// message, so their runs close on any data count. Requiring an even
		// count for them would reject a single valid C0 05.
		if f.Len == 0 || (f.Len-1)%contracts.DataWidth(f.Data[0]) != 0 {
			r.countError(s)
			return contracts.Error
		}
		return r.finalize(s)
	}

	if f.Len == 0 {
		if contracts.IsChannelStatus(b) {
			s.running = b
		} else {
			s.running = 0
		}
	}

	f.Append(b)
	if f.Data[0]&0x80 == 0 {
		s.running = 0
		r.countError(s)
		return contracts.Error
	}

	length := expectedLength(f.Data[0])
	if length == sysExLength {
		if f.Len > 1 && b == statusEndOfExclusive {
			return r.finalize(s)
		}
	} else if s.running == 0 && f.Len == length {
		return r.finalize(s)
	}

	return contracts.Next
}

// finalize filters, transforms, dumps and queues the completed frame of s.
func (r *Reader) finalize(s *source) contracts.FrameState {
	f := &s.current
	if f.Len == 0 {
		return contracts.NoData
	}

	s.stats.Read++
	r.total.Read++

	skipped := r.skip.Match(f.Data[0])
	if r.flags.Has(contracts.FlagDebug) {
		r.logger.Debug("incoming frame",
			r.logger.Field().Int("fd", s.fd),
			r.logger.Field().String("bytes", f.String()),
			r.logger.Field().String("message", describe(f)),
			r.logger.Field().Bool("skipped", skipped),
		)
	}
	if skipped {
		r.countSkipped(s)
		return contracts.Skipped
	}

	if s.channel > 0 && contracts.IsChannelStatus(f.Data[0]) {
		f.Data[0] = f.Data[0]&0xF0 | byte(s.channel-1)
	}

	if r.flags.Has(contracts.FlagExpand) {
		f.ExpandRunning()
	}

	if r.callback != nil {
		st := r.callback(f)
		if f.Len == 0 {
			return contracts.NoData
		}
		if f.Len < 0 || f.Len > contracts.MaxFrameBytes {
			r.countError(s)
			return contracts.Error
		}
		switch st {
		case contracts.Complete:
		case contracts.Skipped:
			r.countSkipped(s)
			return contracts.Skipped
		case contracts.NoData, contracts.Next, contracts.Error, contracts.IOError:
			r.countError(s)
			return st
		default:
			r.countError(s)
			return contracts.Error
		}
	}

	r.dumpFrame(f)

	if !r.queue.push(f) {
		r.total.Missed++
		r.logger.Warn("frame queue full; dropping frame",
			r.logger.Field().Int("fd", s.fd),
			r.logger.Field().Uint64("missed", r.total.Missed),
		)
	}

	return contracts.Complete
}

// dumpFrame writes f to the dump sink, if any.
func (r *Reader) dumpFrame(f *contracts.Frame) {
	if r.dump == nil {
		return
	}
	var err error
	if r.flags.Has(contracts.FlagDumpHex) {
		err = f.Dump(r.dump)
	} else {
		_, err = r.dump.Write(f.Bytes())
	}
	if err != nil {
		r.logger.Debug("failed to dump frame", r.logger.Field().Error("error", err))
	}
}

// describe decodes a single message for debugging; runs are not decoded.
func describe(f *contracts.Frame) string {
	if length := expectedLength(f.Data[0]); length != sysExLength && f.Len != length {
		return "running status run"
	}
	return midi.Message(f.Bytes()).String()
}

func (r *Reader) countError(s *source) {
	s.stats.Errors++
	r.total.Errors++
}

func (r *Reader) countSkipped(s *source) {
	s.stats.Skipped++
	r.total.Skipped++
}
