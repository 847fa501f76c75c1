package reader

import (
	"errors"

	"github.com/leandrodaf/midireader/sdk/contracts"
	"golang.org/x/sys/unix"
)

const (
	// maxSources is the number of descriptors a reader can multiplex.
	maxSources = 64
	// bufferSize is the read buffer of each source.
	bufferSize = 256
	// noByte stands for "nothing to decode" and for an empty push-back slot.
	noByte = -1
	// noFD marks a source without descriptor, as used by injection.
	noFD = -1
)

// source is one input descriptor and its decoding state.
type source struct {
	fd       int
	running  byte // status of the running-status run in progress, 0 if none
	buf      [bufferSize]byte
	bufLen   int
	bufOff   int
	pushBack int // byte to decode before the buffer, noByte if none
	current  contracts.Frame
	channel  int // 1-16 to remap channel messages, 0 to keep them
	stats    contracts.Stats
}

func newSource(fd, channel int) *source {
	s := &source{}
	s.reset()
	s.fd = fd
	if channel >= 1 && channel <= 16 {
		s.channel = channel
	}
	return s
}

// reset blanks the source; it does not touch the descriptor.
func (s *source) reset() {
	*s = source{fd: noFD, pushBack: noByte}
}

// fill tops up the buffer with a non-blocking read. Sources holding a
// push-back byte are left alone until it is decoded.
func (s *source) fill() error {
	if s.pushBack != noByte {
		return nil
	}
	if s.bufOff >= s.bufLen {
		s.bufLen = 0
		s.bufOff = 0
	}
	if s.bufLen >= bufferSize {
		return nil
	}

	n, err := unix.Read(s.fd, s.buf[s.bufLen:])
	if n > 0 {
		s.bufLen += n
	}
	if err != nil && !errors.Is(err, unix.EAGAIN) && !errors.Is(err, unix.EINTR) {
		return err
	}
	return nil
}

// nextByte returns the push-back byte, else the next buffered byte, else noByte.
func (s *source) nextByte() int {
	if s.pushBack != noByte {
		b := s.pushBack
		s.pushBack = noByte
		return b
	}
	if s.bufOff < s.bufLen {
		b := s.buf[s.bufOff]
		s.bufOff++
		return int(b)
	}
	return noByte
}

// buffered reports how many bytes are waiting to be decoded.
func (s *source) buffered() int {
	n := s.bufLen - s.bufOff
	if s.pushBack != noByte {
		n++
	}
	return n
}
