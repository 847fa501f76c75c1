package reader

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/midireader/sdk/contracts"
	"golang.org/x/sys/unix"
)

// Poll checks, without waiting, how many sources have input pending. It
// returns -1 when no source is registered. No byte is consumed.
func (r *Reader) Poll() (int, error) {
	if len(r.sources) == 0 {
		return -1, nil
	}

	fds := make([]unix.PollFd, len(r.sources))
	for i, s := range r.sources {
		fds[i] = unix.PollFd{Fd: int32(s.fd), Events: unix.POLLIN | unix.POLLPRI}
	}
	n, err := unix.Poll(fds, 0)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to poll MIDI sources: %w", err)
	}
	return n, nil
}

// Update reads whatever each source has available, then decodes at most one
// byte per source. The source decoded first rotates on every call so a busy
// source cannot starve the others. It reports whether frames are queued.
func (r *Reader) Update() bool {
	r.fill()

	n := len(r.sources)
	if n == 0 {
		return r.queue.pending()
	}

	r.start++
	if r.start >= n {
		r.start = 0
	}
	for i := 0; i < n; i++ {
		s := r.sources[(r.start+i)%n]
		switch r.pushByte(s, s.nextByte()) {
		case contracts.Complete, contracts.Error, contracts.IOError, contracts.Skipped:
			s.current.Reset()
		case contracts.NoData, contracts.Next:
		}
	}

	return r.queue.pending()
}

// Next updates the reader and pops the oldest queued frame.
func (r *Reader) Next() (contracts.Frame, bool) {
	if !r.Update() {
		return contracts.Frame{}, false
	}
	return r.queue.pop()
}

func (r *Reader) fill() {
	for _, s := range r.sources {
		if err := s.fill(); err != nil {
			r.logger.Debug("failed to read MIDI source",
				r.logger.Field().Int("fd", s.fd),
				r.logger.Field().Error("error", err),
			)
		}
	}
}
