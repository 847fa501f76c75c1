package reader

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/leandrodaf/midireader/internal/logger"
	"github.com/leandrodaf/midireader/sdk/contracts"
	"go.uber.org/multierr"
	"golang.org/x/sys/unix"
)

// Reader multiplexes MIDI byte streams from file descriptors and queues the
// frames it decodes. It is driven by a single goroutine calling Update or
// Next; nothing in it blocks.
type Reader struct {
	logger   contracts.Logger
	flags    contracts.Flags
	sources  []*source
	dump     io.Writer
	dumpFile io.Closer // dump sink opened by the reader, closed with it
	queue    frameQueue
	skip     *contracts.SkipFilter
	callback contracts.FrameCallback
	total    contracts.Stats
	start    int // source decoded first on the next update, rotated for fairness
}

var _ contracts.MIDIReader = (*Reader)(nil)

// NewMIDIReader creates a reader without sources from options.
func NewMIDIReader(options *contracts.ReaderOptions) *Reader {
	r := &Reader{
		logger:   options.Logger,
		flags:    options.Flags,
		dump:     options.DumpWriter,
		skip:     options.SkipFilter,
		callback: options.Callback,
		sources:  make([]*source, 0, maxSources),
		start:    -1,
	}
	if r.logger == nil {
		r.logger = logger.NewNopLogger()
	}
	return r
}

// AddSource registers fd, switching it to non-blocking mode. Adding a
// descriptor twice is a no-op. A channel in 1-16 rewrites the channel of
// every channel-voice message read from fd; other values keep it.
func (r *Reader) AddSource(fd int, channel int) error {
	if fd < 0 {
		return fmt.Errorf("%w: %d", contracts.ErrInvalidHandle, fd)
	}
	if r.indexOf(fd) >= 0 {
		return nil
	}
	if len(r.sources) >= maxSources {
		return fmt.Errorf("%w: limit is %d", contracts.ErrTooManySources, maxSources)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("failed to set fd %d non-blocking: %w", fd, err)
	}

	s := newSource(fd, channel)
	r.sources = append(r.sources, s)
	r.logger.Info("MIDI source added",
		r.logger.Field().Int("fd", fd),
		r.logger.Field().Int("channel", s.channel),
		r.logger.Field().Int("sources", len(r.sources)),
	)
	return nil
}

// AddSourcePath opens path read-only and registers it. The descriptor is
// closed again if it cannot be registered.
func (r *Reader) AddSourcePath(path string, channel int) error {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("failed to open MIDI source %s: %w", path, err)
	}
	if err := r.AddSource(fd, channel); err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("failed to add MIDI source %s: %w", path, err)
	}
	return nil
}

// RemoveSource closes fd and drops its source, keeping the order of the
// others. Frames already queued from it stay queued.
func (r *Reader) RemoveSource(fd int) error {
	i := r.indexOf(fd)
	if fd < 0 || i < 0 {
		return fmt.Errorf("%w: %d", contracts.ErrSourceNotFound, fd)
	}

	if err := unix.Close(fd); err != nil {
		r.logger.Warn("failed to close MIDI source",
			r.logger.Field().Int("fd", fd),
			r.logger.Field().Error("error", err),
		)
	}
	r.sources[i].reset()
	r.sources = slices.Delete(r.sources, i, i+1)
	r.logger.Info("MIDI source removed",
		r.logger.Field().Int("fd", fd),
		r.logger.Field().Int("sources", len(r.sources)),
	)
	return nil
}

// SetDumpFD dumps every queued frame to fd, which the reader then owns.
func (r *Reader) SetDumpFD(fd int) error {
	if fd < 0 {
		return fmt.Errorf("%w: %d", contracts.ErrInvalidHandle, fd)
	}
	f := os.NewFile(uintptr(fd), fmt.Sprintf("midi-dump-%d", fd))
	r.replaceDump(f, f)
	return nil
}

// SetDumpFile dumps every queued frame to path, created with mode 0600 and
// truncated if requested.
func (r *Reader) SetDumpFile(path string, truncate bool) error {
	flags := os.O_CREATE | os.O_WRONLY
	if truncate {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open dump file %s: %w", path, err)
	}
	r.replaceDump(f, f)
	return nil
}

// SetDumpWriter dumps every queued frame to w. The reader never closes w.
func (r *Reader) SetDumpWriter(w io.Writer) {
	r.replaceDump(w, nil)
}

func (r *Reader) replaceDump(w io.Writer, owned io.Closer) {
	if r.dumpFile != nil {
		if err := r.dumpFile.Close(); err != nil {
			r.logger.Warn("failed to close previous dump sink", r.logger.Field().Error("error", err))
		}
	}
	r.dump = w
	r.dumpFile = owned
}

// SetCallback replaces the per-frame hook. A nil callback removes it.
func (r *Reader) SetCallback(cb contracts.FrameCallback) {
	r.callback = cb
}

// ClearQueue drops every frame waiting to be consumed.
func (r *Reader) ClearQueue() {
	r.queue.clear()
}

// Queued returns the number of frames waiting to be consumed.
func (r *Reader) Queued() int {
	return r.queue.size()
}

// Stats returns the statistics of the n-th source, or the totals for
// contracts.TotalStats.
func (r *Reader) Stats(n int) (contracts.Stats, error) {
	if n < contracts.TotalStats || n >= len(r.sources) {
		return contracts.Stats{}, fmt.Errorf("%w: %d", contracts.ErrInvalidSource, n)
	}
	if n == contracts.TotalStats {
		return r.total, nil
	}
	return r.sources[n].stats, nil
}

// ResetStats zeroes the statistics selected as in Stats.
func (r *Reader) ResetStats(n int) error {
	if n < contracts.TotalStats || n >= len(r.sources) {
		return fmt.Errorf("%w: %d", contracts.ErrInvalidSource, n)
	}
	if n == contracts.TotalStats {
		r.total = contracts.Stats{}
	} else {
		r.sources[n].stats = contracts.Stats{}
	}
	return nil
}

// Close closes every source and the dump sink. Queued frames can still be
// drained with Next afterwards.
func (r *Reader) Close() error {
	var err error
	for _, s := range r.sources {
		if cerr := unix.Close(s.fd); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close fd %d: %w", s.fd, cerr))
		}
		s.reset()
	}
	r.sources = r.sources[:0]

	if r.dumpFile != nil {
		if cerr := r.dumpFile.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close dump sink: %w", cerr))
		}
	}
	r.dump = nil
	r.dumpFile = nil

	r.logger.Info("MIDI reader closed", r.logger.Field().Int("queued", r.queue.size()))
	return err
}

func (r *Reader) indexOf(fd int) int {
	return slices.IndexFunc(r.sources, func(s *source) bool { return s.fd == fd })
}
