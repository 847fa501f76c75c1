package reader

import (
	"testing"

	"github.com/leandrodaf/midireader/sdk/contracts"
)

func TestInjectRoundTrip(t *testing.T) {
	r := newTestReader(t)
	f := frameOf(t, 0x90, 0x3C, 0x40)

	if n := r.Inject(&f); n != 3 {
		t.Fatalf("Expected 3 bytes consumed, got %d", n)
	}
	got, ok := r.Next()
	if !ok {
		t.Fatal("Expected the injected frame")
	}
	assertFrames(t, []contracts.Frame{got}, []byte{0x90, 0x3C, 0x40})

	// The closing Active Sensing byte is not queued.
	if _, ok := r.Next(); ok {
		t.Error("Expected a single frame")
	}
}

func TestInjectSeveralMessages(t *testing.T) {
	r := newTestReader(t)

	n := r.InjectBytes(0x90, 0x3C, 0x40, 0x3E, 0x40, 0x80, 0x3C, 0x00, 0xF8)
	if n != 9 {
		t.Fatalf("Expected 9 bytes consumed, got %d", n)
	}
	assertFrames(t, drain(r),
		[]byte{0x90, 0x3C, 0x40, 0x3E, 0x40},
		[]byte{0x80, 0x3C, 0x00},
		[]byte{0xF8},
	)
}

func TestInjectStopsOnError(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		want  int
	}{
		{"data byte first", []byte{0x3C, 0x40}, 0},
		{"odd running status", []byte{0x90, 0x3C, 0xF8}, 2},
		{"sysex cut short", []byte{0xF0, 0x01, 0x02}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReader(t)
			if n := r.InjectBytes(tt.bytes...); n != tt.want {
				t.Errorf("Expected %d bytes consumed, got %d", tt.want, n)
			}
			if r.Queued() != 0 {
				t.Errorf("Expected nothing queued, got %d frames", r.Queued())
			}
		})
	}
}

func TestInjectSkipped(t *testing.T) {
	r := newTestReader(t, contracts.WithSkipFilter(contracts.SkipFilter{
		Status: []contracts.MIDICommand{contracts.Start},
	}))

	if n := r.InjectBytes(0xFA); n != 0 {
		t.Errorf("Expected 0 bytes consumed for a skipped frame, got %d", n)
	}
	if r.total.Skipped != 1 {
		t.Errorf("Expected 1 skipped, got %d", r.total.Skipped)
	}
}

func TestInjectInvalidInput(t *testing.T) {
	r := newTestReader(t)

	if n := r.Inject(nil); n != 0 {
		t.Errorf("Inject(nil): expected 0, got %d", n)
	}
	if n := r.Inject(&contracts.Frame{}); n != 0 {
		t.Errorf("Inject(empty): expected 0, got %d", n)
	}
	if n := r.InjectBytes(make([]byte, contracts.MaxFrameBytes+1)...); n != 0 {
		t.Errorf("InjectBytes(overlong): expected 0, got %d", n)
	}
	for _, n := range []int{-1, contracts.MaxFrameBytes + 1, 200} {
		f := contracts.Frame{Len: n}
		f.Data[0] = 0xF8
		if got := r.Inject(&f); got != 0 {
			t.Errorf("Inject(Len=%d): expected 0, got %d", n, got)
		}
	}
	if r.Queued() != 0 || r.total.Read != 0 {
		t.Errorf("Expected nothing decoded, got %d queued and %d read", r.Queued(), r.total.Read)
	}
}

func TestInjectDoesNotTouchSources(t *testing.T) {
	r := newTestReader(t)
	rfd, _ := newPipe(t)
	if err := r.AddSource(rfd, 5); err != nil {
		t.Fatalf("AddSource failed: %v", err)
	}

	r.InjectBytes(0x90, 0x3C, 0x40)
	assertFrames(t, drain(r), []byte{0x90, 0x3C, 0x40})

	stats, _ := r.Stats(0)
	if stats.Read != 0 {
		t.Errorf("Expected source stats untouched, got %+v", stats)
	}
	if r.total.Read != 1 {
		t.Errorf("Expected 1 read in totals, got %d", r.total.Read)
	}
}
