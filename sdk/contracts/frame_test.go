package contracts

import (
	"bytes"
	"testing"
)

func TestExpandRunningNoop(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
	}{
		{"empty", nil},
		{"note on", []byte{0x90, 0x3C, 0x40}},
		{"incomplete note on", []byte{0x90, 0x3C}},
		{"status only", []byte{0x90}},
		{"program change", []byte{0xC3, 0x05}},
		{"sysex", []byte{0xF0, 0x01, 0x02, 0x03, 0x04, 0xF7}},
		{"real-time", []byte{0xF8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := NewFrame(tt.bytes...)
			if !f.ExpandRunning() {
				t.Fatal("Expected success")
			}
			if !bytes.Equal(f.Bytes(), tt.bytes) && !(len(tt.bytes) == 0 && f.Len == 0) {
				t.Errorf("Expected % x unchanged, got % x", tt.bytes, f.Bytes())
			}
			// Expanding twice changes nothing either.
			before := f
			f.ExpandRunning()
			if f != before {
				t.Errorf("Second expansion changed % x into % x", before.Bytes(), f.Bytes())
			}
		})
	}
}

func TestExpandRunning(t *testing.T) {
	f, _ := NewFrame(0xE1, 0x00, 0x40, 0x10, 0x40)
	if !f.ExpandRunning() {
		t.Fatal("ExpandRunning failed")
	}
	want := []byte{0xE1, 0x00, 0x40, 0xE1, 0x10, 0x40}
	if !bytes.Equal(f.Bytes(), want) {
		t.Errorf("Expected % x, got % x", want, f.Bytes())
	}

	f, _ = NewFrame(0xD2, 0x10, 0x20, 0x30)
	if !f.ExpandRunning() {
		t.Fatal("ExpandRunning failed")
	}
	want = []byte{0xD2, 0x10, 0xD2, 0x20, 0xD2, 0x30}
	if !bytes.Equal(f.Bytes(), want) {
		t.Errorf("Expected % x, got % x", want, f.Bytes())
	}
}

func TestExpandRunningFailures(t *testing.T) {
	odd, _ := NewFrame(0x90, 0x3C, 0x40, 0x3E)
	before := odd
	if odd.ExpandRunning() {
		t.Error("Expected failure on a trailing partial pair")
	}
	if odd != before {
		t.Error("Failed expansion modified the frame")
	}

	// 43 data pairs: 129 bytes once expanded.
	long := []byte{0x90}
	for i := 0; i < 43; i++ {
		long = append(long, 0x3C, 0x40)
	}
	big, ok := NewFrame(long...)
	if !ok {
		t.Fatal("NewFrame failed")
	}
	before = big
	if big.ExpandRunning() {
		t.Error("Expected failure when the expansion does not fit")
	}
	if big != before {
		t.Error("Failed expansion modified the frame")
	}
}

func TestFrameBasics(t *testing.T) {
	if _, ok := NewFrame(make([]byte, MaxFrameBytes+1)...); ok {
		t.Error("Expected NewFrame to reject an overlong frame")
	}

	f, ok := NewFrame(make([]byte, MaxFrameBytes)...)
	if !ok || !f.Full() {
		t.Fatal("Expected a full frame")
	}
	if f.Append(0x01) {
		t.Error("Expected Append to fail on a full frame")
	}

	f.Reset()
	if f.Len != 0 || f.Status() != 0 {
		t.Errorf("Expected an empty frame, got % x", f.Bytes())
	}

	f.Append(0x9A)
	f.Append(0x0B)
	if got := f.String(); got != "9a 0b " {
		t.Errorf("Expected %q, got %q", "9a 0b ", got)
	}
	var buf bytes.Buffer
	if err := f.Dump(&buf); err != nil || buf.String() != "9a 0b " {
		t.Errorf("Dump: expected %q, got %q, %v", "9a 0b ", buf.String(), err)
	}
}

func TestFrameStateString(t *testing.T) {
	want := map[FrameState]string{
		NoData:         "no-data",
		Next:           "next",
		Complete:       "complete",
		Error:          "error",
		IOError:        "io-error",
		Skipped:        "skipped",
		FrameState(99): "FrameState(99)",
	}
	for st, s := range want {
		if st.String() != s {
			t.Errorf("Expected %q, got %q", s, st.String())
		}
	}
}

func TestSkipFilterMatch(t *testing.T) {
	var none *SkipFilter
	if none.Match(0xF8) {
		t.Error("nil filter matched")
	}

	f := &SkipFilter{Status: []MIDICommand{TimingClock, 0x93}}
	for status, want := range map[byte]bool{0xF8: true, 0x93: true, 0x90: false, 0xFE: false} {
		if got := f.Match(status); got != want {
			t.Errorf("Match(%#x): expected %v, got %v", status, want, got)
		}
	}
}
