package main

import (
	"testing"

	"github.com/leandrodaf/midireader/internal/logger"
	"github.com/leandrodaf/midireader/sdk/contracts"
	"github.com/leandrodaf/midireader/sdk/midi"
	"github.com/pterm/pterm"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sys/unix"
)

func TestDrainFramesKeepsUpWithInput(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	reader, err := midi.NewMIDIReader(contracts.WithLogger(logger.NewZapLoggerFrom(zaptest.NewLogger(t))))
	if err != nil {
		t.Fatalf("NewMIDIReader failed: %v", err)
	}
	defer reader.Close()

	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	defer unix.Close(p[1])
	if err := reader.AddSource(p[0], 0); err != nil {
		t.Fatalf("AddSource failed: %v", err)
	}

	// More than one second of clocks at the 1 ms tick rate.
	const clocks = 4096
	buf := make([]byte, clocks)
	for i := range buf {
		buf[i] = 0xF8
	}
	if n, err := unix.Write(p[1], buf); err != nil || n != clocks {
		t.Fatalf("Write failed: %d, %v", n, err)
	}

	drainFrames(reader)

	total, err := reader.Stats(contracts.TotalStats)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if total.Read != clocks {
		t.Errorf("Expected %d frames read in one drain, got %d", clocks, total.Read)
	}
	if got := reader.Queued(); got != 0 {
		t.Errorf("Expected the queue drained, got %d", got)
	}
}
