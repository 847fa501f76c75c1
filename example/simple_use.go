package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/leandrodaf/midireader/internal/logger"
	"github.com/leandrodaf/midireader/sdk/contracts"
	"github.com/leandrodaf/midireader/sdk/midi"
	"github.com/pterm/pterm"
)

// Usage: simple_use /dev/snd/midiC1D0 [/dev/ttyUSB0 ...]
func main() {
	log := logger.NewZapLogger()

	reader, err := midi.NewMIDIReader(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithFlags(contracts.FlagExpand),
		contracts.WithSkipFilter(contracts.SkipFilter{
			Status: []contracts.MIDICommand{contracts.ActiveSensing, contracts.TimingClock},
		}),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI reader", log.Field().Error("error", err))
		return
	}

	for _, path := range os.Args[1:] {
		if err := reader.AddSourcePath(path, 0); err != nil {
			log.Error("Failed to add MIDI source", log.Field().String("path", path), log.Field().Error("error", err))
		}
	}
	if len(os.Args) == 1 {
		dev, err := midi.OpenDevice(0, contracts.WithLogger(log))
		if err != nil {
			log.Error("No MIDI source given and no device to bridge", log.Field().Error("error", err))
			return
		}
		defer dev.Close()
		if err := reader.AddSource(dev.FD(), 0); err != nil {
			log.Error("Failed to add MIDI device", log.Field().Error("error", err))
			return
		}
	}

	pterm.Info.Println(fmt.Sprintf("MIDI reader v%d: capturing frames, press Ctrl+C to exit", midi.Version))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-interrupt:
			break loop
		case <-ticker.C:
			drainFrames(reader)
		}
	}

	rows := pterm.TableData{{"Source", "Read", "Errors", "Skipped", "Missed"}}
	for n := 0; ; n++ {
		stats, err := reader.Stats(n)
		if err != nil {
			break
		}
		rows = append(rows, statsRow(strconv.Itoa(n), stats))
	}
	if total, err := reader.Stats(contracts.TotalStats); err == nil {
		rows = append(rows, statsRow("total", total))
	}

	if err := reader.Close(); err != nil {
		log.Warn("Failed to close MIDI reader", log.Field().Error("error", err))
	}
	pterm.Println()
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// idleUpdates bounds the updates spent on bytes already buffered by the
// reader once no descriptor reports input; it matches a full source buffer.
const idleUpdates = 256

// drainFrames prints frames until the sources are quiet and their buffered
// bytes are decoded. Next decodes a single byte per source, so stopping at
// the first empty Next would fall behind a 31250 baud stream.
func drainFrames(reader contracts.MIDIReader) {
	for idle := 0; idle < idleUpdates; {
		if frame, ok := reader.Next(); ok {
			pterm.Println(pterm.Cyan(frame.String()))
			idle = 0
			continue
		}
		if n, err := reader.Poll(); err == nil && n > 0 {
			idle = 0
			continue
		}
		idle++
	}
}

func statsRow(name string, s contracts.Stats) []string {
	return []string{
		name,
		strconv.FormatUint(s.Read, 10),
		strconv.FormatUint(s.Errors, 10),
		strconv.FormatUint(s.Skipped, 10),
		strconv.FormatUint(s.Missed, 10),
	}
}
