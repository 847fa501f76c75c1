package contracts

// TotalStats selects the cumulative statistics instead of a source index.
const TotalStats = -1

// Stats counts what happened to frames read from a source, or from all of
// them when taken from the reader totals.
type Stats struct {
	Read    uint64 // Frames completed by the decoder.
	Errors  uint64 // Frames discarded as malformed or rejected by the callback.
	Skipped uint64 // Frames excluded by the skip filter or the callback.
	Missed  uint64 // Frames dropped because the queue was full (totals only).
}
