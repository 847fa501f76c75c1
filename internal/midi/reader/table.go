package reader

// sysExLength marks a status whose frame ends with an End Of Exclusive byte.
const sysExLength = -1

const (
	statusSysEx          = 0xF0
	statusEndOfExclusive = 0xF7
	statusActiveSensing  = 0xFE
)

// frameLength maps a status byte, minus 0x80, to the length of its message.
// Channel-voice entries are the length of a single message; running-status
// runs grow past it.
var frameLength = [128]int{
	// 0x80 note off
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	// 0x90 note on
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	// 0xA0 polyphonic pressure
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	// 0xB0 control change
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	// 0xC0 program change
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	// 0xD0 channel pressure
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	// 0xE0 pitch bend
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	// 0xF0 system common
	sysExLength, 2, 3, 2, 1, 1, 1, 1,
	// 0xF8 system real-time
	1, 1, 1, 1, 1, 1, 1, 1,
}

// expectedLength returns the table entry for status, which must have its
// high bit set.
func expectedLength(status byte) int {
	return frameLength[status-0x80]
}
