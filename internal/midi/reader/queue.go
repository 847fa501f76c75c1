package reader

import "github.com/leandrodaf/midireader/sdk/contracts"

// queueCapacity is the number of decoded frames kept until consumed.
const queueCapacity = 1024

// frameQueue is a bounded FIFO of frames. Slots are reclaimed only when the
// queue is fully drained: offset and length then go back to zero together.
type frameQueue struct {
	frames [queueCapacity]contracts.Frame
	offset int
	length int
}

// push copies f into the queue. It returns false when no slot is free.
func (q *frameQueue) push(f *contracts.Frame) bool {
	if q.offset == q.length {
		q.offset = 0
		q.length = 0
	}
	if q.length >= queueCapacity {
		return false
	}
	q.frames[q.length] = *f
	q.length++
	return true
}

// pop returns a copy of the oldest unconsumed frame.
func (q *frameQueue) pop() (contracts.Frame, bool) {
	if !q.pending() {
		return contracts.Frame{}, false
	}
	f := q.frames[q.offset]
	q.offset++
	return f, true
}

func (q *frameQueue) pending() bool {
	return q.length > 0 && q.offset < q.length
}

func (q *frameQueue) size() int {
	return q.length - q.offset
}

func (q *frameQueue) clear() {
	q.offset = 0
	q.length = 0
}
