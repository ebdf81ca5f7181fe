package host

import ivr "github.com/taucore/ivr"

// queue is the thread-safe FIFO required by §5: blocking dequeue,
// thread-safe enqueue. Modeled on the hub package's MessageChannel, reduced
// to the single-consumer shape the run loop needs — Go channels are
// already safe for concurrent sends, so no extra locking is needed here.
type queue struct {
	ch chan ivr.Event
}

func newQueue(bufferSize int) *queue {
	return &queue{ch: make(chan ivr.Event, bufferSize)}
}

func (q *queue) send(e ivr.Event) {
	q.ch <- e
}

func (q *queue) receive() ivr.Event {
	return <-q.ch
}
