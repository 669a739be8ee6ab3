package conformance

import (
	"sync"

	"github.com/google/uuid"

	"github.com/oising/itc4net/itc"
)

// Message wraps an anonymous stamp in transit, tagged with a
// correlation ID for tracing. The ID plays no role in causality and is
// never consulted by a scenario's assertions.
type Message struct {
	ID    uuid.UUID
	Stamp itc.Stamp
}

// MessageQueue is a thread-safe FIFO queue of Messages, used by
// scenarios to simulate Send/Receive across participants.
//
// The queue is unbounded: a scenario step may Send many messages
// before any Receive drains them. Dispatch is synchronous — Run
// executes a scenario's steps in order and never blocks waiting for a
// message to arrive — so, unlike the teacher's engine.eventQueue, there
// is no Wait/Close pair here for a consumer to select on.
type MessageQueue struct {
	mu    sync.Mutex
	items []Message
}

// NewMessageQueue creates an empty queue.
func NewMessageQueue() *MessageQueue {
	return &MessageQueue{items: make([]Message, 0, 8)}
}

// Enqueue appends a new anonymous stamp to the queue, tagging it with
// a fresh correlation ID, and returns the tagged Message.
func (q *MessageQueue) Enqueue(s itc.Stamp) Message {
	msg := Message{ID: uuid.New(), Stamp: s}

	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()

	return msg
}

// TryDequeue removes and returns the front Message without blocking.
// Returns (Message{}, false) if the queue is empty.
func (q *MessageQueue) TryDequeue() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Message{}, false
	}

	msg := q.items[0]
	q.items[0] = Message{}
	q.items = q.items[1:]
	return msg, true
}

// Len returns the current queue length.
func (q *MessageQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
