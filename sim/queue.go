// Implements the BoundedQueue, the fixed-capacity FIFO used for both ready
// queues and every device waiting queue.

package sim

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQueueFull is returned by Enqueue when the queue is at capacity.
// The caller drops the element; it is never fatal.
var ErrQueueFull = errors.New("queue full")

// BoundedQueue is a FIFO ring buffer with a fixed capacity.
// Size never exceeds capacity; arrival order is preserved.
type BoundedQueue[T any] struct {
	items []T
	head  int
	size  int
}

// ProcessQueue is the queue type used by the scheduler and device servers.
type ProcessQueue = BoundedQueue[*Process]

// NewBoundedQueue creates an empty queue holding at most capacity elements.
func NewBoundedQueue[T any](capacity int) *BoundedQueue[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewBoundedQueue: capacity must be > 0, got %d", capacity))
	}
	return &BoundedQueue[T]{items: make([]T, capacity)}
}

// Enqueue appends v at the tail. Returns ErrQueueFull if the queue is at capacity.
func (q *BoundedQueue[T]) Enqueue(v T) error {
	if q.size == len(q.items) {
		return ErrQueueFull
	}
	q.items[(q.head+q.size)%len(q.items)] = v
	q.size++
	return nil
}

// Dequeue removes and returns the head element.
// On an empty queue it returns the zero value and false; this is the idle case.
func (q *BoundedQueue[T]) Dequeue() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return v, true
}

// Peek returns the head element without removing it.
func (q *BoundedQueue[T]) Peek() (T, bool) {
	if q.size == 0 {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

// Len returns the number of queued elements.
func (q *BoundedQueue[T]) Len() int {
	return q.size
}

// Cap returns the fixed capacity.
func (q *BoundedQueue[T]) Cap() int {
	return len(q.items)
}

// Full reports whether another Enqueue would fail.
func (q *BoundedQueue[T]) Full() bool {
	return q.size == len(q.items)
}

// Items returns a copy of the queue contents in FIFO order.
func (q *BoundedQueue[T]) Items() []T {
	out := make([]T, q.size)
	for i := 0; i < q.size; i++ {
		out[i] = q.items[(q.head+i)%len(q.items)]
	}
	return out
}

func (q *BoundedQueue[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range q.Items() {
		sb.WriteString(fmt.Sprint(val))
		if i < q.size-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// PIDs returns the pids of the queued processes in FIFO order.
func PIDs(q *ProcessQueue) []int {
	items := q.Items()
	pids := make([]int, len(items))
	for i, p := range items {
		pids[i] = p.PID
	}
	return pids
}
