package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedQueue_Enqueue_PreservesFIFOOrder(t *testing.T) {
	// GIVEN a queue with processes [A, B, C]
	q := NewBoundedQueue[*Process](5)
	a, b, c := proc(1, 5), proc(2, 5), proc(3, 5)
	require.NoError(t, q.Enqueue(a))
	require.NoError(t, q.Enqueue(b))
	require.NoError(t, q.Enqueue(c))

	// WHEN all are dequeued
	var got []int
	for q.Len() > 0 {
		p, ok := q.Dequeue()
		require.True(t, ok)
		got = append(got, p.PID)
	}

	// THEN they come out in arrival order
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestBoundedQueue_Enqueue_Full_ReturnsErrQueueFull(t *testing.T) {
	// GIVEN a queue at capacity 2
	q := NewBoundedQueue[*Process](2)
	require.NoError(t, q.Enqueue(proc(1, 5)))
	require.NoError(t, q.Enqueue(proc(2, 5)))

	// WHEN a third process is enqueued
	err := q.Enqueue(proc(3, 5))

	// THEN it is rejected and the queue is unchanged
	assert.True(t, errors.Is(err, ErrQueueFull))
	assert.Equal(t, 2, q.Len())
	assert.True(t, q.Full())
	assert.Equal(t, []int{1, 2}, PIDs(q))
}

func TestBoundedQueue_Dequeue_Empty_ReturnsFalse(t *testing.T) {
	// GIVEN an empty queue
	q := NewBoundedQueue[*Process](3)

	// WHEN Dequeue() is called
	p, ok := q.Dequeue()

	// THEN the idle result is returned, not an error
	assert.False(t, ok)
	assert.Nil(t, p)
	assert.Equal(t, 0, q.Len())
}

func TestBoundedQueue_WrapAround_KeepsOrder(t *testing.T) {
	// GIVEN a queue whose head has advanced past the start of its buffer
	q := NewBoundedQueue[int](3)
	for i := 1; i <= 3; i++ {
		require.NoError(t, q.Enqueue(i))
	}
	v, _ := q.Dequeue()
	assert.Equal(t, 1, v)
	v, _ = q.Dequeue()
	assert.Equal(t, 2, v)

	// WHEN more elements are enqueued than the tail has room for
	require.NoError(t, q.Enqueue(4))
	require.NoError(t, q.Enqueue(5))

	// THEN FIFO order and the capacity bound still hold
	assert.Equal(t, []int{3, 4, 5}, q.Items())
	assert.ErrorIs(t, q.Enqueue(6), ErrQueueFull)
	assert.Equal(t, 3, q.Cap())
}

func TestBoundedQueue_Peek_DoesNotRemove(t *testing.T) {
	q := NewBoundedQueue[int](2)
	_, ok := q.Peek()
	assert.False(t, ok)

	require.NoError(t, q.Enqueue(7))
	v, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, q.Len())
}

func TestBoundedQueue_Items_ReturnsCopy(t *testing.T) {
	q := NewBoundedQueue[int](2)
	require.NoError(t, q.Enqueue(1))
	items := q.Items()
	items[0] = 99
	v, _ := q.Peek()
	assert.Equal(t, 1, v)
}

func TestBoundedQueue_String(t *testing.T) {
	q := NewBoundedQueue[int](3)
	assert.Equal(t, "[]", q.String())
	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	assert.Equal(t, "[1 2]", q.String())
}

func TestNewBoundedQueue_NonPositiveCapacity_Panics(t *testing.T) {
	assert.Panics(t, func() { NewBoundedQueue[int](0) })
}
