package queue

import (
	"sync/atomic"
)

// Queue is a FIFO whose backing slice is swapped atomically, so a reader
// always observes a whole slice. Writers must not run concurrently.
type Queue[T any] struct {
	items   atomic.Pointer[[]T]
	limit   int
	dropped atomic.Uint64
}

func (q *Queue[T]) Len() int {
	return len(*q.items.Load())
}

func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	items := *q.items.Load()
	if len(items) == 0 {
		return zero, false
	}
	item := items[0]
	items = items[1:]
	q.items.Store(&items)
	return item, true
}

// Push appends item. When the queue is bounded and full the oldest item is
// discarded and counted in Dropped.
func (q *Queue[T]) Push(item T) {
	items := *q.items.Load()
	if q.limit > 0 && len(items) >= q.limit {
		items = items[len(items)-q.limit+1:]
		q.dropped.Add(1)
	}
	items = append(items, item)
	q.items.Store(&items)
}

// Drain removes and returns everything queued, never nil.
func (q *Queue[T]) Drain() []T {
	empty := []T{}
	return *q.items.Swap(&empty)
}

func (q *Queue[T]) Dropped() uint64 {
	return q.dropped.Load()
}

// New returns an empty queue. An optional positive limit bounds its length.
func New[T any](maybeLimit ...int) *Queue[T] {
	q := &Queue[T]{}
	if len(maybeLimit) > 0 && maybeLimit[0] > 0 {
		q.limit = maybeLimit[0]
	}
	items := []T{}
	q.items.Store(&items)
	return q
}
