package structs

import "sync"

// Concurrency-safe first-in-first-out queue.
// Once closed, queue rejects new elements but still returns the remaining ones.
type SyncFifoQueue[T any] struct {
	mut    sync.Mutex
	cond   *sync.Cond
	elems  []T
	closed bool
}

func NewSyncFifoQueue[T any]() *SyncFifoQueue[T] {
	q := new(SyncFifoQueue[T])

	q.cond = sync.NewCond(&q.mut)

	return q
}

// Appends v to the end of queue.
// Returns false if queue is closed.
func (q *SyncFifoQueue[T]) Push(v T) bool {
	q.mut.Lock()

	if q.closed {
		q.mut.Unlock()
		return false
	}

	q.elems = append(q.elems, v)

	q.mut.Unlock()

	q.cond.Signal()

	return true
}

// Must be called with q.mut locked.
func (q *SyncFifoQueue[T]) shift() T {
	var zero T

	v := q.elems[0]
	q.elems[0] = zero
	q.elems = q.elems[1:]

	return v
}

// If queue isn't empty - deletes and returns first element of queue and true.
// If queue is empty - returns zero-value of T and false.
func (q *SyncFifoQueue[T]) Pop() (T, bool) {
	q.mut.Lock()
	defer q.mut.Unlock()

	var zero T

	if len(q.elems) == 0 {
		return zero, false
	}

	return q.shift(), true
}

// Same as Pop, but blocks till element appears.
// Returns false only when queue is closed and empty.
func (q *SyncFifoQueue[T]) PopWait() (T, bool) {
	q.mut.Lock()
	defer q.mut.Unlock()

	for len(q.elems) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.elems) == 0 {
		var zero T
		return zero, false
	}

	return q.shift(), true
}

// Closes queue and wakes up all waiters.
func (q *SyncFifoQueue[T]) Close() {
	q.mut.Lock()
	q.closed = true
	q.mut.Unlock()

	q.cond.Broadcast()
}

func (q *SyncFifoQueue[T]) IsClosed() bool {
	q.mut.Lock()
	defer q.mut.Unlock()

	return q.closed
}

// Returns amount of elements in queue
func (q *SyncFifoQueue[T]) Size() int {
	q.mut.Lock()
	defer q.mut.Unlock()

	return len(q.elems)
}

// Removes and returns all elements of the queue.
func (q *SyncFifoQueue[T]) Drain() []T {
	q.mut.Lock()
	defer q.mut.Unlock()

	r := q.elems
	q.elems = nil

	return r
}
