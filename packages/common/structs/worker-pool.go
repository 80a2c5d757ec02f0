package structs

import (
	"errors"
	"sync"
	"sync/atomic"
)

type Task interface {
	Process()
}

// Function adapter for Task.
type TaskFunc func()

func (f TaskFunc) Process() {
	f()
}

var (
	ErrPoolStarted  = errors.New("worker pool already started")
	ErrPoolCanceled = errors.New("worker pool is canceled")
)

type WorkerPool struct {
	workers  int
	queue    *SyncFifoQueue[Task]
	started  atomic.Bool
	canceled atomic.Bool
	wg       sync.WaitGroup
	done     chan struct{}
}

// Creates new worker pool with specified amount of workers (min 1).
func NewWorkerPool(workers int) *WorkerPool {
	return &WorkerPool{
		workers: max(workers, 1),
		queue:   NewSyncFifoQueue[Task](),
		done:    make(chan struct{}),
	}
}

// Starts workers and blocks till pool is canceled
// and all pushed tasks are processed.
func (wp *WorkerPool) Start() error {
	if wp.canceled.Load() {
		return ErrPoolCanceled
	}
	if !wp.started.CompareAndSwap(false, true) {
		return ErrPoolStarted
	}

	wp.wg.Add(wp.workers)

	for range wp.workers {
		go wp.work()
	}

	wp.wg.Wait()

	close(wp.done)

	return nil
}

func (wp *WorkerPool) work() {
	defer wp.wg.Done()

	for {
		task, ok := wp.queue.PopWait()
		if !ok {
			return
		}

		task.Process()
	}
}

// Cancels worker pool.
// Worker pool will finish all its tasks before stopping.
// Once canceled, worker pool can't be started again.
func (wp *WorkerPool) Cancel() error {
	if !wp.canceled.CompareAndSwap(false, true) {
		return ErrPoolCanceled
	}

	wp.queue.Close()

	if wp.started.Load() {
		<-wp.done
	}

	return nil
}

func (wp *WorkerPool) IsStarted() bool {
	return wp.started.Load()
}

func (wp *WorkerPool) IsCanceled() bool {
	return wp.canceled.Load()
}

// Amount of tasks waiting to be processed.
func (wp *WorkerPool) Pending() int {
	return wp.queue.Size()
}

// Pushes a new task into a worker pool.
// Returns error on trying to push into a canceled worker pool
func (wp *WorkerPool) Push(t Task) error {
	if !wp.queue.Push(t) {
		return ErrPoolCanceled
	}

	return nil
}
