package algorithms

import (
	"container/heap"
	"errors"
)

// ErrEmptyQueue is returned when peeking at or extracting from an empty
// PathQueue.
var ErrEmptyQueue = errors.New("path queue is empty")

// pathHeap implements heap.Interface ordered by ComparePaths.
type pathHeap []*Path

func (h pathHeap) Len() int           { return len(h) }
func (h pathHeap) Less(i, j int) bool { return ComparePaths(h[i], h[j]) < 0 }
func (h pathHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *pathHeap) Push(x any) {
	*h = append(*h, x.(*Path))
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// PathQueue is a binary min-heap of search states. It never looks at edge or
// seal state; constraints are applied by the caller when expanding.
type PathQueue struct {
	h pathHeap
}

// NewPathQueue creates an empty queue with room for capacity paths before
// the backing slice has to grow.
func NewPathQueue(capacity int) *PathQueue {
	return &PathQueue{h: make(pathHeap, 0, capacity)}
}

// Insert adds p to the queue.
func (q *PathQueue) Insert(p *Path) {
	heap.Push(&q.h, p)
}

// Peek returns the smallest path without removing it.
func (q *PathQueue) Peek() (*Path, error) {
	if len(q.h) == 0 {
		return nil, ErrEmptyQueue
	}
	return q.h[0], nil
}

// ExtractMin removes and returns the smallest path.
func (q *PathQueue) ExtractMin() (*Path, error) {
	if len(q.h) == 0 {
		return nil, ErrEmptyQueue
	}
	return heap.Pop(&q.h).(*Path), nil
}

// Len returns the number of queued paths.
func (q *PathQueue) Len() int {
	return len(q.h)
}

// mustExtract pops the minimum of a queue the caller knows is non-empty.
func (q *PathQueue) mustExtract() *Path {
	p, err := q.ExtractMin()
	if err != nil {
		panic("algorithms: " + err.Error() + " after Len() > 0")
	}
	return p
}
