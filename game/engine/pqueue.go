package engine

import "container/heap"

// pqItem pairs a position with its priority and insertion order
type pqItem struct {
	pos      Position
	priority int
	seq      int
}

// itemHeap implements heap.Interface over pqItems
type itemHeap []pqItem

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	// Equal priorities pop in insertion order, which keeps runs deterministic
	return h[i].seq < h[j].seq
}

func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x any) { *h = append(*h, x.(pqItem)) }

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// PriorityQueue is a min-priority queue of grid positions used by the
// weighted search algorithms. Dequeue always yields non-decreasing priorities.
type PriorityQueue struct {
	items itemHeap
	seq   int
}

// NewPriorityQueue creates an empty priority queue
func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{items: make(itemHeap, 0, 64)}
}

// Enqueue adds a position with the given priority
func (pq *PriorityQueue) Enqueue(pos Position, priority int) {
	heap.Push(&pq.items, pqItem{pos: pos, priority: priority, seq: pq.seq})
	pq.seq++
}

// Dequeue removes and returns the position with the lowest priority.
// The second return value is false when the queue is empty.
func (pq *PriorityQueue) Dequeue() (Position, bool) {
	if pq.IsEmpty() {
		return Position{}, false
	}
	item := heap.Pop(&pq.items).(pqItem)
	return item.pos, true
}

// IsEmpty reports whether the queue has no items
func (pq *PriorityQueue) IsEmpty() bool {
	return len(pq.items) == 0
}

// Len returns the number of queued items
func (pq *PriorityQueue) Len() int {
	return len(pq.items)
}
