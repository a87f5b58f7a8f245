package epa

import "container/heap"

// faceHeapEntry is the data structure for EPA's face-expansion priority
// queue, keyed by each face's signed distance from the origin to its
// supporting plane, with each entry tracking its own heap index.
type faceHeapEntry struct {
	faceID int
	dist   float64
	index  int
}

// faceHeap is a min-heap of faceHeapEntry ordered by dist, so EPA always
// expands the face closest to the origin next.
type faceHeap []*faceHeapEntry

func (h faceHeap) Len() int           { return len(h) }
func (h faceHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h faceHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *faceHeap) Push(x interface{}) {
	n := len(*h)
	item := x.(*faceHeapEntry)
	item.index = n
	*h = append(*h, item)
}

func (h *faceHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[0 : n-1]
	return item
}

var _ heap.Interface = (*faceHeap)(nil)
