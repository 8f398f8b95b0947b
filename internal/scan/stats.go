package scan

import (
	"container/heap"
	"sort"
)

// Entry is one tracked (size, path) observation.
type Entry struct {
	Size int64
	Path string
}

// ScanStats accumulates aggregate counts for a single scan invocation plus
// a bounded collection of the largest files seen. It is created fresh per
// scan and mutated only by the scan loop.
type ScanStats struct {
	NumDirs    int
	NumFiles   int
	TotalBytes int64

	topN    int
	largest entryHeap
}

// NewStats returns an accumulator tracking at most topN largest files.
// topN == 0 disables tracking entirely; counters still update.
func NewStats(topN int) *ScanStats {
	return &ScanStats{topN: topN}
}

// AddFile records one observed file. While below capacity every
// observation is kept; at capacity the smallest tracked entry is evicted
// only when size is strictly greater. Ties at the boundary never evict:
// the first topN files to reach the tracked minimum win permanently.
func (s *ScanStats) AddFile(path string, size int64) {
	s.NumFiles++
	s.TotalBytes += size

	if s.topN <= 0 {
		return
	}
	if s.largest.Len() < s.topN {
		heap.Push(&s.largest, Entry{Size: size, Path: path})
		return
	}
	if size > s.largest[0].Size {
		s.largest[0] = Entry{Size: size, Path: path}
		heap.Fix(&s.largest, 0)
	}
}

// Largest returns the tracked entries sorted descending by size.
func (s *ScanStats) Largest() []Entry {
	out := make([]Entry, len(s.largest))
	copy(out, s.largest)
	sort.Slice(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	return out
}

// entryHeap is a min-at-top heap keyed on size, so the smallest tracked
// file sits at index 0 for the compare-and-evict step.
type entryHeap []Entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].Size < h[j].Size }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(Entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
