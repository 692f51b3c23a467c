// Package topk implements the bounded min-heap of spec.md §4.10: retains
// only the MaxResults highest-scoring items seen during a search pass,
// replacing the teacher's full-sort-then-merge design (REDESIGN, §5 bars
// a matcher worker pool and the sharded merge it would otherwise feed).
package topk

import (
	"container/heap"
	"sort"

	"github.com/fz-finder/fz/internal/store"
)

// MaxResults bounds the heap so memory and render cost stay flat on
// multi-million-item inputs.
const MaxResults = 2000

// Entry pairs an Item with the score and indices its pattern produced.
type Entry struct {
	Item    *store.Item
	Score   int
	Indices []int
}

// Heap is a bounded min-heap on Score: the root is always the weakest
// entry currently retained, so an incoming higher-scoring item can evict
// it in O(log K).
type Heap struct {
	entries []Entry
	bound   int
}

// New returns an empty Heap bounded at MaxResults, or at bound if bound>0.
func New(bound int) *Heap {
	if bound <= 0 {
		bound = MaxResults
	}
	h := &Heap{bound: bound}
	heap.Init(h)
	return h
}

// Len, Less, Swap, Push, Pop implement container/heap.Interface. Less
// ranks by score ascending, falling back to store.Rank's stable-by-id
// order so equal scores don't depend on heap internals.
func (h *Heap) Len() int { return len(h.entries) }

func (h *Heap) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return !a.Item.ComputeRank().Less(b.Item.ComputeRank())
}

func (h *Heap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }

func (h *Heap) Push(x any) { h.entries = append(h.entries, x.(Entry)) }

func (h *Heap) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}

// Offer inserts an entry, evicting the weakest retained entry once the
// heap is at capacity and the new one outscores it.
func (h *Heap) Offer(e Entry) {
	if h.Len() < h.bound {
		heap.Push(h, e)
		return
	}
	if e.Score > h.entries[0].Score {
		h.entries[0] = e
		heap.Fix(h, 0)
	}
}

// Reset empties the heap for a fresh search pass.
func (h *Heap) Reset() {
	h.entries = h.entries[:0]
}

// Drain returns every retained entry sorted descending by score, with a
// stable tie-break by item id (spec.md §9's recommended default for the
// Open Question on tie-breaking after drain).
func (h *Heap) Drain() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	return out
}
