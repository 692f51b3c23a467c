// Package store holds the chunked, arena-backed item list that the
// streaming reader appends to and the search loop scans.
package store

// Offset is a matched-range [start, end) in codepoint units, as produced by
// a matcher kind and merged across a pattern's non-negative atoms.
type Offset [2]int32

// Item is the unit of selection (spec.md §3). MatchText and DisplayText are
// borrowed from the owning chunk's arena; Original is what gets emitted on
// accept. ID is assigned in strict producer order and never reused.
type Item struct {
	ID          uint32
	MatchText   string
	DisplayText string
	Original    string

	offsets []Offset
	rank    Rank
	ranked  bool
}

// Rank orders Items by match quality for stable, deterministic ties: a
// shorter total matched span wins, then a shorter string, then insertion
// order. Matches the teacher's compareRanks shape (item.go), generalized
// from a single ByRelevance sort into the tie-break the top-K heap uses.
type Rank struct {
	MatchLen uint16
	StrLen   uint16
	ID       uint32
}

// SetOffsets records the matched ranges produced for this item by the
// current pattern, invalidating any cached Rank.
func (it *Item) SetOffsets(offsets []Offset) {
	it.offsets = offsets
	it.ranked = false
}

// ComputeRank derives Rank from the recorded offsets, merging overlaps the
// same way the teacher's Item.Rank does, and caches the result.
func (it *Item) ComputeRank() Rank {
	if it.ranked {
		return it.rank
	}
	matchLen, prevEnd := 0, 0
	for _, off := range it.offsets {
		begin, end := int(off[0]), int(off[1])
		if prevEnd > begin {
			begin = prevEnd
		}
		if end > prevEnd {
			prevEnd = end
		}
		if end > begin {
			matchLen += end - begin
		}
	}
	it.rank = Rank{
		MatchLen: uint16(matchLen),
		StrLen:   uint16(len([]rune(it.MatchText))),
		ID:       it.ID,
	}
	it.ranked = true
	return it.rank
}

// Less implements the stable-by-id tie-break §9's Open Question decides on:
// fewer matched codepoints first, then the shorter haystack, then earlier id.
func (r Rank) Less(other Rank) bool {
	if r.MatchLen != other.MatchLen {
		return r.MatchLen < other.MatchLen
	}
	if r.StrLen != other.StrLen {
		return r.StrLen < other.StrLen
	}
	return r.ID <= other.ID
}
