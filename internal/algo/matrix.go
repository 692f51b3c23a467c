package algo

import "github.com/fz-finder/fz/internal/util"

// bits is a flat, 1-bit-per-slot backtrace buffer whose size is reserved
// in the same slab as everything else in a match. Each slot records whether the
// best path into a DP cell came from a match transition (1) or a skip
// transition (0); combined with the per-row consecutive-run length this is
// enough to retrace the optimal path without keeping the full score matrix
// around afterward.
type bits struct {
	words []uint32
}

func (b bits) set(i int, v bool) {
	if v {
		b.words[i/32] |= 1 << uint(i%32)
	} else {
		b.words[i/32] &^= 1 << uint(i%32)
	}
}

func (b bits) get(i int) bool {
	return b.words[i/32]&(1<<uint(i%32)) != 0
}

// allocBits reserves room for n backtrace slots in the slab's I32 arena,
// offset words after whatever the caller has already claimed there, and
// returns them as a separate []uint32 copied from that region.
func allocBits(offset int, slab *util.Slab, n int) (int, bits) {
	words := (n + 31) / 32
	next, raw := alloc32(offset, slab, words)
	return next, bits{words: asUint32(raw)}
}

func asUint32(s []int32) []uint32 {
	u := make([]uint32, len(s))
	for i, v := range s {
		u[i] = uint32(v)
	}
	return u
}

func alloc16(offset int, slab *util.Slab, size int) (int, []int16) {
	if slab != nil && cap(slab.I16) > offset+size {
		return offset + size, slab.I16[offset : offset+size]
	}
	return offset, make([]int16, size)
}

func alloc32(offset int, slab *util.Slab, size int) (int, []int32) {
	if slab != nil && cap(slab.I32) > offset+size {
		return offset + size, slab.I32[offset : offset+size]
	}
	return offset, make([]int32, size)
}

// posArray returns a capacity-preallocated index buffer when the caller
// wants matched positions back, or nil when it doesn't (saves the matcher
// engine from populating one for the common score-only call).
func posArray(withPos bool, n int) *[]int {
	if withPos {
		pos := make([]int, 0, n)
		return &pos
	}
	return nil
}
