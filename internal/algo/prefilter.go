package algo

import (
	"bytes"
	"unicode/utf8"

	"github.com/fz-finder/fz/internal/util"
)

// PrefilterResult bounds a fuzzy match to the smallest haystack window
// that could possibly contain it, without running the DP.
type PrefilterResult struct {
	Start     int
	GreedyEnd int
	End       int
}

// trySkip advances from `from` to the next occurrence of b in an ASCII
// haystack, additionally checking the opposite-case byte when folding case,
// since an ASCII haystack never needs full Unicode case conversion.
func trySkip(text *util.Chars, ignoreCase bool, b byte, from int) int {
	haystack := text.Bytes()[from:]
	var idx int
	if ignoreCase && b >= 'a' && b <= 'z' {
		idx = indexByteTwo(haystack, b, b-32)
	} else {
		idx = bytes.IndexByte(haystack, b)
	}
	if idx < 0 {
		return -1
	}
	return from + idx
}

func isAsciiPattern(pattern []rune) bool {
	for _, r := range pattern {
		if r >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// AsciiPrefilter implements spec.md §4.3's forward/backward scan over an
// ASCII haystack. It returns ok=false when the needle cannot possibly
// appear in order, and never runs the DP itself.
func AsciiPrefilter(text *util.Chars, pattern []rune, cfg *Config, onlyGreedy bool) (PrefilterResult, bool) {
	if !text.IsBytes() {
		return PrefilterResult{}, false
	}
	if !isAsciiPattern(pattern) {
		return PrefilterResult{}, false
	}

	start, idx := -1, 0
	for pidx := 0; pidx < len(pattern); pidx++ {
		idx = trySkip(text, cfg.IgnoreCase, byte(pattern[pidx]), idx)
		if idx < 0 {
			return PrefilterResult{}, false
		}
		if pidx == 0 {
			start = idx
		}
		idx++
	}
	greedyEnd := idx

	if onlyGreedy {
		return PrefilterResult{Start: start, GreedyEnd: greedyEnd, End: greedyEnd}, true
	}

	last := pattern[len(pattern)-1]
	tail := text.Bytes()[greedyEnd:]
	lastIdx := lastIndexByte(tail, byte(last), cfg.IgnoreCase)
	end := greedyEnd
	if lastIdx >= 0 {
		end = greedyEnd + 1 + lastIdx
	}
	return PrefilterResult{Start: start, GreedyEnd: greedyEnd, End: end}, true
}

func lastIndexByte(haystack []byte, b byte, ignoreCase bool) int {
	idx := lastIndexByteFold(haystack, b)
	if ignoreCase && b >= 'a' && b <= 'z' {
		if uidx := lastIndexByteFold(haystack, b-32); uidx > idx {
			idx = uidx
		}
	}
	return idx
}

// UnicodePrefilter is the Unicode analogue of AsciiPrefilter: the same
// forward/backward scan, but normalizing each codepoint on the fly rather
// than assuming a byte-for-byte match is possible.
func UnicodePrefilter(text *util.Chars, pattern []rune, cfg *Config, onlyGreedy bool) (PrefilterResult, bool) {
	n := text.Length()
	start, pidx := -1, 0
	idx := 0
	for ; idx < n && pidx < len(pattern); idx++ {
		c, _ := classifyAndNormalize(text.Get(idx), cfg)
		if c == pattern[pidx] {
			if pidx == 0 {
				start = idx
			}
			pidx++
		}
	}
	if pidx != len(pattern) {
		return PrefilterResult{}, false
	}
	greedyEnd := idx

	if onlyGreedy {
		return PrefilterResult{Start: start, GreedyEnd: greedyEnd, End: greedyEnd}, true
	}

	last := pattern[len(pattern)-1]
	end := greedyEnd
	for i := n - 1; i >= greedyEnd; i-- {
		c, _ := classifyAndNormalize(text.Get(i), cfg)
		if c == last {
			end = i + 1
			break
		}
	}
	return PrefilterResult{Start: start, GreedyEnd: greedyEnd, End: end}, true
}
