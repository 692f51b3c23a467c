// Package algo implements the scoring engine: a Smith-Waterman-variant
// fuzzy matcher with affine gap penalties and context bonuses, plus the
// substring/prefix/postfix/exact match kinds that share its final scorer.
package algo

import (
	"unicode"

	"github.com/fz-finder/fz/internal/util"
)

// Result carries the match window and score a matcher kind produces.
// Start/End are codepoint offsets into the haystack, End exclusive.
type Result struct {
	Start int
	End   int
	Score int
}

var noMatch = Result{-1, -1, 0}

// MatchFunc is the common shape of every matcher kind, so the pattern
// evaluator can dispatch on an atom's kind without a type switch per call.
type MatchFunc func(text *util.Chars, pattern []rune, cfg *Config, withPos bool, slab *util.Slab) (Result, *[]int)

func prefixBonus(cfg *Config, start int) int16 {
	if !cfg.PreferPrefix {
		return 0
	}
	val := int(maxPrefixBonus) - (int(penaltyGapStart)*util.Max(0, start-1))/prefixBonusScale
	if val < 0 {
		val = 0
	}
	return int16(val)
}

// calculateScore implements §4.7: a single pass over H[sidx:eidx] assuming
// every position matches the corresponding needle character in order.
func calculateScore(text *util.Chars, pattern []rune, sidx, eidx int, cfg *Config, withPos bool) (int, *[]int) {
	pos := posArray(withPos, len(pattern))
	pidx, score, consecutive := 0, 0, 0
	firstBonus := int16(0)

	prevClass := cfg.InitialCharClass
	if sidx > 0 {
		prevClass = classify(text.Get(sidx-1), cfg)
	}

	for idx := sidx; idx < eidx; idx++ {
		_, class := classifyAndNormalize(text.Get(idx), cfg)
		bonus := bonusFor(prevClass, class, cfg)
		if consecutive == 0 {
			firstBonus = bonus
		} else {
			bonus = util.Max16(util.Max16(bonus, firstBonus), bonusConsecutive)
			if bonus >= bonusBoundaryBase && bonus > firstBonus {
				firstBonus = bonus
			}
		}
		if pidx == 0 {
			score += int(scoreMatch + bonus*bonusFirstCharMul)
		} else {
			score += int(scoreMatch + bonus)
		}
		if pos != nil {
			*pos = append(*pos, idx)
		}
		consecutive++
		pidx++
		prevClass = class
	}
	score += int(prefixBonus(cfg, sidx))
	if score < 0 {
		score = 0
	}
	return score, pos
}

// FuzzyMatch implements §4.5: dispatch to exact/substring for degenerate
// needle lengths, bound the search with a prefilter, then either resolve
// a contiguous window directly or run the affine-gap DP (falling back to
// the greedy two-pass scan when the matrix would be oversize).
func FuzzyMatch(text *util.Chars, pattern []rune, cfg *Config, withPos bool, slab *util.Slab) (Result, *[]int) {
	n, m := text.Length(), len(pattern)
	if m == 0 {
		return Result{0, 0, 0}, posArray(withPos, 0)
	}
	if m > n {
		return noMatch, nil
	}
	if m == n {
		return ExactMatch(text, pattern, cfg, withPos, slab)
	}
	if m == 1 {
		return singleCharMatch(text, pattern, cfg, withPos)
	}

	if cfg.ForceV1 {
		return fuzzyMatchGreedy(text, pattern, cfg, withPos)
	}

	if slab != nil && n*m > cap(slab.I16) {
		return fuzzyMatchGreedy(text, pattern, cfg, withPos)
	}

	var pre PrefilterResult
	var ok bool
	if text.IsBytes() {
		pre, ok = AsciiPrefilter(text, pattern, cfg, false)
	} else {
		pre, ok = UnicodePrefilter(text, pattern, cfg, false)
	}
	if !ok {
		return noMatch, nil
	}

	if m == pre.End-pre.Start {
		score, pos := calculateScore(text, pattern, pre.Start, pre.End, cfg, withPos)
		return Result{pre.Start, pre.End, score}, pos
	}

	if n > maxHaystackLen || m > maxNeedleLen || (pre.End-pre.Start)*m > maxMatrixSize {
		return fuzzyMatchGreedy(text, pattern, cfg, withPos)
	}

	return fuzzyMatchV2(text, pattern, cfg, withPos, slab, pre)
}

// fuzzyMatchV2 is the DP described in §4.5: two sparse score arrays (M, P)
// keyed by a row-offset array, plus a packed backtrace bit per cell.
func fuzzyMatchV2(text *util.Chars, pattern []rune, cfg *Config, withPos bool, slab *util.Slab, pre PrefilterResult) (Result, *[]int) {
	m := len(pattern)
	window := pre.End - pre.Start
	if window <= 0 {
		return noMatch, nil
	}

	offset16 := 0
	offset16, bonusAtCol := alloc16(offset16, slab, window)
	offset16, classOfCol := alloc16(offset16, slab, window)
	rowOff := make([]int, m)

	prevClass := cfg.InitialCharClass
	if pre.Start > 0 {
		prevClass = classify(text.Get(pre.Start-1), cfg)
	}
	pidx := 0
	pchar := pattern[0]
	for off := 0; off < window; off++ {
		r, class := classifyAndNormalize(text.Get(pre.Start+off), cfg)
		bonusAtCol[off] = bonusFor(prevClass, class, cfg)
		classOfCol[off] = int16(class)
		prevClass = class
		if pidx < m && r == pchar {
			rowOff[pidx] = off
			pidx++
			if pidx < m {
				pchar = pattern[pidx]
			}
		}
	}
	if pidx != m {
		return noMatch, nil
	}

	offset32 := 0
	offset32, M := alloc32(offset32, slab, window*m)
	offset32, P := alloc32(offset32, slab, window*m)
	offset32, C := alloc32(offset32, slab, window*m)
	_, cameFromMatch := allocBits(offset32, slab, window*m)

	needle := make([]rune, m)
	copy(needle, pattern)

	var prevRowM, prevRowP, prevRowC []int32
	maxScore, maxScoreCol := int16(0), rowOff[0]

	for row := 0; row < m; row++ {
		rowStart := rowOff[row]
		base := row * window
		curM := M[base : base+window]
		curP := P[base : base+window]
		curC := C[base : base+window]

		for off := rowStart; off < window; off++ {
			var pScore int16
			if row > 0 && off > 0 {
				gapFromM := int16(prevRowM[off-1]) - penaltyGapStart
				gapFromP := int16(prevRowP[off-1]) - penaltyGapExtend
				pScore = util.Max16(util.Max16(gapFromM, gapFromP), 0)
			}
			curP[off] = int32(pScore)

			matchChar := runeAt(text, pre.Start+off, cfg) == needle[row]

			var mScore int16
			matched := false
			if matchChar {
				bonus := bonusAtCol[off]
				if row == 0 {
					mScore = bonus*bonusFirstCharMul + scoreMatch
					matched = true
				} else if off > 0 {
					prevMScore := int16(prevRowM[off-1])
					prevConsec := int16(0)
					if prevRowC != nil {
						prevConsec = int16(prevRowC[off-1])
					}
					wasMatched := cameFromMatch.get((row-1)*window + off - 1)
					if !wasMatched {
						mScore = pScore + bonus + scoreMatch
						curC[off] = 0
						matched = true
					} else {
						consec := util.Max16(prevConsec, bonusConsecutive)
						if bonus >= cfg.BonusBoundaryWhite && bonus > consec {
							consec = bonus
						}
						scoreMatchCont := prevMScore + util.Max16(consec, bonus)
						scoreSkip := pScore + bonus
						if scoreMatchCont >= scoreSkip {
							mScore = scoreMatchCont + scoreMatch
							curC[off] = int32(prevConsec + 1)
							matched = true
						} else {
							mScore = scoreSkip + scoreMatch
							curC[off] = 0
							matched = true
						}
					}
				} else {
					mScore = pScore + bonus + scoreMatch
					matched = true
				}
			} else {
				mScore = pScore
				matched = false
				curC[off] = 0
			}
			curM[off] = int32(util.Max16(mScore, 0))
			cameFromMatch.set(row*window+off, matched)

			if row == m-1 && curM[off] >= int32(maxScore) {
				maxScore = int16(curM[off])
				maxScoreCol = off
			}
		}
		prevRowM, prevRowP, prevRowC = curM, curP, curC
	}

	result := Result{pre.Start, pre.Start + maxScoreCol + 1, int(maxScore) + int(prefixBonus(cfg, pre.Start))}
	if !withPos {
		return result, nil
	}

	pos := make([]int, 0, m)
	row, col := m-1, maxScoreCol
	for row >= 0 {
		if !cameFromMatch.get(row*window + col) {
			col--
			continue
		}
		pos = append(pos, pre.Start+col)
		row--
		col--
	}
	for i, j := 0, len(pos)-1; i < j; i, j = i+1, j-1 {
		pos[i], pos[j] = pos[j], pos[i]
	}
	return result, &pos
}

func runeAt(text *util.Chars, idx int, cfg *Config) rune {
	r, _ := classifyAndNormalize(text.Get(idx), cfg)
	return r
}

// fuzzyMatchGreedy is the V1 algorithm of §4.5: forward scan to the
// earliest end at which every needle char has appeared in order, then a
// backward scan from there to the latest possible start, scored in one
// pass by calculateScore.
func fuzzyMatchGreedy(text *util.Chars, pattern []rune, cfg *Config, withPos bool) (Result, *[]int) {
	n, m := text.Length(), len(pattern)
	pidx, sidx, eidx := 0, -1, -1
	for idx := 0; idx < n; idx++ {
		r, _ := classifyAndNormalize(text.Get(idx), cfg)
		if r == pattern[pidx] {
			if sidx < 0 {
				sidx = idx
			}
			pidx++
			if pidx == m {
				eidx = idx + 1
				break
			}
		}
	}
	if sidx < 0 || eidx < 0 {
		return noMatch, nil
	}

	pidx--
	for idx := eidx - 1; idx >= sidx; idx-- {
		r, _ := classifyAndNormalize(text.Get(idx), cfg)
		if r == pattern[pidx] {
			pidx--
			if pidx < 0 {
				sidx = idx
				break
			}
		}
	}

	score, pos := calculateScore(text, pattern, sidx, eidx, cfg, withPos)
	return Result{sidx, eidx, score}, pos
}

// singleCharMatch is §4.6's specialized scan: every occurrence scores as
// bonus·FIRST_CHAR_MULTIPLIER + SCORE_MATCH, and the best one wins.
func singleCharMatch(text *util.Chars, pattern []rune, cfg *Config, withPos bool) (Result, *[]int) {
	n := text.Length()
	needle := pattern[0]
	bestPos, bestScore := -1, int16(-1)
	prevClass := cfg.InitialCharClass
	for idx := 0; idx < n; idx++ {
		r, class := classifyAndNormalize(text.Get(idx), cfg)
		if r == needle {
			bonus := bonusFor(prevClass, class, cfg)
			score := scoreMatch + bonus*bonusFirstCharMul
			if score > bestScore {
				bestScore, bestPos = score, idx
			}
		}
		prevClass = class
	}
	if bestPos < 0 {
		return noMatch, nil
	}
	score := int(bestScore) + int(prefixBonus(cfg, bestPos))
	if !withPos {
		return Result{bestPos, bestPos + 1, score}, nil
	}
	pos := []int{bestPos}
	return Result{bestPos, bestPos + 1, score}, &pos
}

// SubstringMatch implements §4.6: slide an anchored window across H,
// scoring each candidate via calculateScore, short-circuiting once a
// boundary bonus saturates the first position.
func SubstringMatch(text *util.Chars, pattern []rune, cfg *Config, withPos bool, slab *util.Slab) (Result, *[]int) {
	m := len(pattern)
	if m == 0 {
		return Result{0, 0, 0}, posArray(withPos, 0)
	}
	n := text.Length()
	if n < m {
		return noMatch, nil
	}

	best := noMatch
	for sidx := 0; sidx+m <= n; sidx++ {
		matched := true
		for i := 0; i < m; i++ {
			r, _ := classifyAndNormalize(text.Get(sidx+i), cfg)
			if r != pattern[i] {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		score, _ := calculateScore(text, pattern, sidx, sidx+m, cfg, false)
		if score > best.Score {
			best = Result{sidx, sidx + m, score}
			firstBonus := bonusAt(text, sidx, cfg)
			if firstBonus >= cfg.BonusBoundaryWhite && firstBonus >= cfg.BonusBoundaryDelimiter {
				break
			}
		}
	}
	if best.Start < 0 {
		return noMatch, nil
	}
	if withPos {
		_, pos := calculateScore(text, pattern, best.Start, best.End, cfg, true)
		return best, pos
	}
	return best, nil
}

func leadingWhitespace(text *util.Chars, cfg *Config) int {
	n := 0
	for i := 0; i < text.Length(); i++ {
		if !unicode.IsSpace(text.Get(i)) {
			break
		}
		n++
	}
	return n
}

func trailingWhitespace(text *util.Chars) int {
	n := 0
	for i := text.Length() - 1; i >= 0; i-- {
		if !unicode.IsSpace(text.Get(i)) {
			break
		}
		n++
	}
	return n
}

// PrefixMatch implements §4.6: as exact but only the first |N| characters
// after leading whitespace (unless N itself begins with whitespace).
func PrefixMatch(text *util.Chars, pattern []rune, cfg *Config, withPos bool, slab *util.Slab) (Result, *[]int) {
	m := len(pattern)
	if m == 0 {
		return Result{0, 0, 0}, posArray(withPos, 0)
	}
	lead := 0
	if !unicode.IsSpace(pattern[0]) {
		lead = leadingWhitespace(text, cfg)
	}
	if text.Length()-lead < m {
		return noMatch, nil
	}
	for i, want := range pattern {
		got, _ := classifyAndNormalize(text.Get(lead+i), cfg)
		if got != want {
			return noMatch, nil
		}
	}
	score, pos := calculateScore(text, pattern, lead, lead+m, cfg, withPos)
	return Result{lead, lead + m, score}, pos
}

// SuffixMatch implements §4.6: as exact but only the last |N| characters
// before trailing whitespace (unless N itself ends with whitespace).
func SuffixMatch(text *util.Chars, pattern []rune, cfg *Config, withPos bool, slab *util.Slab) (Result, *[]int) {
	m := len(pattern)
	trail := 0
	if m == 0 || !unicode.IsSpace(pattern[m-1]) {
		trail = trailingWhitespace(text)
	}
	trimmed := text.Length() - trail
	if m == 0 {
		return Result{trimmed, trimmed, 0}, posArray(withPos, 0)
	}
	sidx := trimmed - m
	if sidx < 0 {
		return noMatch, nil
	}
	for i, want := range pattern {
		got, _ := classifyAndNormalize(text.Get(sidx+i), cfg)
		if got != want {
			return noMatch, nil
		}
	}
	score, pos := calculateScore(text, pattern, sidx, trimmed, cfg, withPos)
	return Result{sidx, trimmed, score}, pos
}

// ExactMatch implements §4.6: compare H (trimmed of leading/trailing
// whitespace, unless N itself has matching edge whitespace) to N
// character-by-character under active folding.
func ExactMatch(text *util.Chars, pattern []rune, cfg *Config, withPos bool, slab *util.Slab) (Result, *[]int) {
	m := len(pattern)
	lead, trail := 0, 0
	if m == 0 || !unicode.IsSpace(pattern[0]) {
		lead = leadingWhitespace(text, cfg)
	}
	if m == 0 || !unicode.IsSpace(pattern[m-1]) {
		trail = trailingWhitespace(text)
	}
	sidx, eidx := lead, text.Length()-trail
	if eidx-sidx != m {
		return noMatch, nil
	}
	for i, want := range pattern {
		got, _ := classifyAndNormalize(text.Get(sidx+i), cfg)
		if got != want {
			return noMatch, nil
		}
	}
	score := (int(scoreMatch) + int(cfg.BonusBoundaryWhite)) * m
	score += int((bonusFirstCharMul - 1) * cfg.BonusBoundaryWhite)
	return Result{sidx, eidx, score}, posArrayRange(withPos, sidx, eidx)
}

func posArrayRange(withPos bool, sidx, eidx int) *[]int {
	if !withPos {
		return nil
	}
	pos := make([]int, 0, eidx-sidx)
	for i := sidx; i < eidx; i++ {
		pos = append(pos, i)
	}
	return &pos
}
