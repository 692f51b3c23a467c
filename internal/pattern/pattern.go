package pattern

import (
	"strings"

	"github.com/fz-finder/fz/internal/algo"
	"github.com/fz-finder/fz/internal/extract"
	"github.com/fz-finder/fz/internal/store"
	"github.com/fz-finder/fz/internal/util"
)

// Pattern is a parsed query: an AND of OR-groups of Atoms (spec.md §3/§4.8,
// with OR-groups a supplemented addition the grammar doesn't forbid).
type Pattern struct {
	Groups []Group
	Config *algo.Config

	Nth       []extract.Range
	Delimiter extract.Delimiter

	text      string
	cacheable bool
	cacheKey  string
}

// New builds a Pattern from a query string. nth/delimiter configure the
// field projection applied to an item's MatchText before scoring. exact
// implements -e/--exact: bare tokens default to substring matching.
func New(query string, caseMode CaseMode, normalizeSmart, exact bool, cfg *algo.Config, nth []extract.Range, delim extract.Delimiter) *Pattern {
	groups := Parse(query, caseMode, normalizeSmart, exact)
	p := &Pattern{Groups: groups, Config: cfg, Nth: nth, Delimiter: delim, text: query}
	p.cacheable, p.cacheKey = buildCacheKey(groups)
	return p
}

// IsEmpty reports whether the pattern matches every item with score 0 —
// the "show-all" fast path §4.10 special-cases.
func (p *Pattern) IsEmpty() bool {
	return len(p.Groups) == 0
}

func (p *Pattern) String() string { return p.text }

// CacheKey returns the key under which a full, cacheable match result for
// this pattern may be stored against a given chunk (empty when the
// pattern isn't eligible — negated or OR'd atoms make a chunk's match set
// depend on more than a single needle).
func (p *Pattern) CacheKey() string { return p.cacheKey }

// Cacheable reports whether CacheKey is meaningful for this pattern.
func (p *Pattern) Cacheable() bool { return p.cacheable }

func buildCacheKey(groups []Group) (bool, string) {
	var needles []string
	for _, g := range groups {
		if len(g) != 1 || g[0].Negative {
			return false, ""
		}
		needles = append(needles, string(g[0].Needle))
	}
	return true, strings.Join(needles, "\t")
}

// tokensFor splits and projects an item's match text into scoring tokens,
// applying --nth if configured.
func (p *Pattern) tokensFor(matchText string) []extract.Token {
	if len(p.Nth) == 0 {
		chars := util.ToChars([]byte(matchText))
		return []extract.Token{{Text: &chars, PrefixLength: 0}}
	}
	tokens := extract.Tokenize(matchText, p.Delimiter)
	return extract.Transform(tokens, p.Nth)
}

// matchKind runs one Atom against every projected token, taking the first
// token that matches (mirrors the teacher's Pattern.iter: a needle matches
// somewhere in the whole line, token prefix lengths translate local
// offsets back into the original line's codepoint space).
func matchKind(atom Atom, tokens []extract.Token, cfg *algo.Config, withPos bool, slab *util.Slab) (store.Offset, int, *[]int, bool) {
	for _, tok := range tokens {
		result, pos, ok := atom.match(tok.Text, cfg, withPos, slab)
		if !ok {
			continue
		}
		offset := store.Offset{
			int32(result.Start) + tok.PrefixLength,
			int32(result.End) + tok.PrefixLength,
		}
		if pos != nil {
			for i := range *pos {
				(*pos)[i] += int(tok.PrefixLength)
			}
		}
		return offset, result.Score, pos, true
	}
	return store.Offset{}, 0, nil, false
}

// MatchText scores matchText against the pattern, returning ok=false on
// no-match (a negative atom group with no counterpart, or any AND'd group
// entirely failing).
func (p *Pattern) MatchText(matchText string, withPos bool, slab *util.Slab) (score int, offsets []store.Offset, pos []int, ok bool) {
	if p.IsEmpty() {
		return 0, nil, nil, true
	}

	tokens := p.tokensFor(matchText)

	for _, group := range p.Groups {
		groupMatched := false
		var groupOffset store.Offset
		var groupScore int

		for _, atom := range group {
			offset, atomScore, atomPos, matched := matchKind(atom, tokens, p.Config, withPos, slab)
			if matched {
				if atom.Negative {
					// The excluded needle is present: this atom fails to
					// rule the item out, try the next in the OR group.
					continue
				}
				groupOffset, groupScore = offset, atomScore
				groupMatched = true
				if withPos {
					if atomPos != nil {
						pos = append(pos, *atomPos...)
					} else {
						for i := offset[0]; i < offset[1]; i++ {
							pos = append(pos, int(i))
						}
					}
				}
				break
			} else if atom.Negative {
				groupOffset, groupScore = store.Offset{}, 0
				groupMatched = true
				continue
			}
		}

		if !groupMatched {
			return 0, nil, nil, false
		}
		offsets = append(offsets, groupOffset)
		score += groupScore
	}

	return score, offsets, pos, true
}
