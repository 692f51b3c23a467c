// Package pattern implements the query grammar of spec.md §4.8: tokenize
// a query string into atoms, evaluate each against an item's match text,
// and combine per-atom results into a total score and index set.
package pattern

import (
	"github.com/fz-finder/fz/internal/algo"
	"github.com/fz-finder/fz/internal/util"
)

// Kind is one of the five match kinds an Atom's needle is scored with.
type Kind int

const (
	Fuzzy Kind = iota
	Substring
	Prefix
	Postfix
	Exact
)

func (k Kind) matchFunc() algo.MatchFunc {
	switch k {
	case Substring:
		return algo.SubstringMatch
	case Prefix:
		return algo.PrefixMatch
	case Postfix:
		return algo.SuffixMatch
	case Exact:
		return algo.ExactMatch
	default:
		return algo.FuzzyMatch
	}
}

// Atom is one tokenized pattern component (spec.md §3).
type Atom struct {
	Needle     []rune
	Kind       Kind
	Negative   bool
	IgnoreCase bool
	Normalize  bool
}

func (a Atom) configFor(base *algo.Config) *algo.Config {
	cfg := *base
	cfg.IgnoreCase = a.IgnoreCase
	cfg.Normalize = a.Normalize
	return &cfg
}

// match runs the atom against a single haystack view, returning ok=false
// when the underlying matcher found no match.
func (a Atom) match(text *util.Chars, base *algo.Config, withPos bool, slab *util.Slab) (algo.Result, *[]int, bool) {
	if len(a.Needle) == 0 {
		return algo.Result{}, nil, false
	}
	cfg := a.configFor(base)
	result, pos := a.Kind.matchFunc()(text, a.Needle, cfg, withPos, slab)
	return result, pos, result.Start >= 0
}
