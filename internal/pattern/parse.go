package pattern

import (
	"strings"
	"unicode"

	"github.com/fz-finder/fz/internal/algo"
)

// CaseMode selects how an atom's case sensitivity is decided.
type CaseMode int

const (
	CaseSmart CaseMode = iota
	CaseIgnore
	CaseRespect
)

// Escaped operator characters are swapped for private-use sentinel runes
// during tokenize so parseAtom's prefix/suffix operator checks (which look
// for the literal '!'/'^'/'\''/'$' bytes) never fire on them; restoreEscapes
// swaps them back to the literal character once operator parsing is done.
const (
	escBang   = ''
	escCaret  = ''
	escQuote  = ''
	escDollar = ''
)

var escSentinel = map[rune]rune{'!': escBang, '^': escCaret, '\'': escQuote, '$': escDollar}
var sentinelLiteral = map[rune]rune{escBang: '!', escCaret: '^', escQuote: '\'', escDollar: '$'}

// tokenize splits a query on unescaped whitespace; a backslash escapes the
// following character. Escaped operator characters are carried through as
// sentinel runes (see above) so they survive parseAtom as literal text;
// any other escaped character is just unescaped in place.
func tokenize(query string) []string {
	var tokens []string
	var cur strings.Builder
	escaped := false
	inToken := false
	flush := func() {
		if inToken {
			tokens = append(tokens, cur.String())
			cur.Reset()
			inToken = false
		}
	}
	for _, r := range query {
		if escaped {
			if s, ok := escSentinel[r]; ok {
				cur.WriteRune(s)
			} else {
				cur.WriteRune(r)
			}
			inToken = true
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if unicode.IsSpace(r) {
			flush()
			continue
		}
		cur.WriteRune(r)
		inToken = true
	}
	if escaped {
		cur.WriteRune('\\')
	}
	flush()
	return tokens
}

// restoreEscapes swaps tokenize's sentinel runes back to the literal
// operator character they stand in for, once parseAtom is done consulting
// the raw (unescaped-operator) prefixes/suffixes.
func restoreEscapes(s string) string {
	if !strings.ContainsAny(s, string([]rune{escBang, escCaret, escQuote, escDollar})) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if lit, ok := sentinelLiteral[r]; ok {
			b.WriteRune(lit)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseAtom implements §4.8 steps 1-6 for a single token as tokenize
// produced it: a backslash that escaped an operator character survives
// here as a sentinel rune, so the prefix/suffix checks below only ever
// fire on a real, unescaped operator. exact implements -e/--exact
// (spec.md §6): a bare token with no ^/'/$ operator defaults to substring
// instead of fuzzy.
func parseAtom(raw string, caseMode CaseMode, normalizeSmart, exact bool) (Atom, bool) {
	text := raw
	negative := false
	kind := Fuzzy
	if exact {
		kind = Substring
	}

	if strings.HasPrefix(text, "!") {
		negative = true
		text = text[1:]
	}

	if strings.HasPrefix(text, "^") {
		kind = Prefix
		text = text[1:]
	} else if strings.HasPrefix(text, "'") {
		kind = Substring
		text = text[1:]
	}

	if strings.HasSuffix(text, "$") {
		text = text[:len(text)-1]
		switch kind {
		case Fuzzy:
			kind = Postfix
		case Prefix:
			kind = Exact
		}
	}

	if negative && kind == Fuzzy {
		kind = Substring
	}

	text = restoreEscapes(text)

	if text == "" {
		return Atom{}, false
	}

	lower := strings.ToLower(text)
	ignoreCase := true
	switch caseMode {
	case CaseRespect:
		ignoreCase = false
	case CaseSmart:
		ignoreCase = text == lower
	}
	needleText := text
	if ignoreCase {
		needleText = lower
	}

	needle := []rune(needleText)
	normalize := normalizeSmart && lower == string(algo.NormalizeRunes([]rune(lower)))
	if normalize {
		needle = algo.NormalizeRunes(needle)
	}

	return Atom{
		Needle:     needle,
		Kind:       kind,
		Negative:   negative,
		IgnoreCase: ignoreCase,
		Normalize:  normalize,
	}, true
}

// Group is an OR-combined set of Atoms (the "|" supplemented grammar);
// Pattern AND-combines its Groups.
type Group []Atom

// Parse builds the ordered AND-of-OR atom groups for a query string.
// exact implements -e/--exact: bare tokens default to substring matching
// instead of fuzzy.
func Parse(query string, caseMode CaseMode, normalize, exact bool) []Group {
	tokens := tokenize(query)
	var groups []Group
	var cur Group
	afterBar := false
	startNewGroup := false

	for _, tok := range tokens {
		if tok == "|" && len(cur) > 0 && !afterBar {
			afterBar = true
			startNewGroup = false
			continue
		}
		afterBar = false

		atom, ok := parseAtom(tok, caseMode, normalize, exact)
		if !ok {
			continue
		}
		if startNewGroup {
			groups = append(groups, cur)
			cur = nil
		}
		cur = append(cur, atom)
		startNewGroup = true
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}
