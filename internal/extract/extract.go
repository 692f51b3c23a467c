// Package extract implements field splitting and range projection, used
// to build an item's MatchText (--nth) and DisplayText (--with-nth) from
// a raw input line.
package extract

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/fz-finder/fz/internal/util"
)

const rangeEllipsis = 0

// Range is a parsed --nth/--with-nth field range: 1-based, negative counts
// from the end, and either bound may be the open ellipsis.
type Range struct {
	Begin int
	End   int
}

// Token is one field produced by Tokenize, carrying the codepoint offset
// at which it started in the original line (needed to keep highlight
// indices correct after projection).
type Token struct {
	Text         *util.Chars
	PrefixLength int32
}

// Delimiter selects how Tokenize splits a line: AWK-style whitespace runs
// when both fields are zero, a literal separator, or a regular expression.
type Delimiter struct {
	Regex *regexp.Regexp
	Str   *string
}

func newRange(begin, end int) Range {
	if begin == 1 {
		begin = rangeEllipsis
	}
	if end == -1 {
		end = rangeEllipsis
	}
	return Range{begin, end}
}

// ParseRange parses one comma-separated --nth component: "a", "a..b",
// "..b", "a..", or "..".
func ParseRange(s string) (Range, bool) {
	switch {
	case s == "..":
		return newRange(rangeEllipsis, rangeEllipsis), true
	case strings.HasPrefix(s, ".."):
		end, err := strconv.Atoi(s[2:])
		if err != nil || end == 0 {
			return Range{}, false
		}
		return newRange(rangeEllipsis, end), true
	case strings.HasSuffix(s, ".."):
		begin, err := strconv.Atoi(s[:len(s)-2])
		if err != nil || begin == 0 {
			return Range{}, false
		}
		return newRange(begin, rangeEllipsis), true
	case strings.Contains(s, ".."):
		parts := strings.SplitN(s, "..", 2)
		if len(parts) != 2 {
			return Range{}, false
		}
		begin, err1 := strconv.Atoi(parts[0])
		end, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || begin == 0 || end == 0 {
			return Range{}, false
		}
		return newRange(begin, end), true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return Range{}, false
	}
	return newRange(n, n), true
}

// ParseRanges parses a comma-separated --nth/--with-nth spec in full.
func ParseRanges(spec string) ([]Range, bool) {
	var ranges []Range
	for _, part := range strings.Split(spec, ",") {
		r, ok := ParseRange(part)
		if !ok {
			return nil, false
		}
		ranges = append(ranges, r)
	}
	return ranges, true
}

func withPrefixLengths(fields []string, begin int) []Token {
	tokens := make([]Token, len(fields))
	prefixLength := begin
	for i, f := range fields {
		chars := util.ToChars([]byte(f))
		tokens[i] = Token{Text: &chars, PrefixLength: int32(prefixLength)}
		prefixLength += chars.Length()
	}
	return tokens
}

const (
	awkNil = iota
	awkWord
	awkSpace
)

// awkTokenizer splits on runs of tab/space the way POSIX awk's default
// field splitting does, returning the fields and the leading whitespace
// codepoint count (folded into the first token's prefix length).
func awkTokenizer(input string) ([]string, int) {
	var fields []string
	leading := 0
	state := awkNil
	begin, end := 0, 0
	for i := 0; i < len(input); i++ {
		white := input[i] == '\t' || input[i] == ' '
		switch state {
		case awkNil:
			if white {
				leading++
			} else {
				state, begin, end = awkWord, i, i+1
			}
		case awkWord:
			end = i + 1
			if white {
				state = awkSpace
			}
		case awkSpace:
			if white {
				end = i + 1
			} else {
				fields = append(fields, input[begin:end])
				state, begin, end = awkWord, i, i+1
			}
		}
	}
	if begin < end {
		fields = append(fields, input[begin:end])
	}
	return fields, leading
}

// Tokenize splits text per the given delimiter: AWK-style when Delimiter
// is the zero value, a literal split (keeping the delimiter on the left
// token, as strings.SplitAfter does) otherwise, or a regex split.
func Tokenize(text string, delim Delimiter) []Token {
	if delim.Str == nil && delim.Regex == nil {
		fields, leading := awkTokenizer(text)
		return withPrefixLengths(fields, leading)
	}
	if delim.Str != nil {
		return withPrefixLengths(strings.SplitAfter(text, *delim.Str), 0)
	}

	var fields []string
	for len(text) > 0 {
		loc := delim.Regex.FindStringIndex(text)
		if len(loc) < 2 {
			loc = []int{0, len(text)}
		}
		last := util.Max(loc[1], 1)
		fields = append(fields, text[:last])
		text = text[last:]
	}
	return withPrefixLengths(fields, 0)
}

func joinTokens(tokens []Token) string {
	var out bytes.Buffer
	for _, t := range tokens {
		out.WriteString(t.Text.ToString())
	}
	return out.String()
}

// Transform projects tokens through a --nth/--with-nth range spec, merging
// multi-field ranges and carrying forward the earliest selected field's
// prefix length so highlight offsets still line up with the original line.
func Transform(tokens []Token, ranges []Range) []Token {
	out := make([]Token, len(ranges))
	n := len(tokens)

	for outIdx, r := range ranges {
		var parts []*util.Chars
		minIdx := 0

		if r.Begin == r.End {
			idx := r.Begin
			if idx == rangeEllipsis {
				joined := util.ToChars([]byte(joinTokens(tokens)))
				parts = append(parts, &joined)
			} else {
				if idx < 0 {
					idx += n + 1
				}
				if idx >= 1 && idx <= n {
					minIdx = idx - 1
					parts = append(parts, tokens[idx-1].Text)
				}
			}
		} else {
			var begin, end int
			switch {
			case r.Begin == rangeEllipsis:
				begin, end = 1, r.End
				if end < 0 {
					end += n + 1
				}
			case r.End == rangeEllipsis:
				begin, end = r.Begin, n
				if begin < 0 {
					begin += n + 1
				}
			default:
				begin, end = r.Begin, r.End
				if begin < 0 {
					begin += n + 1
				}
				if end < 0 {
					end += n + 1
				}
			}
			minIdx = util.Max(0, begin-1)
			for idx := begin; idx <= end; idx++ {
				if idx >= 1 && idx <= n {
					parts = append(parts, tokens[idx-1].Text)
				}
			}
		}

		var merged util.Chars
		switch len(parts) {
		case 0:
			merged = util.ToChars(nil)
		case 1:
			merged = *parts[0]
		default:
			var buf bytes.Buffer
			for _, p := range parts {
				buf.WriteString(p.ToString())
			}
			merged = util.ToChars(buf.Bytes())
		}

		var prefixLength int32
		if minIdx < n {
			prefixLength = tokens[minIdx].PrefixLength
		}
		out[outIdx] = Token{Text: &merged, PrefixLength: prefixLength}
	}
	return out
}
