package algo

import (
	"testing"

	"github.com/fz-finder/fz/internal/util"
)

func assertMatch(t *testing.T, fn MatchFunc, haystack, needle string, wantMatch bool) Result {
	t.Helper()
	text := util.ToChars([]byte(haystack))
	cfg := DefaultConfig()
	result, _ := fn(&text, []rune(needle), cfg, false, nil)
	if wantMatch && result.Start < 0 {
		t.Fatalf("%q against %q: expected match, got none", needle, haystack)
	}
	if !wantMatch && result.Start >= 0 {
		t.Fatalf("%q against %q: expected no match, got %+v", needle, haystack, result)
	}
	return result
}

func TestFuzzyMatchBasic(t *testing.T) {
	text := util.ToChars([]byte("hello world"))
	cfg := DefaultConfig()
	result, pos := FuzzyMatch(&text, []rune("hlo"), cfg, true, nil)
	if result.Start < 0 {
		t.Fatalf("expected a match")
	}
	if pos == nil || len(*pos) != 3 {
		t.Fatalf("expected 3 indices, got %v", pos)
	}
	for i := 1; i < len(*pos); i++ {
		if (*pos)[i] <= (*pos)[i-1] {
			t.Fatalf("indices not strictly increasing: %v", *pos)
		}
	}
}

func TestFuzzyMatchForceV1UsesGreedyResult(t *testing.T) {
	text := util.ToChars([]byte("hello world"))
	cfg := DefaultConfig()
	cfg.ForceV1 = true
	result, pos := FuzzyMatch(&text, []rune("hlo"), cfg, true, nil)
	greedy, greedyPos := fuzzyMatchGreedy(&text, []rune("hlo"), cfg, true)
	if result.Start != greedy.Start || result.End != greedy.End || result.Score != greedy.Score {
		t.Fatalf("expected ForceV1 to route through fuzzyMatchGreedy, got %+v want %+v", result, greedy)
	}
	if len(*pos) != len(*greedyPos) {
		t.Fatalf("expected matching position counts, got %v vs %v", *pos, *greedyPos)
	}
}

func TestFuzzyMatchOrderRequired(t *testing.T) {
	assertMatch(t, FuzzyMatch, "cba", "abc", false)
}

func TestFuzzyVsSubstringScore(t *testing.T) {
	text := util.ToChars([]byte("fuzzy-blurry-finder"))
	cfg := DefaultConfig()
	needle := []rune("ff")
	fuzzy, _ := FuzzyMatch(&text, needle, cfg, false, nil)
	sub, _ := SubstringMatch(&text, needle, cfg, false, nil)
	if sub.Start >= 0 && fuzzy.Score < sub.Score {
		t.Fatalf("fuzzy score %d should be >= substring score %d", fuzzy.Score, sub.Score)
	}
}

func TestPrefixMatch(t *testing.T) {
	assertMatch(t, PrefixMatch, "src/app.log", "src", true)
	assertMatch(t, PrefixMatch, "app.src.log", "src", false)
}

func TestSuffixMatch(t *testing.T) {
	assertMatch(t, SuffixMatch, "src/app.log", "log", true)
	assertMatch(t, SuffixMatch, "src/app.log", "app", false)
}

func TestExactMatch(t *testing.T) {
	assertMatch(t, ExactMatch, "foobar", "foobar", true)
	assertMatch(t, ExactMatch, "  foobar  ", "foobar", true)
	assertMatch(t, ExactMatch, "foobar", "foo", false)
}

func TestSmartCaseViaIgnoreCase(t *testing.T) {
	text := util.ToChars([]byte("FooBar"))
	cfg := DefaultConfig()
	cfg.IgnoreCase = true
	if result, _ := FuzzyMatch(&text, []rune("foo"), cfg, false, nil); result.Start < 0 {
		t.Fatalf("expected ignore-case match")
	}

	cfg.IgnoreCase = false
	if result, _ := FuzzyMatch(&text, []rune("Foo"), cfg, false, nil); result.Start < 0 {
		t.Fatalf("expected case-sensitive match for exact-cased needle")
	}
	if result, _ := FuzzyMatch(&text, []rune("foo"), cfg, false, nil); result.Start >= 0 {
		t.Fatalf("expected case-sensitive mismatch, got %+v", result)
	}
}

func TestCamelCaseBonusPrefersBoundaries(t *testing.T) {
	text := util.ToChars([]byte("FooBarBaz"))
	cfg := DefaultConfig()
	cfg.IgnoreCase = false
	result, pos := FuzzyMatch(&text, []rune("FBB"), cfg, true, nil)
	if result.Start < 0 || pos == nil || len(*pos) != 3 {
		t.Fatalf("expected a 3-position camelCase acronym match, got %+v %v", result, pos)
	}
	if (*pos)[0] != 0 || (*pos)[1] != 3 || (*pos)[2] != 6 {
		t.Fatalf("expected indices at word starts 0,3,6, got %v", *pos)
	}
}

func TestNeedleLongerThanHaystack(t *testing.T) {
	assertMatch(t, FuzzyMatch, "not a match", "xyzxyzxyzxyz", false)
}

func TestSingleCharacterMatch(t *testing.T) {
	assertMatch(t, FuzzyMatch, "banana", "n", true)
}

func TestIndexByteTwo(t *testing.T) {
	cases := []struct {
		s          string
		b1, b2     byte
		wantHasIdx bool
	}{
		{"hello", 'l', 'z', true},
		{"hello", 'z', 'q', false},
		{"Hello", 'h', 'l', true},
	}
	for _, c := range cases {
		idx := indexByteTwo([]byte(c.s), c.b1, c.b2)
		if (idx >= 0) != c.wantHasIdx {
			t.Fatalf("indexByteTwo(%q, %q, %q) = %d", c.s, c.b1, c.b2, idx)
		}
	}
}
