package pattern

import (
	"testing"

	"github.com/fz-finder/fz/internal/algo"
	"github.com/fz-finder/fz/internal/extract"
)

func TestParseOperators(t *testing.T) {
	groups := Parse("^src 'log !test foo$", CaseSmart, false, false)
	if len(groups) != 4 {
		t.Fatalf("expected 4 AND groups, got %d", len(groups))
	}
	if groups[0][0].Kind != Prefix || string(groups[0][0].Needle) != "src" {
		t.Fatalf("expected ^src to parse as a prefix atom, got %+v", groups[0][0])
	}
	if groups[1][0].Kind != Substring || string(groups[1][0].Needle) != "log" {
		t.Fatalf("expected 'log to parse as a substring atom, got %+v", groups[1][0])
	}
	if !groups[2][0].Negative || string(groups[2][0].Needle) != "test" {
		t.Fatalf("expected !test to parse as a negative atom, got %+v", groups[2][0])
	}
	if groups[3][0].Kind != Postfix || string(groups[3][0].Needle) != "foo" {
		t.Fatalf("expected foo$ to parse as a postfix atom, got %+v", groups[3][0])
	}
}

func TestParseEscapedOperatorsStayLiteral(t *testing.T) {
	groups := Parse(`\!foo bar\$ \^baz \'qux`, CaseSmart, false, false)
	if len(groups) != 4 {
		t.Fatalf("expected 4 AND groups, got %d", len(groups))
	}
	if groups[0][0].Kind != Fuzzy || groups[0][0].Negative || string(groups[0][0].Needle) != "!foo" {
		t.Fatalf("expected \\!foo to parse as literal '!foo', got %+v", groups[0][0])
	}
	if groups[1][0].Kind != Fuzzy || string(groups[1][0].Needle) != "bar$" {
		t.Fatalf("expected bar\\$ to parse as literal 'bar$', not a postfix upgrade, got %+v", groups[1][0])
	}
	if groups[2][0].Kind != Fuzzy || string(groups[2][0].Needle) != "^baz" {
		t.Fatalf("expected \\^baz to parse as literal '^baz', not a prefix atom, got %+v", groups[2][0])
	}
	if groups[3][0].Kind != Fuzzy || string(groups[3][0].Needle) != "'qux" {
		t.Fatalf("expected \\'qux to parse as literal ''qux', not a substring atom, got %+v", groups[3][0])
	}
}

func TestPatternMatchesAndRejects(t *testing.T) {
	p := New("^src 'log !test log$", CaseSmart, false, false, algo.DefaultConfig(), nil, extract.Delimiter{})

	if _, _, _, ok := p.MatchText("src/app.log", false, nil); !ok {
		t.Fatal("expected src/app.log to match")
	}
	if _, _, _, ok := p.MatchText("src/test.log", false, nil); ok {
		t.Fatal("expected src/test.log to be rejected by !test")
	}
	if _, _, _, ok := p.MatchText("app.src.log", false, nil); ok {
		t.Fatal("expected app.src.log to be rejected by ^src")
	}
}

func TestEmptyPatternMatchesEverythingWithZeroScore(t *testing.T) {
	p := New("", CaseSmart, false, false, algo.DefaultConfig(), nil, extract.Delimiter{})
	score, _, _, ok := p.MatchText("anything at all", false, nil)
	if !ok || score != 0 {
		t.Fatalf("expected empty pattern to match with score 0, got score=%d ok=%v", score, ok)
	}
}

func TestNegativeAtomNeverIncreasesScore(t *testing.T) {
	base := New("foo", CaseSmart, false, false, algo.DefaultConfig(), nil, extract.Delimiter{})
	negated := New("foo !bar", CaseSmart, false, false, algo.DefaultConfig(), nil, extract.Delimiter{})

	baseScore, _, _, ok := base.MatchText("foobaz", false, nil)
	if !ok {
		t.Fatal("expected base pattern to match foobaz")
	}
	negScore, _, _, ok := negated.MatchText("foobaz", false, nil)
	if !ok {
		t.Fatal("expected negated pattern to still match foobaz (no bar present)")
	}
	if negScore > baseScore {
		t.Fatalf("negative atom increased score: %d > %d", negScore, baseScore)
	}
}

func TestOrGroupSupplementedGrammar(t *testing.T) {
	p := New("foo | bar", CaseSmart, false, false, algo.DefaultConfig(), nil, extract.Delimiter{})
	if len(p.Groups) != 1 || len(p.Groups[0]) != 2 {
		t.Fatalf("expected a single OR-group of 2 atoms, got %+v", p.Groups)
	}
	if _, _, _, ok := p.MatchText("only bar here", false, nil); !ok {
		t.Fatal("expected 'bar' alternative to match")
	}
}
