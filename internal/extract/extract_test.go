package extract

import "testing"

func TestParseRange(t *testing.T) {
	cases := []struct {
		in         string
		begin, end int
		ok         bool
	}{
		{"3", 3, 3, true},
		{"1", rangeEllipsis, 1, true},
		{"-1", -1, rangeEllipsis, true},
		{"2..4", 2, 4, true},
		{"..3", rangeEllipsis, 3, true},
		{"3..", 3, rangeEllipsis, true},
		{"..", rangeEllipsis, rangeEllipsis, true},
		{"abc", 0, 0, false},
		{"0", 0, 0, false},
	}
	for _, c := range cases {
		r, ok := ParseRange(c.in)
		if ok != c.ok {
			t.Fatalf("ParseRange(%q) ok=%v, want %v", c.in, ok, c.ok)
		}
		if ok && (r.Begin != c.begin || r.End != c.end) {
			t.Fatalf("ParseRange(%q) = %+v, want {%d %d}", c.in, r, c.begin, c.end)
		}
	}
}

func TestTokenizeAwk(t *testing.T) {
	tokens := Tokenize("one two  three", Delimiter{})
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	want := []string{"one ", "two  ", "three"}
	for i, tok := range tokens {
		if tok.Text.ToString() != want[i] {
			t.Fatalf("token %d = %q, want %q", i, tok.Text.ToString(), want[i])
		}
	}
}

func TestTransformFieldRange(t *testing.T) {
	tokens := Tokenize("one two three four", Delimiter{})
	ranges, ok := ParseRanges("2..3")
	if !ok {
		t.Fatal("ParseRanges failed")
	}
	out := Transform(tokens, ranges)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged field, got %d", len(out))
	}
	if got, want := out[0].Text.ToString(), "two three "; got != want {
		t.Fatalf("Transform merged = %q, want %q", got, want)
	}
}

func TestTransformNegativeIndex(t *testing.T) {
	tokens := Tokenize("a b c", Delimiter{})
	ranges, ok := ParseRanges("-1")
	if !ok {
		t.Fatal("ParseRanges failed")
	}
	out := Transform(tokens, ranges)
	if out[0].Text.ToString() != "c" {
		t.Fatalf("Transform(-1) = %q, want %q", out[0].Text.ToString(), "c")
	}
}
