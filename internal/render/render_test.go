package render

import (
	"bytes"
	"testing"

	"github.com/fz-finder/fz/internal/store"
)

func TestLineRendererWritesOriginalWithDelimiter(t *testing.T) {
	var buf bytes.Buffer
	lr := NewLineRenderer(&buf, '\n')

	entries := []Entry{
		{Item: &store.Item{Original: "foo.go"}, Score: 10},
		{Item: &store.Item{Original: "bar.go"}, Score: 5},
	}

	if intent := lr.Render(entries); intent != IntentNone {
		t.Fatalf("expected IntentNone from a non-interactive renderer, got %v", intent)
	}
	if got, want := buf.String(), "foo.go\nbar.go\n"; got != want {
		t.Fatalf("Render() wrote %q, want %q", got, want)
	}
	if len(lr.Selected()) != 2 {
		t.Fatalf("expected 2 selected items, got %d", len(lr.Selected()))
	}
}

func TestLineRendererNulDelimiter(t *testing.T) {
	var buf bytes.Buffer
	lr := NewLineRenderer(&buf, 0)
	lr.Render([]Entry{{Item: &store.Item{Original: "a"}}})

	if got, want := buf.String(), "a\x00"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
