// Package render defines the external-collaborator contracts of
// spec.md §6: the sorted-results-in, intent-out Renderer boundary and the
// PreviewRunner a full terminal UI would drive. A full curses/tcell UI is
// out of scope (the teacher's src/tui, src/curses, src/terminal.go) — this
// package supplies only the minimal LineRenderer that -f/--filter and
// --print-query need, grounded on the teacher's core.go Run "filter" branch.
package render

import (
	"bufio"
	"io"

	"github.com/fz-finder/fz/internal/store"
)

// Intent is what the user asked the renderer to do with the current
// selection, reported back up to the driving loop.
type Intent int

const (
	IntentNone Intent = iota
	IntentQuit
	IntentAccept
	IntentAcceptAll
)

// Entry is one scored, ready-to-display result. Indices concatenates the
// positions of every non-negative atom, so it may repeat or overlap when
// several atoms match the same characters.
type Entry struct {
	Item    *store.Item
	Score   int
	Indices []int
}

// Renderer consumes a freshly sorted result set and reports user intent.
// A full interactive implementation would redraw the list and read key
// events; LineRenderer below implements only the non-interactive subset.
type Renderer interface {
	// Render is called once per published search.Result with the
	// current sorted entries. It returns the user's reported intent.
	Render(entries []Entry) Intent

	// Selected returns the items chosen so far (single entry, unless
	// --multi toggled more than one before an accept-all).
	Selected() []*store.Item
}

// PreviewRunner executes a preview command against one item's Original
// text. version lets the caller discard a result that arrived after a
// newer preview request superseded it (spec.md §5's cancellation rule).
type PreviewRunner interface {
	Run(original string, version int64) (output string, resultVersion int64, err error)
}

// LineRenderer implements Renderer for non-interactive modes (-f/--filter,
// --print-query): every render call writes each entry's Original text to
// Out, terminated by Delim, and always reports IntentNone — the driving
// loop (cmd/fz) decides when to stop based on EOF/throttle completion
// rather than any interactive key event.
type LineRenderer struct {
	Out   io.Writer
	Delim byte

	selected []*store.Item
}

// NewLineRenderer returns a LineRenderer writing to out with delim as the
// output record terminator (LF by default, NUL with --print0).
func NewLineRenderer(out io.Writer, delim byte) *LineRenderer {
	return &LineRenderer{Out: out, Delim: delim}
}

func (lr *LineRenderer) Render(entries []Entry) Intent {
	w := bufio.NewWriter(lr.Out)
	defer w.Flush()

	lr.selected = lr.selected[:0]
	for _, e := range entries {
		w.WriteString(e.Item.Original)
		w.WriteByte(lr.Delim)
		lr.selected = append(lr.selected, e.Item)
	}
	return IntentNone
}

func (lr *LineRenderer) Selected() []*store.Item { return lr.selected }
