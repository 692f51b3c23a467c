package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fz-finder/fz/internal/algo"
	"github.com/fz-finder/fz/internal/extract"
	"github.com/fz-finder/fz/internal/pattern"
	"github.com/fz-finder/fz/internal/reader"
	"github.com/fz-finder/fz/internal/render"
	"github.com/fz-finder/fz/internal/search"
	"github.com/fz-finder/fz/internal/store"
	"github.com/fz-finder/fz/internal/util"
	"github.com/fz-finder/fz/internal/walk"
)

// Exit codes, spec.md §6: 0 selection(s) produced, 1 no selection, 130
// user-aborted (reserved: this minimal non-interactive core never
// produces it itself, since SIGINT cancellation is an interactive-UI
// concern out of this module's scope), 2 usage error.
const (
	exitOK       = 0
	exitNoMatch  = 1
	exitAborted  = 130
	exitUsageErr = 2
)

func main() {
	opts, err := ParseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "fz:", err)
		util.Exit(exitUsageErr)
		return
	}

	query := opts.Query
	if opts.FilterSet {
		query = opts.Filter
	}

	list := store.NewChunkList(itemBuilder(opts))

	if util.IsTty() {
		// No piped input: fall back to the default directory-walk source
		// (spec.md §6's stdin dispatch; walking "." is what a TTY-attached
		// invocation with no explicit source falls back to).
		if err := walk.Run(".", list); err != nil {
			fmt.Fprintln(os.Stderr, "fz: walk error:", err)
			util.Exit(exitUsageErr)
			return
		}
	} else {
		readDelim := byte('\n')
		if opts.Read0 {
			readDelim = 0
		}

		rd := reader.New(os.Stdin, readDelim, list, nil)
		rd.Run()
		if err := rd.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "fz: read error:", err)
			util.Exit(exitUsageErr)
			return
		}
	}

	matchConfig := algo.DefaultConfig()
	matchConfig.ForceV1 = opts.ForceV1

	loop := search.New(list, pattern.NewChunkCache(), search.Options{
		Config:    matchConfig,
		CaseMode:  opts.CaseMode,
		Normalize: !opts.Literal,
		Exact:     opts.Exact,
		Nth:       opts.Nth,
		Delimiter: opts.Delimiter,
	})
	result := loop.RerankOnce(query)

	outDelim := byte('\n')
	if opts.Print0 {
		outDelim = 0
	}
	lr := render.NewLineRenderer(os.Stdout, outDelim)

	if opts.PrintQuery {
		fmt.Fprintf(os.Stdout, "%s%c", query, outDelim)
	}

	entries := collectEntries(list, result, opts.HeaderLines)
	lr.Render(entries)

	if len(entries) == 0 {
		util.Exit(exitNoMatch)
		return
	}
	util.Exit(exitOK)
}

// collectEntries turns a search.Result into the renderer's sorted entry
// list, printing the first headerLines items unconditionally ahead of the
// scored matches and dropping them from the scored matches (spec.md §6:
// "--header-lines=N: First N input items are headers, never matched").
func collectEntries(list *store.ChunkList, result search.Result, headerLines int) []render.Entry {
	var entries []render.Entry

	if headerLines > 0 {
		chunks, _ := list.Snapshot()
	headerScan:
		for _, chunk := range chunks {
			for _, item := range *chunk {
				if int(item.ID) >= headerLines {
					break headerScan
				}
				entries = append(entries, render.Entry{Item: item})
			}
		}
	}

	if result.ShowAll {
		chunks, _ := list.Snapshot()
		for _, chunk := range chunks {
			for _, item := range *chunk {
				if int(item.ID) < headerLines {
					continue
				}
				entries = append(entries, render.Entry{Item: item})
			}
		}
		return entries
	}

	for _, e := range result.Entries {
		if int(e.Item.ID) < headerLines {
			continue
		}
		entries = append(entries, render.Entry{Item: e.Item, Score: e.Score, Indices: e.Indices})
	}
	return entries
}

// itemBuilder turns one raw input line into a store.Item, applying the
// --nth/--with-nth field projections to derive match_text/display_text.
func itemBuilder(opts *Options) store.ItemBuilder {
	return func(line []byte, id int) *store.Item {
		original := string(line)
		matchText := original
		displayText := original

		if len(opts.Nth) > 0 {
			tokens := extract.Tokenize(original, opts.Delimiter)
			matchText = joinTokenTexts(extract.Transform(tokens, opts.Nth))
		}
		if len(opts.WithNth) > 0 {
			tokens := extract.Tokenize(original, opts.Delimiter)
			displayText = joinTokenTexts(extract.Transform(tokens, opts.WithNth))
		}

		return &store.Item{
			ID:          uint32(id),
			MatchText:   matchText,
			DisplayText: displayText,
			Original:    original,
		}
	}
}

func joinTokenTexts(tokens []extract.Token) string {
	var out []byte
	for i, tok := range tokens {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, strings.TrimRight(tok.Text.ToString(), " \t")...)
	}
	return string(out)
}
