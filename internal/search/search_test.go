package search

import (
	"testing"
	"time"

	"github.com/fz-finder/fz/internal/algo"
	"github.com/fz-finder/fz/internal/pattern"
	"github.com/fz-finder/fz/internal/store"
	"github.com/fz-finder/fz/internal/util"
)

func build(line []byte, id int) *store.Item {
	text := string(line)
	return &store.Item{ID: uint32(id), MatchText: text, DisplayText: text, Original: text}
}

func TestRerankRanksByScore(t *testing.T) {
	list := store.NewChunkList(build)
	for _, line := range []string{"foobar", "foxbar", "zzzzzz", "foo"} {
		list.Push([]byte(line))
	}

	loop := New(list, pattern.NewChunkCache(), Options{Config: algo.DefaultConfig()})
	loop.Submit("foo")
	loop.rerank(1)

	var result Result
	loop.Box().Wait(func(events *util.Events) {
		v, ok := (*events)[EvtResult]
		if !ok {
			t.Fatal("expected a result event")
		}
		result = v.(Result)
		events.Clear()
	})

	if result.ShowAll {
		t.Fatal("expected a non-empty query to score explicitly, not show-all")
	}
	if len(result.Entries) == 0 {
		t.Fatal("expected at least one match")
	}
	// "foobar" and "foo" both score 80; equal scores keep insertion order.
	if result.Entries[0].Item.MatchText != "foobar" {
		t.Fatalf("expected 'foobar' (tied with 'foo', earlier id) to rank first, got %q", result.Entries[0].Item.MatchText)
	}
}

func TestRerankEmptyQueryIsShowAll(t *testing.T) {
	list := store.NewChunkList(build)
	list.Push([]byte("anything"))

	loop := New(list, pattern.NewChunkCache(), Options{Config: algo.DefaultConfig()})
	loop.Submit("")
	loop.rerank(1)

	var result Result
	loop.Box().Wait(func(events *util.Events) {
		result = (*events)[EvtResult].(Result)
		events.Clear()
	})

	if !result.ShowAll {
		t.Fatal("expected empty query to trigger show-all mode")
	}
	if result.Total != 1 {
		t.Fatalf("expected total=1, got %d", result.Total)
	}
}

func TestRunStopsWhenDoneClosed(t *testing.T) {
	list := store.NewChunkList(build)
	loop := New(list, pattern.NewChunkCache(), Options{Config: algo.DefaultConfig()})

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		loop.Run(nil, done)
		close(finished)
	}()

	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return promptly after done is closed")
	}
}
