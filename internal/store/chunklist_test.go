package store

import (
	"fmt"
	"testing"
)

func build(line []byte, id int) *Item {
	return &Item{ID: uint32(id), MatchText: string(line), DisplayText: string(line), Original: string(line)}
}

func TestChunkListSnapshotIsolation(t *testing.T) {
	cl := NewChunkList(build)

	snapshot, count := cl.Snapshot()
	if len(snapshot) != 0 || count != 0 {
		t.Fatal("expected an empty snapshot before any push")
	}

	cl.Push([]byte("hello"))
	cl.Push([]byte("world"))

	// The snapshot taken before the pushes must not observe them.
	if len(snapshot) != 0 {
		t.Fatal("earlier snapshot mutated by later pushes")
	}

	snapshot, count = cl.Snapshot()
	if len(snapshot) != 1 || count != 2 {
		t.Fatalf("got %d chunks, %d items; want 1 chunk, 2 items", len(snapshot), count)
	}
	chunk := *snapshot[0]
	if chunk[0].MatchText != "hello" || chunk[1].MatchText != "world" {
		t.Fatal("unexpected item contents")
	}
	if chunk.IsFull() {
		t.Fatal("chunk should not be full yet")
	}
}

func TestChunkListFlushesAtChunkSize(t *testing.T) {
	cl := NewChunkList(build)
	for i := 0; i < ChunkSize*2; i++ {
		cl.Push([]byte(fmt.Sprintf("item %d", i)))
	}
	cl.Push([]byte("tail-1"))
	cl.Push([]byte("tail-2"))

	snapshot, count := cl.Snapshot()
	if len(snapshot) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(snapshot))
	}
	if !snapshot[0].IsFull() || !snapshot[1].IsFull() {
		t.Fatal("expected the first two chunks to be full")
	}
	if snapshot[2].IsFull() || len(*snapshot[2]) != 2 {
		t.Fatalf("expected the tail chunk to hold 2 items, got %d", len(*snapshot[2]))
	}
	if count != ChunkSize*2+2 {
		t.Fatalf("got count %d, want %d", count, ChunkSize*2+2)
	}
	if CountItems(snapshot) != count {
		t.Fatalf("CountItems() = %d, want %d", CountItems(snapshot), count)
	}
}

func TestItemRankPrefersShorterMatch(t *testing.T) {
	short := &Item{ID: 1, MatchText: "ab"}
	short.SetOffsets([]Offset{{0, 2}})

	long := &Item{ID: 2, MatchText: "axxxb"}
	long.SetOffsets([]Offset{{0, 5}})

	if !short.ComputeRank().Less(long.ComputeRank()) {
		t.Fatal("expected the shorter match span to rank first")
	}
}
