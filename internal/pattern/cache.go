package pattern

import (
	"sync"

	"github.com/fz-finder/fz/internal/store"
)

// Match is one item's cached scoring result for a cacheable pattern.
type Match struct {
	Item    *store.Item
	Score   int
	Offsets []store.Offset
	Pos     []int
}

// matchList is the per-pattern result cached for one chunk.
type matchList map[string][]Match

// ChunkCache memoizes a cacheable pattern's full match set per chunk, so
// a repeated query against an unchanged (full, immutable) chunk skips
// re-scoring it entirely.
type ChunkCache struct {
	mutex sync.Mutex
	byKey map[*store.Chunk]matchList
}

// NewChunkCache returns an empty ChunkCache.
func NewChunkCache() *ChunkCache {
	return &ChunkCache{byKey: make(map[*store.Chunk]matchList)}
}

// Add records matched items for (chunk, key). A no-op for a non-full
// chunk (still mutable — its match set would go stale) or an empty key
// (pattern declined caching).
func (cc *ChunkCache) Add(chunk *store.Chunk, key string, matches []Match) {
	if len(key) == 0 || !chunk.IsFull() {
		return
	}
	cc.mutex.Lock()
	defer cc.mutex.Unlock()
	list, ok := cc.byKey[chunk]
	if !ok {
		list = make(matchList)
		cc.byKey[chunk] = list
	}
	list[key] = matches
}

// Find looks up a cached match set, same eligibility rules as Add.
func (cc *ChunkCache) Find(chunk *store.Chunk, key string) ([]Match, bool) {
	if len(key) == 0 || !chunk.IsFull() {
		return nil, false
	}
	cc.mutex.Lock()
	defer cc.mutex.Unlock()
	list, ok := cc.byKey[chunk]
	if !ok {
		return nil, false
	}
	matches, ok := list[key]
	return matches, ok
}
