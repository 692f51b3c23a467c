package pattern

import (
	"github.com/fz-finder/fz/internal/store"
	"github.com/fz-finder/fz/internal/util"
)

// ScanChunk scores every item in chunk against p, consulting cache first
// when p is cacheable and the chunk is a full, immutable chunk. withPos
// requests index positions; a cache hit returns whatever positions were
// stored with the cached match set.
func ScanChunk(p *Pattern, chunk *store.Chunk, cache *ChunkCache, withPos bool, slab *util.Slab) []Match {
	key := ""
	if p.Cacheable() {
		key = p.CacheKey()
		if cached, ok := cache.Find(chunk, key); ok {
			return cached
		}
	}

	matches := make([]Match, 0, len(*chunk))
	for _, item := range *chunk {
		score, offsets, pos, ok := p.MatchText(item.MatchText, withPos, slab)
		if !ok {
			continue
		}
		item.SetOffsets(offsets)
		matches = append(matches, Match{Item: item, Score: score, Offsets: offsets, Pos: pos})
	}

	if key != "" {
		cache.Add(chunk, key, matches)
	}
	return matches
}
