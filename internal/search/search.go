// Package search implements spec.md §4.10's top-K re-rank loop: a single
// consumer goroutine that owns one matcher slab, polls the reader's
// EventBox for new chunks, re-scores on a query change, and publishes a
// sorted result snapshot. Grounded on the teacher's matcher.go Loop/Reset
// idiom and core.go's EventBox-driven coordination, redesigned per spec
// §5 to drop fzf's sharded worker-pool matcher in favor of the single
// consumer thread and single matrix slab §5 mandates.
package search

import (
	"sync"
	"time"

	"github.com/fz-finder/fz/internal/algo"
	"github.com/fz-finder/fz/internal/extract"
	"github.com/fz-finder/fz/internal/pattern"
	"github.com/fz-finder/fz/internal/reader"
	"github.com/fz-finder/fz/internal/store"
	"github.com/fz-finder/fz/internal/topk"
	"github.com/fz-finder/fz/internal/util"
)

// EvtResult fires on a Loop's own EventBox whenever a re-rank pass has
// published a fresh Result.
const EvtResult = iota

// throttle bounds how often a full re-rank pass may run during rapid
// typing or streaming (spec.md §4.10).
const throttle = 50 * time.Millisecond

// pollTimeout is the idle sleep between throttle checks (spec.md §4.10's
// "short input-event timeout").
const pollTimeout = 10 * time.Millisecond

const (
	slab16Size = 1 << 16
	slab32Size = 1 << 16
)

// Options configures how an item's match text is derived and scored.
type Options struct {
	Config    *algo.Config
	CaseMode  pattern.CaseMode
	Normalize bool
	Exact     bool
	Nth       []extract.Range
	Delimiter extract.Delimiter
	Bound     int // heap capacity; 0 selects topk.MaxResults
}

// Loop owns the matcher slab, the bounded heap, and the chunk cache
// across repeated re-rank passes over one input list. Each Loop owns its
// own slab, which is not safe for concurrent use (spec.md §5:
// "the matrix slab is owned by one matcher instance and is
// single-threaded").
type Loop struct {
	list  *store.ChunkList
	cache *pattern.ChunkCache
	opts  Options

	box     *util.EventBox
	version *util.AtomicInt
	slab    *util.Slab
	heap    *topk.Heap

	mutex      sync.Mutex
	query      string
	reqVersion int64
}

// New returns a re-rank Loop over list. cache may be shared across
// multiple Loops scanning the same List (its own mutex serializes
// access); pass a fresh pattern.NewChunkCache() otherwise.
func New(list *store.ChunkList, cache *pattern.ChunkCache, opts Options) *Loop {
	if opts.Config == nil {
		opts.Config = algo.DefaultConfig()
	}
	return &Loop{
		list:    list,
		cache:   cache,
		opts:    opts,
		box:     util.NewEventBox(),
		version: util.NewAtomicInt(0),
		slab:    util.MakeSlab(slab16Size, slab32Size),
		heap:    topk.New(opts.Bound),
	}
}

// Box returns the Loop's result EventBox; a renderer watches EvtResult
// on it to learn a new Result is ready.
func (l *Loop) Box() *util.EventBox { return l.box }

// Submit records a new query to re-rank against, bumping the request
// version so a Run pass already scoring a stale query can tell its
// result is superseded (spec.md §5's version-counter cancellation).
func (l *Loop) Submit(query string) int64 {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.query = query
	l.reqVersion = l.version.Incr()
	return l.reqVersion
}

func (l *Loop) snapshotRequest() (string, int64) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.query, l.reqVersion
}

// Result is one completed re-rank pass.
type Result struct {
	Version int64
	Query   string
	Pattern *pattern.Pattern
	Entries []topk.Entry
	ShowAll bool
	Total   int
}

// Run drives the consumer loop until the reader signals EvtReadFin and a
// final pass has scanned every chunk, or done is closed. It re-scores at
// most once per throttle window and otherwise sleeps pollTimeout, so it
// neither busy-waits nor starves input handling during heavy streaming.
func (l *Loop) Run(readerBox *util.EventBox, done <-chan struct{}) {
	lastScored := int64(-1)
	lastRerankAt := time.Time{}
	readerDone := readerBox == nil

	for {
		select {
		case <-done:
			return
		default:
		}

		if readerBox != nil {
			readerBox.Wait(func(events *util.Events) {
				if _, ok := (*events)[reader.EvtReadFin]; ok {
					readerDone = true
				}
				events.Clear()
			})
		}

		_, version := l.snapshotRequest()
		dueForThrottle := time.Since(lastRerankAt) >= throttle

		switch {
		case version != lastScored && dueForThrottle:
			l.rerank(version)
			lastScored = version
			lastRerankAt = time.Now()
		case readerDone && version == lastScored:
			// No further input is coming and the current query has
			// already been scored against every chunk seen so far, but
			// chunks may have arrived between the last rerank and EOF.
			l.rerank(version)
			return
		}

		time.Sleep(pollTimeout)
	}
}

func (l *Loop) rerank(version int64) Result {
	query, _ := l.snapshotRequest()
	p := pattern.New(query, l.opts.CaseMode, l.opts.Normalize, l.opts.Exact, l.opts.Config, l.opts.Nth, l.opts.Delimiter)

	l.heap.Reset()
	chunks, total := l.list.Snapshot()

	var result Result
	if p.IsEmpty() {
		result = Result{Version: version, Query: query, Pattern: p, ShowAll: true, Total: total}
	} else {
		for _, chunk := range chunks {
			matches := pattern.ScanChunk(p, chunk, l.cache, true, l.slab)
			for _, m := range matches {
				l.heap.Offer(topk.Entry{Item: m.Item, Score: m.Score, Indices: m.Pos})
			}
		}
		result = Result{Version: version, Query: query, Pattern: p, Entries: l.heap.Drain(), Total: total}
	}

	l.box.Set(EvtResult, result)
	return result
}

// RerankOnce runs a single synchronous re-rank pass for query and returns
// its Result directly, without requiring a caller to watch Box(). This is
// the path a non-interactive -f/--filter invocation uses: there is no
// renderer polling loop, just one pass over the fully-read input.
func (l *Loop) RerankOnce(query string) Result {
	version := l.Submit(query)
	return l.rerank(version)
}
