// Package reader implements the single background producer of spec.md
// §4.9: it owns a growable slab, reads the input in 64 KiB bursts, splits
// on the configured line delimiter, and publishes completed lines into a
// store.ChunkList. Grounded on the teacher's reader.go/core.go event-loop
// wiring (src/core.go, src/reader.go in the original checkout), adapted
// from fzf's byte-channel handoff to the arena-chunked ChunkList this
// module's search loop scans directly.
package reader

import (
	"bufio"
	"bytes"
	"io"
	"sync"

	"github.com/fz-finder/fz/internal/store"
)

// Event types published on an EventBox by a Reader's caller; the Reader
// itself only calls notify() and leaves event-type semantics to the
// caller's EventBox wiring (see internal/search).
const (
	EvtReadNew = iota
	EvtReadFin
)

// slabSize is the reader's working buffer; spec.md §4.9 pins it at 128 KiB
// and caps each underlying read at readSize (64 KiB) so a single read
// never more than doubles outstanding unprocessed bytes.
const (
	slabSize = 128 * 1024
	readSize = 64 * 1024
)

// Reader owns the producer side of the pipeline: it reads src, splits on
// delim, and pushes each line into List via List.Push. Run may be called in
// its own goroutine; Stop cancels it cooperatively.
type Reader struct {
	src   io.Reader
	delim byte
	List  *store.ChunkList

	mutex sync.Mutex
	done  bool
	err   error

	finished chan struct{}
	notify   func()
}

// New returns a Reader that reads src, splitting on delim (use '\n' for
// LF-delimited input or 0 for NUL-delimited --read0 input), publishing
// into list. notify is called (optionally) after every published chunk
// and once more on exit; pass nil if the caller only polls List directly.
func New(src io.Reader, delim byte, list *store.ChunkList, notify func()) *Reader {
	return &Reader{
		src:      src,
		delim:    delim,
		List:     list,
		finished: make(chan struct{}),
		notify:   notify,
	}
}

// Stop requests cooperative cancellation: the producer checks this flag
// between read batches and at chunk boundaries, per spec.md §5, and exits
// without flushing a partial chunk.
func (r *Reader) Stop() {
	r.mutex.Lock()
	r.done = true
	r.mutex.Unlock()
}

func (r *Reader) stopped() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.done
}

// Err returns the first read error encountered, if any. Safe to call after
// Wait returns or concurrently with Run.
func (r *Reader) Err() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.err
}

func (r *Reader) setErr(err error) {
	r.mutex.Lock()
	r.err = err
	r.mutex.Unlock()
}

// Wait blocks until the producer goroutine has exited.
func (r *Reader) Wait() {
	<-r.finished
}

// Run is the producer loop: read in readSize bursts into a slab, split
// completed lines out of it on delim, push each into List, and grow the
// slab when a single line outruns it. Intended to run in its own
// goroutine; call Wait or watch EvtReadFin on an EventBox to join it.
func (r *Reader) Run() {
	defer close(r.finished)
	defer func() {
		if r.notify != nil {
			r.notify()
		}
	}()

	buf := make([]byte, 0, slabSize)
	chunk := make([]byte, readSize)

	for {
		if r.stopped() {
			return
		}

		n, err := r.src.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			buf = r.drainLines(buf)
		}
		if err != nil {
			if err != io.EOF {
				r.setErr(err)
			}
			if len(buf) > 0 {
				r.publishLine(buf)
			}
			return
		}

		if cap(buf)-len(buf) < readSize {
			grown := make([]byte, len(buf), cap(buf)*2)
			copy(grown, buf)
			buf = grown
		}

		if r.notify != nil {
			r.notify()
		}
	}
}

// drainLines splits every complete line out of buf (those terminated by
// r.delim), pushes each to List, and returns the unterminated remainder
// to keep accumulating into.
func (r *Reader) drainLines(buf []byte) []byte {
	start := 0
	for {
		idx := bytes.IndexByte(buf[start:], r.delim)
		if idx < 0 {
			break
		}
		line := buf[start : start+idx]
		r.publishLine(line)
		start += idx + 1

		if r.stopped() {
			return nil
		}
	}
	remainder := make([]byte, len(buf)-start)
	copy(remainder, buf[start:])
	return remainder
}

func (r *Reader) publishLine(line []byte) {
	r.List.Push(line)
}

// ScanDelim adapts bufio.Scanner to input split on an arbitrary delimiter
// byte such as NUL (bufio.ScanLines only understands LF/CRLF). cmd/fz does
// not use it: its --read0 input goes through a Reader with delim 0.
func ScanDelim(delim byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if idx := bytes.IndexByte(data, delim); idx >= 0 {
			return idx + 1, data[:idx], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}
