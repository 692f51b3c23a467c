// Package walk implements the directory-listing default input source: when
// stdin isn't piped, the original fzf shells out to `find`; recent forks
// (the tak758-fzf-migemo fork in the pack) instead list github.com/
// charlievieth/fastwalk as a dependency for a pure-Go, concurrent walk.
// This package is that default source for fz, feeding paths into a
// store.ChunkList exactly like internal/reader's line-splitter does.
package walk

import (
	"io/fs"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
	"github.com/fz-finder/fz/internal/store"
)

// Run walks root concurrently, pushing the path (prefixed with root) of
// every entry that is not a directory into list. Hidden entries (dotfiles/dotdirs) are skipped, matching the
// teacher's default walker behavior.
func Run(root string, list *store.ChunkList) error {
	conf := &fastwalk.Config{
		Follow: false,
	}
	return fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if name != "." && len(name) > 0 && name[0] == '.' {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		list.Push([]byte(path))
		return nil
	})
}
