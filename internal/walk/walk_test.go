package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fz-finder/fz/internal/store"
)

func build(line []byte, id int) *store.Item {
	text := string(line)
	return &store.Item{ID: uint32(id), MatchText: text, DisplayText: text, Original: text}
}

func TestRunSkipsHiddenEntries(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "visible.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, ".hidden"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".hidden", "secret.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".dotfile"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	list := store.NewChunkList(build)
	if err := Run(dir, list); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	chunks, count := list.Snapshot()
	if count != 1 {
		t.Fatalf("expected only the visible file to be walked, got %d items", count)
	}
	found := false
	for _, c := range chunks {
		for _, item := range *c {
			if filepath.Base(item.MatchText) == "visible.txt" {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected visible.txt to be among the walked items")
	}
}
