package fitsort

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func touch(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := []string{}
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(r))
	}
	sort.Strings(out)
	return out
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		"a.fit",
		"night1/b.fit",
		"night1/deep/c.fit",
		".hidden.fit",
		"night1/._d.fit",
		".cache/e.fit",
		"f.fits",
		"g.FIT",
		"notes.txt",
	} {
		touch(t, filepath.Join(root, p), []byte("x"))
	}

	got, err := Find(root, ".fit")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	want := []string{".cache/e.fit", "a.fit", "night1/b.fit", "night1/deep/c.fit"}
	if diff := cmp.Diff(want, rel(t, root, got)); diff != "" {
		t.Errorf("Find() mismatch (-want +got):\n%s", diff)
	}

	again, err := Find(root, ".fit")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("Find() is not deterministic (-first +second):\n%s", diff)
	}
}

func TestFindMissingRoot(t *testing.T) {
	if _, err := Find(filepath.Join(t.TempDir(), "nope"), ".fit"); err == nil {
		t.Errorf("Find() on a missing root returned no error")
	}
}

func TestDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a", "b", "x.fit"), []byte("x"))
	touch(t, filepath.Join(root, "c", "y.fit"), []byte("x"))

	got, err := Dirs(root)
	if err != nil {
		t.Fatalf("Dirs: %v", err)
	}
	want := []string{".", "a", "a/b", "c"}
	if diff := cmp.Diff(want, rel(t, root, got)); diff != "" {
		t.Errorf("Dirs() mismatch (-want +got):\n%s", diff)
	}
}
