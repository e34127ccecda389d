package folderhash

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func hashTree(t *testing.T, files map[string]string, root string) *HashResult {
	t.Helper()
	result, err := NewHasher(newTestFS(t, files)).HashPath(context.Background(), root, &Overrides{
		Match: MatchOverrides{Path: Bool(false)},
	})
	if err != nil {
		t.Fatalf("HashPath failed: %v", err)
	}
	return result
}

func TestDiffNoChanges(t *testing.T) {
	files := map[string]string{"/a/x.txt": "x", "/a/sub/y.txt": "y"}
	before := hashTree(t, files, "/a")
	after := hashTree(t, files, "/a")

	status := Diff(before, after)
	if status.HasChanges() {
		t.Errorf("Expected no changes, got %+v", status)
	}
	// sub, sub/y.txt, x.txt
	if status.Unchanged != 3 {
		t.Errorf("Unchanged = %d, want 3", status.Unchanged)
	}
}

func TestDiffChanges(t *testing.T) {
	before := hashTree(t, map[string]string{
		"/t/keep.txt":      "same",
		"/t/gone.txt":      "bye",
		"/t/old/inner.txt": "i",
		"/t/sub/b.txt":     "beta",
		"/t/sub/c.txt":     "c",
		"/t/kind":          "file",
	}, "/t")
	after := hashTree(t, map[string]string{
		"/t/keep.txt":      "same",
		"/t/new.txt":       "hi",
		"/t/newdir/n.txt":  "n",
		"/t/sub/b.txt":     "beta two",
		"/t/sub/c.txt":     "c",
		"/t/kind/file.txt": "file",
	}, "/t")

	status := Diff(before, after)

	want := &StatusResult{
		Modified:  []string{"kind", "sub/b.txt"},
		Added:     []string{"new.txt", "newdir"},
		Removed:   []string{"gone.txt", "old"},
		Unchanged: 2,
	}
	if diff := cmp.Diff(want, status, cmpopts.IgnoreUnexported(StatusResult{})); diff != "" {
		t.Errorf("Diff mismatch (-want +got):\n%s", diff)
	}
	if status.TotalChanges() != 6 {
		t.Errorf("TotalChanges = %d, want 6", status.TotalChanges())
	}

	wantEntries := []StatusEntry{
		{"gone.txt", StatusRemoved},
		{"kind", StatusModified},
		{"new.txt", StatusAdded},
		{"newdir", StatusAdded},
		{"old", StatusRemoved},
		{"sub/b.txt", StatusModified},
	}
	if diff := cmp.Diff(wantEntries, status.Entries()); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestDiffFileRoots(t *testing.T) {
	a := hashTree(t, map[string]string{"/f": "one"}, "/f")
	b := hashTree(t, map[string]string{"/f": "two"}, "/f")

	status := Diff(a, b)
	if diff := cmp.Diff([]string{"."}, status.Modified); diff != "" {
		t.Errorf("Modified mismatch (-want +got):\n%s", diff)
	}
	if Diff(a, a).HasChanges() {
		t.Error("A tree should not differ from itself")
	}
	if Diff(nil, a).HasChanges() {
		t.Error("Diff with a nil tree should report nothing")
	}
}

func TestFileStatusString(t *testing.T) {
	for status, want := range map[FileStatus]string{
		StatusAdded:     "A",
		StatusRemoved:   "D",
		StatusModified:  "M",
		StatusUnchanged: " ",
	} {
		if got := status.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", status, got, want)
		}
	}
}
