package folderhash

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestChildSetOrder(t *testing.T) {
	names := []string{"zeta", "Alpha", "alpha", "beta", "a.b", "a", "é", "B"}
	cs := newChildSet(len(names))

	for _, i := range rand.Perm(len(names)) {
		if !cs.Insert(&HashResult{Name: names[i]}, EntryFile) {
			t.Fatalf("Insert %s failed", names[i])
		}
	}

	var got []string
	for _, node := range cs.Sorted() {
		got = append(got, node.Name)
	}
	want := append([]string(nil), names...)
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
}

func TestChildSetConcurrentInsert(t *testing.T) {
	const n = 500
	cs := newChildSet(n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kind := EntryFile
			if i%3 == 0 {
				kind = EntryDirectory
			}
			cs.Insert(&HashResult{Name: fmt.Sprintf("entry-%04d", i)}, kind)
		}(i)
	}
	wg.Wait()

	if cs.Length() != n {
		t.Fatalf("Length = %d, want %d", cs.Length(), n)
	}

	i := 0
	cs.ForEach(func(node *HashResult, kind string) bool {
		if want := fmt.Sprintf("entry-%04d", i); node.Name != want {
			t.Errorf("Position %d holds %s, want %s", i, node.Name, want)
		}
		wantKind := EntryFile.String()
		if i%3 == 0 {
			wantKind = EntryDirectory.String()
		}
		if kind != wantKind {
			t.Errorf("%s kind = %s, want %s", node.Name, kind, wantKind)
		}
		i++
		return true
	})
}
