package folderhash

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHashResultString(t *testing.T) {
	tree := &HashResult{
		Name: "root",
		Hash: "r",
		Children: []*HashResult{
			{Name: "a", Hash: "1"},
			{Name: "sub", Hash: "2", Children: []*HashResult{
				{Name: "b", Hash: "3"},
			}},
		},
	}

	want := "root r\n  a 1\n  sub 2\n    b 3\n"
	if got := tree.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestHashResultWalkAndFind(t *testing.T) {
	result, err := sampleTree(t).HashPath(context.Background(), "/data", nil)
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	result.Walk(func(relPath string, node *HashResult) bool {
		paths = append(paths, relPath)
		return node.Name != "deep"
	})
	want := []string{"", "a.txt", "sub", "sub/b.txt", "sub/deep"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}

	if result.Find("") != result || result.Find("/") != result {
		t.Error("Find of the root should return the root")
	}
	if got := result.Find("sub/b.txt"); got == nil || got.Name != "b.txt" {
		t.Errorf("Find(sub/b.txt) = %+v", got)
	}
	if result.Find("sub/nope") != nil || result.Find("a.txt/x") != nil {
		t.Error("Find of a missing path should return nil")
	}
}

func TestHashResultJSON(t *testing.T) {
	h := NewHasher(newTestFS(t, map[string]string{"/data/hello.txt": "hello"}))
	result, err := h.HashPath(context.Background(), "/data", &Overrides{Match: MatchOverrides{Path: Bool(false)}})
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	want := map[string]interface{}{
		"name": "data",
		"hash": result.Hash,
		"children": []interface{}{
			map[string]interface{}{"name": "hello.txt", "hash": sha1Hello},
		},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyDirectoryJSON(t *testing.T) {
	h := NewHasher(newTestFS(t, map[string]string{
		"/data/empty/":    "",
		"/data/hello.txt": "hello",
	}))
	result, err := h.HashPath(context.Background(), "/data", nil)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `{"name":"empty","hash":"`+result.Find("empty").Hash+`","children":[]}`) {
		t.Errorf("Empty directory should keep its children list: %s", data)
	}

	var decoded HashResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if empty := decoded.Find("empty"); empty == nil || !empty.IsDir() {
		t.Errorf("Decoded empty directory = %+v, want a directory", empty)
	}
	if file := decoded.Find("hello.txt"); file == nil || file.IsDir() {
		t.Errorf("Decoded file = %+v, want a file", file)
	}
	if status := Diff(result, &decoded); status.HasChanges() {
		t.Errorf("Decoded tree differs from the original: %+v", status.Entries())
	}
}

func TestDigestIsCopy(t *testing.T) {
	h := NewHasher(newTestFS(t, map[string]string{"/f": "hello"}))
	result, err := h.HashPath(context.Background(), "/f", nil)
	if err != nil {
		t.Fatal(err)
	}
	d := result.Digest()
	d[0] ^= 0xff
	if hexOf(result.Digest()) != sha1Hello {
		t.Error("Digest() exposes internal state")
	}
}
