package folderhash

import (
	"encoding/json"
	"path"
	"strings"
)

// HashResult is one node of a hashed tree. Directory nodes have a non-nil
// Children slice in canonical order; file nodes have none.
type HashResult struct {
	Name     string        `json:"name"`
	Hash     string        `json:"hash"`
	Children []*HashResult `json:"children"`

	digest []byte
}

// IsDir reports whether the node was built from a directory
func (r *HashResult) IsDir() bool {
	return r.Children != nil
}

// MarshalJSON leaves "children" out for files. Directories always carry the
// list, empty or not, so decoding keeps them directories.
func (r *HashResult) MarshalJSON() ([]byte, error) {
	if r.IsDir() {
		type node HashResult
		return json.Marshal((*node)(r))
	}
	return json.Marshal(struct {
		Name string `json:"name"`
		Hash string `json:"hash"`
	}{r.Name, r.Hash})
}

// Digest returns a copy of the raw digest bytes
func (r *HashResult) Digest() []byte {
	return append([]byte(nil), r.digest...)
}

// String renders the tree depth-first, one "name hash" line per node, children
// indented two spaces below their parent
func (r *HashResult) String() string {
	var b strings.Builder
	r.render(&b, 0)
	return b.String()
}

func (r *HashResult) render(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(r.Name)
	b.WriteByte(' ')
	b.WriteString(r.Hash)
	b.WriteByte('\n')
	for _, child := range r.Children {
		child.render(b, depth+1)
	}
}

// Walk calls fn for every node depth-first. relPath is "" for the root and
// slash separated below it. Returning false from fn skips the node's children.
func (r *HashResult) Walk(fn func(relPath string, node *HashResult) bool) {
	r.walk("", fn)
}

func (r *HashResult) walk(relPath string, fn func(string, *HashResult) bool) {
	if !fn(relPath, r) {
		return
	}
	for _, child := range r.Children {
		child.walk(path.Join(relPath, child.Name), fn)
	}
}

// Find returns the node at relPath below r, or nil
func (r *HashResult) Find(relPath string) *HashResult {
	relPath = strings.Trim(path.Clean("/"+relPath), "/")
	if relPath == "" {
		return r
	}

	current := r
	for _, part := range strings.Split(relPath, "/") {
		var next *HashResult
		for _, child := range current.Children {
			if child.Name == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}
