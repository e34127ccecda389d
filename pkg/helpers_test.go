package folderhash

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

// newTestFS creates an in-memory filesystem. Keys ending in "/" are created as
// empty directories, every other key is written as a file.
func newTestFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for name, content := range files {
		if name[len(name)-1] == '/' {
			if err := fs.MkdirAll(name, 0755); err != nil {
				t.Fatalf("MkdirAll %s failed: %v", name, err)
			}
			continue
		}
		if err := util.WriteFile(fs, name, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile %s failed: %v", name, err)
		}
	}
	return fs
}

func sha1Of(data string) []byte {
	sum := sha1.Sum([]byte(data))
	return sum[:]
}

// entry is a child digest as seen by a combination step
type entry struct {
	name   string
	digest []byte
}

// combineSHA1 computes a directory digest by hand. rootName is fed only when
// non-empty; basenames are fed when withNames is set.
func combineSHA1(rootName string, withNames bool, children ...entry) []byte {
	sort.Slice(children, func(i, j int) bool { return children[i].name < children[j].name })
	h := sha1.New()
	if rootName != "" {
		h.Write([]byte(rootName))
		h.Write([]byte{0})
	}
	for _, c := range children {
		if withNames {
			h.Write([]byte(c.name))
			h.Write([]byte{0})
		}
		h.Write(c.digest)
	}
	return h.Sum(nil)
}

func hexOf(b []byte) string {
	return hex.EncodeToString(b)
}

func digestOf(algorithm *HashAlgorithm, data string) []byte {
	hasher := algorithm.NewFunc()
	hasher.Write([]byte(data))
	return hasher.Sum(nil)
}
