package folderhash

import (
	"fmt"
	"runtime"
)

// MatchOptions controls which names take part in directory hashes
type MatchOptions struct {
	Basename bool // Feed each child's basename before its digest
	Path     bool // Feed the root directory's own basename first
}

// SymlinkOptions controls symlink handling
type SymlinkOptions struct {
	Follow bool // Follow symlinks; when false they are skipped
}

// FolderOptions controls directory handling
type FolderOptions struct {
	IncludeEmpty bool // Keep non-root directories that have no children after filtering
}

// HashOptions is the effective configuration of one hashing call
type HashOptions struct {
	Algo       string
	Encoding   string
	Excludes   []string
	Match      MatchOptions
	Symlinks   SymlinkOptions
	Folders    FolderOptions
	Workers    int // Concurrent subtree hashing limit, 1 is sequential
	BufferSize int // File read buffer in bytes
}

// Overrides holds caller-supplied options. Zero values and nil pointers keep the default.
type Overrides struct {
	Algo       string
	Encoding   string
	Excludes   []string // Replaces the default list when non-nil
	Match      MatchOverrides
	Symlinks   SymlinkOverrides
	Folders    FolderOverrides
	Workers    int
	BufferSize int
}

type MatchOverrides struct {
	Basename *bool
	Path     *bool
}

type SymlinkOverrides struct {
	Follow *bool
}

type FolderOverrides struct {
	IncludeEmpty *bool
}

// Bool returns a pointer to v, for filling Overrides
func Bool(v bool) *bool {
	return &v
}

// DefaultOptions returns a fresh copy of the documented defaults
func DefaultOptions() HashOptions {
	return HashOptions{
		Algo:       DefaultAlgo,
		Encoding:   DefaultEncoding,
		Excludes:   []string{},
		Match:      MatchOptions{Basename: true, Path: true},
		Symlinks:   SymlinkOptions{Follow: true},
		Folders:    FolderOptions{IncludeEmpty: true},
		Workers:    runtime.NumCPU(),
		BufferSize: DefaultBufferSize,
	}
}

// Merge returns o with every set field of ov applied on top
func (o HashOptions) Merge(ov *Overrides) HashOptions {
	if ov == nil {
		return o
	}
	if ov.Algo != "" {
		o.Algo = ov.Algo
	}
	if ov.Encoding != "" {
		o.Encoding = ov.Encoding
	}
	if ov.Excludes != nil {
		o.Excludes = append([]string{}, ov.Excludes...)
	}
	if ov.Match.Basename != nil {
		o.Match.Basename = *ov.Match.Basename
	}
	if ov.Match.Path != nil {
		o.Match.Path = *ov.Match.Path
	}
	if ov.Symlinks.Follow != nil {
		o.Symlinks.Follow = *ov.Symlinks.Follow
	}
	if ov.Folders.IncludeEmpty != nil {
		o.Folders.IncludeEmpty = *ov.Folders.IncludeEmpty
	}
	if ov.Workers != 0 {
		o.Workers = ov.Workers
	}
	if ov.BufferSize != 0 {
		o.BufferSize = ov.BufferSize
	}
	return o
}

// Validate checks every option that can be checked before traversal
func (o *HashOptions) Validate() error {
	_, err := o.resolve()
	return err
}

// resolvedOptions carries the lookups derived from HashOptions for one call
type resolvedOptions struct {
	HashOptions
	algorithm *HashAlgorithm
	encoding  *DigestEncoding
	excludes  *ExcludeMatcher
}

func (o *HashOptions) resolve() (*resolvedOptions, error) {
	algorithm, err := GetHashAlgorithm(o.Algo)
	if err != nil {
		return nil, err
	}
	encoding, err := GetDigestEncoding(o.Encoding)
	if err != nil {
		return nil, err
	}
	if err := encoding.checkCompatible(algorithm); err != nil {
		return nil, err
	}
	if o.Workers < 0 {
		return nil, newHashError(KindInvalidOption, "workers",
			fmt.Errorf("must not be negative, got %d", o.Workers))
	}
	if o.BufferSize < 0 {
		return nil, newHashError(KindInvalidOption, "buffer size",
			fmt.Errorf("must not be negative, got %d", o.BufferSize))
	}
	excludes, err := NewExcludeMatcher(o.Excludes)
	if err != nil {
		return nil, err
	}

	resolved := &resolvedOptions{
		HashOptions: *o,
		algorithm:   algorithm,
		encoding:    encoding,
		excludes:    excludes,
	}
	if resolved.Workers == 0 {
		resolved.Workers = runtime.NumCPU()
	}
	if resolved.BufferSize == 0 {
		resolved.BufferSize = DefaultBufferSize
	}
	return resolved, nil
}
