package folderhash

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Hasher hashes files and directories of one filesystem. It holds no per-call
// state and may be used from several goroutines at once.
type Hasher struct {
	fs       billy.Filesystem
	absolute bool // Make relative targets absolute against the working directory
}

// Outcome is the single value delivered by HashElementAsync
type Outcome struct {
	Result *HashResult
	Err    error
}

// NewHasher creates a hasher over fs. Paths are interpreted by fs as given.
func NewHasher(fs billy.Filesystem) *Hasher {
	return &Hasher{fs: fs}
}

// NewOSHasher creates a hasher over the host filesystem. Relative paths are
// resolved against the current working directory.
func NewOSHasher() *Hasher {
	return &Hasher{
		fs:       hostFS{Filesystem: osfs.New(string(filepath.Separator))},
		absolute: true,
	}
}

// hostFS is the host filesystem rooted at the filesystem root. Files are opened
// without the chroot wrapper so their descriptor stays reachable.
type hostFS struct {
	billy.Filesystem
}

func (fs hostFS) Open(filename string) (billy.File, error) {
	return osfs.Default.Open(fs.Join(string(filepath.Separator), filename))
}

// Filesystem returns the filesystem the hasher reads from
func (h *Hasher) Filesystem() billy.Filesystem {
	return h.fs
}

// HashElement hashes name inside folder. An empty folder hashes name as given.
func (h *Hasher) HashElement(ctx context.Context, name, folder string, o *Overrides) (*HashResult, error) {
	target := name
	if folder != "" {
		target = h.fs.Join(folder, name)
	}
	return h.hash(ctx, target, o)
}

// HashPath hashes a path as given
func (h *Hasher) HashPath(ctx context.Context, target string, o *Overrides) (*HashResult, error) {
	return h.hash(ctx, target, o)
}

// HashElementFunc runs HashElement and hands the outcome to done. Exactly one of
// done's arguments is non-nil. done runs on the calling goroutine.
func (h *Hasher) HashElementFunc(ctx context.Context, name, folder string, o *Overrides, done func(err error, result *HashResult)) {
	result, err := h.HashElement(ctx, name, folder, o)
	if err != nil {
		done(err, nil)
		return
	}
	done(nil, result)
}

// HashElementAsync runs HashElement on a new goroutine. The returned channel
// receives one Outcome and is then closed.
func (h *Hasher) HashElementAsync(ctx context.Context, name, folder string, o *Overrides) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		result, err := h.HashElement(ctx, name, folder, o)
		out <- Outcome{Result: result, Err: err}
	}()
	return out
}

// hash is the one operation behind every call convention
func (h *Hasher) hash(ctx context.Context, target string, o *Overrides) (*HashResult, error) {
	if target == "" {
		return nil, newHashError(KindNotFound, target, fmt.Errorf("empty path"))
	}

	options := DefaultOptions().Merge(o)
	resolved, err := options.resolve()
	if err != nil {
		return nil, err
	}

	if h.absolute && !filepath.IsAbs(target) {
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, newHashError(KindNotFound, target, err)
		}
		target = abs
	}

	VerboseLog(1, "hashing %s (algo=%s encoding=%s workers=%d buffer=%s)",
		target, resolved.Algo, resolved.Encoding, resolved.Workers, FormatHumanSize(resolved.BufferSize))
	if resolved.excludes.HasPatterns() {
		VerboseLog(2, "excluding %s", strings.Join(resolved.excludes.GetPatterns(), " "))
	}
	return newTreeBuilder(h.fs, resolved).hashRoot(ctx, target)
}

// HashElement hashes name inside folder on the host filesystem
func HashElement(ctx context.Context, name, folder string, o *Overrides) (*HashResult, error) {
	return NewOSHasher().HashElement(ctx, name, folder, o)
}

// HashPath hashes a host filesystem path as given
func HashPath(ctx context.Context, target string, o *Overrides) (*HashResult, error) {
	return NewOSHasher().HashPath(ctx, target, o)
}

// InitDebugFlags initialises debug flags - for CLI compatibility
func InitDebugFlags(flagsStr string) {
	if flagsStr != "" {
		SetDebugFlags(flagsStr)
	}
}

// GetVerbose returns the current verbose level - public alternative
func GetVerbose() int {
	return GetVerboseLevel()
}
