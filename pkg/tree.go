package folderhash

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// treeBuilder performs one traversal. It owns its hash contexts and is not shared
// between calls.
type treeBuilder struct {
	fs         billy.Filesystem
	opts       *resolvedOptions
	classifier *PathClassifier
	sem        *semaphore.Weighted // Extra goroutines beyond the caller's; nil when sequential
}

func newTreeBuilder(fs billy.Filesystem, opts *resolvedOptions) *treeBuilder {
	b := &treeBuilder{
		fs:         fs,
		opts:       opts,
		classifier: NewPathClassifier(fs, opts.excludes, opts.Symlinks.Follow),
	}
	if opts.Workers > 1 {
		b.sem = semaphore.NewWeighted(int64(opts.Workers - 1))
	}
	return b
}

// hashRoot hashes target, which must exist and must not be excluded
func (b *treeBuilder) hashRoot(ctx context.Context, target string) (*HashResult, error) {
	defer VerboseEnter()()

	name := rootName(target)
	if b.rootExcluded(target, name) {
		return nil, newHashError(KindExcludedRoot, target, fmt.Errorf("matches an exclude pattern"))
	}

	cls, err := b.classifier.Classify(target, "", "", nil)
	if err != nil {
		return nil, err
	}

	switch cls.Kind {
	case EntryFile:
		return b.hashFileNode(ctx, name, target)
	case EntryDirectory:
		return b.hashDirectory(ctx, name, accessPath(target, cls), "", cls.RealPath, nil, true)
	default:
		return nil, newHashError(KindExcludedRoot, target, fmt.Errorf("%s", cls.Reason))
	}
}

// rootExcluded tests the root's basename and the target as given. Names that only
// denote "here" or "up" are never matched.
func (b *treeBuilder) rootExcluded(target, name string) bool {
	switch name {
	case ".", "..", string(filepath.Separator):
		return false
	}
	return b.classifier.IsExcluded(name) || b.classifier.IsExcluded(filepath.Clean(target))
}

func (b *treeBuilder) hashFileNode(ctx context.Context, name, fullPath string) (*HashResult, error) {
	digest, err := HashFile(ctx, b.fs, fullPath, b.opts.algorithm, b.opts.BufferSize)
	if err != nil {
		return nil, err
	}
	return b.newNode(name, digest, nil)
}

// hashDirectory hashes every included entry of dirPath and combines them.
// relPath is the directory's path relative to the root, realPath its symlink
// resolved path and ancestors the real paths above it.
func (b *treeBuilder) hashDirectory(ctx context.Context, name, dirPath, relPath, realPath string, ancestors []string, isRoot bool) (*HashResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := b.classifier.ListEntries(dirPath)
	if err != nil {
		return nil, err
	}

	stack := make([]string, len(ancestors), len(ancestors)+1)
	copy(stack, ancestors)
	stack = append(stack, realPath)

	children := newChildSet(len(entries))

	g, gctx := errgroup.WithContext(ctx)

	for _, entry := range entries {
		if gctx.Err() != nil {
			break
		}
		entry := entry
		task := func() error {
			child, kind, err := b.hashChild(gctx, dirPath, relPath, realPath, stack, entry)
			if err != nil {
				return err
			}
			if child != nil {
				children.Insert(child, kind)
			}
			return nil
		}

		if b.sem != nil && b.sem.TryAcquire(1) {
			g.Go(func() error {
				defer b.sem.Release(1)
				return task()
			})
			continue
		}

		// No free worker: hash on this goroutine. The failure is handed to the group
		// so an earlier sibling failure stays the reported one.
		if err := task(); err != nil {
			g.Go(func() error { return err })
			break
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	node, err := b.combine(name, children.Sorted(), isRoot)
	if err != nil {
		return nil, err
	}
	if IsDebugEnabled(DebugTree) {
		children.ForEach(func(child *HashResult, kind string) bool {
			VerboseLog(3, "tree: %s %s %s", kind, b.fs.Join(dirPath, child.Name), child.Hash)
			return true
		})
		VerboseLog(2, "tree: %s (%d children) -> %s", dirPath, len(node.Children), node.Hash)
	}
	return node, nil
}

// hashChild classifies and hashes one directory entry. A nil result means the
// entry contributes nothing to its parent.
func (b *treeBuilder) hashChild(ctx context.Context, dirPath, parentRel, parentReal string, ancestors []string, name string) (*HashResult, EntryKind, error) {
	fullPath := b.fs.Join(dirPath, name)
	relPath := path.Join(parentRel, name)

	cls, err := b.classifier.Classify(fullPath, relPath, parentReal, ancestors)
	if err != nil {
		return nil, EntrySkip, err
	}

	switch cls.Kind {
	case EntryFile:
		node, err := b.hashFileNode(ctx, name, fullPath)
		return node, EntryFile, err
	case EntryDirectory:
		node, err := b.hashDirectory(ctx, name, accessPath(fullPath, cls), relPath, cls.RealPath, ancestors, false)
		if err != nil {
			return nil, EntryDirectory, err
		}
		if len(node.Children) == 0 && !b.opts.Folders.IncludeEmpty {
			if IsDebugEnabled(DebugTree) {
				VerboseLog(2, "tree: dropping empty directory %s", fullPath)
			}
			return nil, EntrySkip, nil
		}
		return node, EntryDirectory, nil
	default:
		return nil, EntrySkip, nil
	}
}

// combine derives a directory digest. Input, in order: the root's own basename and
// a 0x00 byte when this is the root and Match.Path is set; then for every child in
// canonical order its basename and a 0x00 byte when Match.Basename is set, followed
// by the child's raw digest.
func (b *treeBuilder) combine(name string, children []*HashResult, isRoot bool) (*HashResult, error) {
	hasher := b.opts.algorithm.NewFunc()

	if isRoot && b.opts.Match.Path {
		hasher.Write([]byte(name))
		hasher.Write([]byte{nameTerminator})
	}

	for _, child := range children {
		if b.opts.Match.Basename {
			hasher.Write([]byte(child.Name))
			hasher.Write([]byte{nameTerminator})
		}
		hasher.Write(child.digest)
	}

	return b.newNode(name, hasher.Sum(nil), children)
}

func (b *treeBuilder) newNode(name string, digest []byte, children []*HashResult) (*HashResult, error) {
	encoded, err := b.opts.encoding.Encode(b.opts.algorithm, digest)
	if err != nil {
		return nil, err
	}
	return &HashResult{
		Name:     name,
		Hash:     encoded,
		Children: children,
		digest:   digest,
	}, nil
}

// accessPath is the path used to read a directory: followed symlinks are read
// through their resolved target
func accessPath(fullPath string, cls *Classification) string {
	if cls.Symlink {
		return filepath.FromSlash(cls.RealPath)
	}
	return fullPath
}

func rootName(target string) string {
	return filepath.Base(filepath.Clean(target))
}
