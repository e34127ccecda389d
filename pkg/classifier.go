package folderhash

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// EntryKind is the classification of a filesystem entry
type EntryKind int

const (
	EntrySkip EntryKind = iota
	EntryFile
	EntryDirectory
)

func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryDirectory:
		return "directory"
	default:
		return "skip"
	}
}

// Classification is the outcome of classifying one path
type Classification struct {
	Kind     EntryKind
	Info     os.FileInfo // Target info for followed symlinks
	Symlink  bool
	RealPath string // Path with the entry's own symlink resolved, used for cycle checks
	Reason   string // Why an entry was skipped
}

// PathClassifier decides whether a path is hashed as a file, descended into as a
// directory, or skipped
type PathClassifier struct {
	fs             billy.Filesystem
	excludes       *ExcludeMatcher
	followSymlinks bool
}

// NewPathClassifier creates a classifier over fs
func NewPathClassifier(fs billy.Filesystem, excludes *ExcludeMatcher, followSymlinks bool) *PathClassifier {
	if excludes == nil {
		excludes = &ExcludeMatcher{}
	}
	return &PathClassifier{
		fs:             fs,
		excludes:       excludes,
		followSymlinks: followSymlinks,
	}
}

// Classify stats fullPath and classifies it. relPath is the path matched against
// exclude patterns. parentReal is the real path of the containing directory ("" for
// the root) and ancestors holds the real paths of every directory on the current
// traversal stack.
func (pc *PathClassifier) Classify(fullPath, relPath, parentReal string, ancestors []string) (*Classification, error) {
	info, err := pc.fs.Lstat(fullPath)
	if err != nil {
		return nil, statError(fullPath, err)
	}

	realPath := path.Clean(filepath.ToSlash(fullPath))
	if parentReal != "" {
		realPath = path.Join(parentReal, info.Name())
	}

	if relPath != "" && pc.excludes.ShouldExclude(relPath) {
		pc.logSkip(fullPath, "excluded")
		return &Classification{Kind: EntrySkip, Info: info, RealPath: realPath, Reason: "excluded"}, nil
	}

	result := &Classification{Info: info, RealPath: realPath}

	if info.Mode()&os.ModeSymlink != 0 {
		result.Symlink = true
		if !pc.followSymlinks {
			pc.logSkip(fullPath, "symlink")
			result.Reason = "symlink"
			return result, nil
		}

		targetInfo, err := pc.fs.Stat(fullPath)
		if err != nil {
			// A dangling link counts as a missing entry
			return nil, statError(fullPath, err)
		}
		result.Info = targetInfo

		target, err := pc.fs.Readlink(fullPath)
		if err != nil {
			return nil, newHashError(KindUnreadableFile, fullPath, err)
		}
		target = filepath.ToSlash(target)
		if path.IsAbs(target) {
			result.RealPath = path.Clean(target)
		} else {
			result.RealPath = path.Join(path.Dir(realPath), target)
		}

		if targetInfo.IsDir() {
			for _, ancestor := range ancestors {
				if ancestor == result.RealPath {
					pc.logSkip(fullPath, "symlink cycle")
					result.Reason = "symlink cycle"
					return result, nil
				}
			}
		}
	}

	switch {
	case result.Info.IsDir():
		result.Kind = EntryDirectory
	case result.Info.Mode().IsRegular():
		result.Kind = EntryFile
	default:
		pc.logSkip(fullPath, "special file")
		result.Reason = "special file"
	}

	if IsDebugEnabled(DebugClassify) {
		VerboseLog(3, "classify: %s -> %s", fullPath, result.Kind)
	}
	return result, nil
}

// IsExcluded reports whether an entry is excluded by pattern alone
func (pc *PathClassifier) IsExcluded(relPath string) bool {
	return pc.excludes.ShouldExclude(relPath)
}

// ListEntries returns the basenames in dir, in the order the filesystem returns them
func (pc *PathClassifier) ListEntries(dir string) ([]string, error) {
	infos, err := pc.fs.ReadDir(dir)
	if err != nil {
		return nil, statError(dir, err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}

func (pc *PathClassifier) logSkip(fullPath, reason string) {
	if IsDebugEnabled(DebugClassify) {
		VerboseLog(2, "classify: skipping %s (%s)", fullPath, reason)
	}
}

func statError(p string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return newHashError(KindNotFound, p, err)
	}
	return newHashError(KindUnreadableFile, p, fmt.Errorf("stat failed: %w", err))
}
