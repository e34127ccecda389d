package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	folderhash "github.com/mattkeenan/folderhash/pkg"
)

// hashFlags are the options of every command that hashes a tree
type hashFlags struct {
	algo            string
	encoding        string
	excludes        []string
	excludeFrom     string
	noMatchBasename bool
	noMatchPath     bool
	noFollow        bool
	noEmptyFolders  bool
	workers         int
	format          string
}

func addHashFlags(cmd *cobra.Command, hf *hashFlags) {
	f := cmd.Flags()
	f.StringVar(&hf.algo, "algo", "", "hash algorithm (default "+folderhash.DefaultAlgo+")")
	f.StringVar(&hf.encoding, "encoding", "", "digest encoding (default "+folderhash.DefaultEncoding+")")
	f.StringArrayVar(&hf.excludes, "exclude", nil, "exclude pattern, ** globs supported (repeatable)")
	f.StringVar(&hf.excludeFrom, "exclude-from", "", "read exclude patterns from a file")
	f.BoolVar(&hf.noMatchBasename, "no-match-basename", false, "do not feed child names into directory hashes")
	f.BoolVar(&hf.noMatchPath, "no-match-path", false, "do not feed the root directory name into its hash")
	f.BoolVar(&hf.noFollow, "no-follow-symlinks", false, "skip symbolic links")
	f.BoolVar(&hf.noEmptyFolders, "no-empty-folders", false, "drop directories that end up empty")
	f.IntVar(&hf.workers, "workers", 0, "concurrent subtree workers (default one per CPU)")
	f.StringVar(&hf.format, "format", "", "output format: human, json or hash")
}

// resolve combines defaults, the configuration file, --set overrides and
// command line flags, in increasing order of precedence
func (a *app) resolve(cmd *cobra.Command, hf *hashFlags) (*folderhash.Overrides, string, error) {
	if err := a.config.Validate(); err != nil {
		return nil, "", fmt.Errorf("configuration %s: %w", a.config.Path(), err)
	}
	ov, err := a.config.Options()
	if err != nil {
		return nil, "", err
	}

	flags := cmd.Flags()
	if flags.Changed("algo") {
		ov.Algo = hf.algo
	}
	if flags.Changed("encoding") {
		ov.Encoding = hf.encoding
	}
	if hf.noMatchBasename {
		ov.Match.Basename = folderhash.Bool(false)
	}
	if hf.noMatchPath {
		ov.Match.Path = folderhash.Bool(false)
	}
	if hf.noFollow {
		ov.Symlinks.Follow = folderhash.Bool(false)
	}
	if hf.noEmptyFolders {
		ov.Folders.IncludeEmpty = folderhash.Bool(false)
	}
	if flags.Changed("workers") {
		if hf.workers < 1 {
			return nil, "", fmt.Errorf("--workers must be at least 1, got %d", hf.workers)
		}
		ov.Workers = hf.workers
	}

	excludes := append([]string{}, ov.Excludes...)
	if _, err := os.Stat(folderhash.ExcludeFileName); err == nil {
		patterns, err := a.loadExcludeFile(folderhash.ExcludeFileName)
		if err != nil {
			return nil, "", err
		}
		excludes = append(excludes, patterns...)
	}
	if hf.excludeFrom != "" {
		patterns, err := a.loadExcludeFile(hf.excludeFrom)
		if err != nil {
			return nil, "", err
		}
		excludes = append(excludes, patterns...)
	}
	ov.Excludes = append(excludes, hf.excludes...)

	format := a.config.GetOutputConfig().Format
	if flags.Changed("format") {
		format = hf.format
	}
	format = strings.ToLower(format)
	if err := folderhash.ValidateOutputFormat(format); err != nil {
		return nil, "", err
	}

	return ov, format, nil
}

func (a *app) loadExcludeFile(name string) ([]string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, err
	}
	patterns, err := folderhash.LoadExcludeFile(a.hasher.Filesystem(), abs)
	if err != nil {
		return nil, fmt.Errorf("exclude file %s: %w", name, err)
	}
	folderhash.VerboseLog(2, "loaded %d exclude patterns from %s", len(patterns), name)
	return patterns, nil
}
