// Package folderhash computes deterministic, content-derived hashes for files and
// directory trees, suitable for change detection, cache keys and integrity checks.
//
// # Core API
//
// The main entry point is Hasher, which binds a filesystem to the hashing algorithm:
//
//	h := folderhash.NewOSHasher()
//	result, err := h.HashElement(ctx, "file1", "sample-folder", nil)
//
// The single-path form takes the target as given:
//
//	result, err := h.HashPath(ctx, "sample-folder/subfolder1", &folderhash.Overrides{
//		Excludes: []string{"**/.*", "file1"},
//	})
//
// A file's hash covers its content only. A directory's hash is computed from its
// children's digests in byte-wise name order, optionally together with each child's
// basename (Match.Basename) and the root's own basename (Match.Path).
//
// # Call conventions
//
// HashElement returns the result directly. HashElementFunc delivers it to an
// error-first callback and HashElementAsync delivers it on a channel. All three run
// the same traversal.
//
// # Reports
//
// Diff compares two result trees and FindDuplicates groups identical files:
//
//	status := folderhash.Diff(before, after)
//	if status.HasChanges() {
//		fmt.Printf("Found %d changes\n", status.TotalChanges())
//	}
//
// # Configuration
//
// Options are built per call from DefaultOptions and caller Overrides. The command
// line tool additionally reads an ini file, see LoadConfig.
//
// Enable debug output:
//
//	folderhash.SetDebugFlags("classify,tree")
//	folderhash.SetVerboseLevel(2)
package folderhash
