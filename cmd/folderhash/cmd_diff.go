package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	folderhash "github.com/mattkeenan/folderhash/pkg"
)

func (a *app) newDiffCommand() *cobra.Command {
	var hf hashFlags
	cmd := &cobra.Command{
		Use:   "diff <before> <after>",
		Short: "Compare two trees",
		Long: `Hash two trees with the same settings and list the paths that differ:

	A path   only in <after>
	D path   only in <before>
	M path   in both with different content

Exits with status 1 when the trees differ.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, format, err := a.resolve(cmd, &hf)
			if err != nil {
				return err
			}

			// Root names are irrelevant when comparing two locations
			ov.Match.Path = folderhash.Bool(false)

			var before, after *folderhash.HashResult
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				before, err = a.hasher.HashPath(ctx, args[0], ov)
				return err
			})
			g.Go(func() error {
				var err error
				after, err = a.hasher.HashPath(ctx, args[1], ov)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			status := folderhash.Diff(before, after)
			out := newOutput(a.stdout)
			switch format {
			case "json":
				data, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					return err
				}
				out.Write(data)
				out.Line("")
			case "hash":
				out.Linef("%s %s", before.Hash, args[0])
				out.Linef("%s %s", after.Hash, args[1])
			default:
				for _, entry := range status.Entries() {
					out.Linef("%s %s", entry.Status, entry.Path)
				}
			}
			if err := out.Flush(); err != nil {
				return err
			}

			folderhash.VerboseLog(1, "%d changed, %d unchanged", status.TotalChanges(), status.Unchanged)
			if status.HasChanges() {
				return errChanges
			}
			return nil
		},
	}
	addHashFlags(cmd, &hf)
	return cmd
}

func (a *app) newDupesCommand() *cobra.Command {
	var hf hashFlags
	cmd := &cobra.Command{
		Use:   "dupes <path>",
		Short: "List files with identical content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, format, err := a.resolve(cmd, &hf)
			if err != nil {
				return err
			}
			result, err := a.hasher.HashPath(cmd.Context(), args[0], ov)
			if err != nil {
				return err
			}

			groups := folderhash.FindDuplicates(result)
			out := newOutput(a.stdout)
			switch format {
			case "json":
				if groups == nil {
					groups = []folderhash.DuplicateGroup{}
				}
				data, err := json.MarshalIndent(groups, "", "  ")
				if err != nil {
					return err
				}
				out.Write(data)
				out.Line("")
			default:
				for _, group := range groups {
					out.Line(fmt.Sprintf("%s (%d files)", group.Hash, group.Count))
					for _, file := range group.Files {
						out.Linef("  %s", file)
					}
				}
			}
			return out.Flush()
		},
	}
	addHashFlags(cmd, &hf)
	return cmd
}
