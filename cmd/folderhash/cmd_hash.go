package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	folderhash "github.com/mattkeenan/folderhash/pkg"
)

func (a *app) newHashCommand() *cobra.Command {
	var hf hashFlags
	cmd := &cobra.Command{
		Use:   "hash <path> [folder]",
		Short: "Hash a file or directory tree",
		Long: `Hash a file or directory tree and print the result.

With a folder argument, path is taken relative to folder.

	folderhash hash ./src
	folderhash hash --format hash --algo sha256 README.md
	folderhash hash --exclude '**/.git' --exclude 'node_modules' .`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, format, err := a.resolve(cmd, &hf)
			if err != nil {
				return err
			}

			folder := ""
			if len(args) == 2 {
				folder = args[1]
			}
			result, err := a.hasher.HashElement(cmd.Context(), args[0], folder, ov)
			if err != nil {
				return err
			}
			return writeResult(newOutput(a.stdout), result, format)
		},
	}
	addHashFlags(cmd, &hf)
	return cmd
}

func writeResult(out *output, result *folderhash.HashResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		out.Write(data)
		out.Line("")
	case "hash":
		out.Line(result.Hash)
	default:
		for _, line := range strings.SplitAfter(result.String(), "\n") {
			if line != "" {
				out.WriteString(line)
			}
		}
	}
	return out.Flush()
}
