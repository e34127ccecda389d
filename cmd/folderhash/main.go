package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"

	folderhash "github.com/mattkeenan/folderhash/pkg"
)

// Exit codes
const (
	exitOK      = 0
	exitChanges = 1
	exitError   = 2
)

// errChanges is returned by diff when the trees differ
var errChanges = errors.New("changes found")

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	sets       []string
	verbose    int
	debug      string
	diag       bool
}

// app carries the state of one invocation
type app struct {
	stdout io.Writer
	stderr io.Writer
	flags  globalFlags
	config *folderhash.Config
	hasher *folderhash.Hasher
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := setupSignalContext(context.Background(), stderr)
	defer stop()

	a := &app{
		stdout: stdout,
		stderr: stderr,
		hasher: folderhash.NewOSHasher(),
	}
	folderhash.SetLogOutput(stderr)

	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.flags.diag {
		agent.Close()
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errChanges):
		return exitChanges
	default:
		fail(stderr, "folderhash: %v", err)
		return exitError
	}
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "folderhash",
		Short: "Deterministic hashes of files and directory trees",
		Long: `folderhash computes a content hash for a file or a whole directory tree.
Directory hashes combine the hashes of their children in byte-wise name order,
so the same tree always yields the same hash.

Settings are read from a .folderhash file in the working directory or one of
its parents. Command line flags win over --set overrides, which win over the
file, which wins over the built-in defaults.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "configuration file (default: nearest "+folderhash.ConfigFileName+")")
	pf.StringArrayVar(&a.flags.sets, "set", nil, "override a configuration value, key:value (repeatable)")
	pf.CountVarP(&a.flags.verbose, "verbose", "v", "increase verbosity (repeatable)")
	pf.StringVar(&a.flags.debug, "debug", "", "debug flags, comma separated (classify, tree, config)")
	pf.BoolVar(&a.flags.diag, "diag", false, "start a gops diagnostics agent")

	root.AddCommand(
		a.newHashCommand(),
		a.newDiffCommand(),
		a.newDupesCommand(),
		a.newConfigCommand(),
		a.newAlgosCommand(),
	)
	return root
}

// setup loads the configuration and applies the logging settings
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	configPath := a.flags.configPath
	if configPath == "" {
		if found, err := folderhash.FindConfigFile("."); err == nil {
			configPath = found
		} else {
			configPath = filepath.Join(".", folderhash.ConfigFileName)
		}
	}

	cfg, err := folderhash.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyOverrides(a.flags.sets); err != nil {
		return err
	}
	a.config = cfg

	verboseConfig := cfg.GetVerboseConfig()
	level := verboseConfig.Level
	if cmd.Flags().Changed("verbose") {
		level = a.flags.verbose
	}
	folderhash.SetVerboseLevel(level)

	debug := verboseConfig.Debug
	if cmd.Flags().Changed("debug") {
		debug = a.flags.debug
	}
	folderhash.InitDebugFlags(debug)

	if a.flags.diag {
		if err := agent.Listen(agent.Options{}); err != nil {
			warn(a.stderr, "gops agent: %v", err)
		}
	}

	folderhash.VerboseLog(2, "config: %s", configPath)
	return nil
}

func (a *app) newAlgosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algos",
		Short: "List hash algorithms and digest encodings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutput(a.stdout)
			out.Line(bold("Algorithms:"))
			for _, name := range folderhash.SupportedAlgorithms() {
				algorithm, err := folderhash.GetHashAlgorithm(name)
				if err != nil {
					return err
				}
				out.Linef("  %-10s %3d bits", algorithm.Name, algorithm.Size*8)
			}
			out.Line(bold("Encodings:"))
			for _, name := range folderhash.SupportedEncodings() {
				out.Linef("  %s", name)
			}
			return out.Flush()
		},
	}
}
