// Package main implements the foldermap command line tool and MCP server.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taigrr/foldermap/internal/config"
	"github.com/taigrr/foldermap/internal/mapper"
	"github.com/taigrr/foldermap/internal/types"
)

type cliFlags struct {
	configPath        string
	excludeNames      []string
	includeNames      []string
	excludeExtensions []string
	includeExtensions []string
	skipEmpty         bool
	ignoreFile        string
	format            string
	sync              bool
	verbose           bool
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:   "foldermap [path]",
		Short: "Map a directory tree into JSON or YAML",
		Long: `foldermap walks a directory tree and prints a nested description of
every entry that passes the configured filters: name and extension
allow/deny lists, gitignore-style patterns, and per-folder overrides.

Options are read from .foldermap.yaml (or --config), FOLDERMAP_*
environment variables, and flags, in increasing order of precedence.`,
		Example: `foldermap ./docs --exclude node_modules,.git --exclude-ext map
foldermap . --include-ext go --skip-empty --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, args, &flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "options file (default: ./.foldermap.yaml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log traversal details to stderr")

	f := cmd.Flags()
	f.StringSliceVar(&flags.excludeNames, "exclude", nil, "entry names to leave out")
	f.StringSliceVar(&flags.includeNames, "include", nil, "entry names to always map (enables allow-list mode)")
	f.StringSliceVar(&flags.excludeExtensions, "exclude-ext", nil, "file extensions to leave out")
	f.StringSliceVar(&flags.includeExtensions, "include-ext", nil, "file extensions to always map (enables allow-list mode)")
	f.BoolVar(&flags.skipEmpty, "skip-empty", false, "drop folders with no mapped children")
	f.StringVar(&flags.ignoreFile, "ignore-file", "", "gitignore-style file of patterns to leave out")
	f.StringVarP(&flags.format, "format", "f", "json", "output format: json or yaml")
	f.BoolVar(&flags.sync, "sync", false, "map sequentially instead of concurrently")

	cmd.AddCommand(newServeCmd(&flags))

	return cmd
}

func runMap(cmd *cobra.Command, args []string, flags *cliFlags) error {
	if flags.format != formatJSON && flags.format != formatYAML {
		return fmt.Errorf("unknown format %q: use json or yaml", flags.format)
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	logger := newLogger(cmd.ErrOrStderr(), flags.verbose)

	opts, err := loadOptions(cmd, flags, logger)
	if err != nil {
		return err
	}

	cfg, err := config.ResolveOptions(opts)
	if err != nil {
		return err
	}

	m := mapper.New(nil, logger)

	var tree *types.Entry
	if flags.sync {
		tree, err = m.MapSync(root, cfg)
	} else {
		tree, err = m.Map(cmd.Context(), root, cfg)
	}
	if err != nil {
		return err
	}

	return writeTree(cmd.OutOrStdout(), tree, flags.format)
}

// loadOptions reads file and environment options, then applies every flag
// the user set explicitly on top.
func loadOptions(cmd *cobra.Command, flags *cliFlags, logger zerolog.Logger) (types.Options, error) {
	opts, used, err := config.Load(flags.configPath)
	if err != nil {
		return types.Options{}, err
	}
	if used != "" {
		logger.Debug().Str("file", used).Msg("loaded options")
	}

	changed := cmd.Flags().Changed
	if changed("exclude") {
		opts.ExcludeNames = flags.excludeNames
	}
	if changed("include") {
		opts.IncludeNames = flags.includeNames
	}
	if changed("exclude-ext") {
		opts.ExcludeExtensions = flags.excludeExtensions
	}
	if changed("include-ext") {
		opts.IncludeExtensions = flags.includeExtensions
	}
	if changed("skip-empty") {
		opts.SkipEmpty = flags.skipEmpty
	}
	if changed("ignore-file") {
		opts.IgnoreFile = flags.ignoreFile
	}

	return opts, nil
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
