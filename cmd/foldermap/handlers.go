package main

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taigrr/foldermap/internal/config"
	"github.com/taigrr/foldermap/internal/filesystem"
	"github.com/taigrr/foldermap/internal/mapper"
	"github.com/taigrr/foldermap/internal/types"
)

var (
	fileSystem *filesystem.Service
	treeMapper *mapper.Mapper
	logger     = zerolog.Nop()
)

func newServeCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [root]",
		Short: "Serve foldermap as an MCP tool over stdio",
		Long: `serve runs a Model Context Protocol server on stdin/stdout exposing a
map_folder tool. Paths given to the tool are resolved inside root and
may not escape it. Symlinks are not followed: a link inside root is
reported as a file and paths through a link are rejected.`,
		Example: `foldermap serve ~/projects`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, args, flags)
		},
	}
}

func runServer(cmd *cobra.Command, args []string, flags *cliFlags) error {
	var rootPath string
	if len(args) > 0 {
		rootPath = args[0]
	} else {
		var err error
		rootPath, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	// stdout carries the protocol
	logger = newLogger(os.Stderr, flags.verbose)
	fileSystem = filesystem.NewConfined(rootPath, nil)
	treeMapper = mapper.FromService(fileSystem, logger)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "foldermap",
		Version: version,
	}, nil)

	registerTools(server)

	logger.Info().Str("root", fileSystem.RootPath()).Msg("serving map_folder")
	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}

func handleMapFolder(ctx context.Context, req *mcp.CallToolRequest, input MapFolderInput) (*mcp.CallToolResult, MapFolderOutput, error) {
	path, err := fileSystem.ResolvePath(input.Path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, MapFolderOutput{}, err
	}

	cfg, err := config.ResolveOptions(input.options())
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, MapFolderOutput{}, err
	}

	tree, err := treeMapper.Map(ctx, path, cfg)
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("map_folder failed")
		return &mcp.CallToolResult{IsError: true}, MapFolderOutput{}, err
	}
	if tree == nil {
		return nil, MapFolderOutput{Found: false}, nil
	}

	folders, files := countEntries(tree)
	return nil, MapFolderOutput{
		Found:   true,
		Folders: folders,
		Files:   files,
		Tree:    tree,
	}, nil
}

func (in MapFolderInput) options() types.Options {
	opts := types.Options{
		ExcludeNames:      in.ExcludeNames,
		IncludeNames:      in.IncludeNames,
		ExcludeExtensions: in.ExcludeExtensions,
		IncludeExtensions: in.IncludeExtensions,
		SkipEmpty:         in.SkipEmpty,
	}
	if len(in.IncludeFolders) > 0 {
		opts.IncludeFolders = make(map[string]types.Options, len(in.IncludeFolders))
		for name, o := range in.IncludeFolders {
			opts.IncludeFolders[name] = types.Options{
				ExcludeNames:      o.ExcludeNames,
				IncludeNames:      o.IncludeNames,
				ExcludeExtensions: o.ExcludeExtensions,
				IncludeExtensions: o.IncludeExtensions,
				SkipEmpty:         o.SkipEmpty,
			}
		}
	}
	return opts
}

// countEntries counts the folders and files of a mapped tree, root included.
func countEntries(entry *types.Entry) (folders, files int) {
	if entry.Type == types.File {
		return 0, 1
	}
	folders = 1
	for _, child := range entry.Entries {
		f, n := countEntries(child)
		folders += f
		files += n
	}
	return folders, files
}
