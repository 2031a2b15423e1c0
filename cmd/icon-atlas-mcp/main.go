package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/spritefold/icon-atlas-mcp/internal/atlas"
	"github.com/spritefold/icon-atlas-mcp/internal/cfgscan"
	"github.com/spritefold/icon-atlas-mcp/internal/config"
	"github.com/spritefold/icon-atlas-mcp/internal/logging"
	"github.com/spritefold/icon-atlas-mcp/internal/preset"
	"github.com/spritefold/icon-atlas-mcp/internal/server"
	"github.com/spritefold/icon-atlas-mcp/internal/synth"
	"github.com/spritefold/icon-atlas-mcp/internal/thumbnail"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("icon-atlas-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("icon-atlas-mcp - MCP server for browsing icon sprite sheets")
			fmt.Println()
			fmt.Println("Usage: icon-atlas-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  ICON_ATLAS_SEARCH_PATHS     Colon-separated config search directories")
			fmt.Println("  ICON_ATLAS_CONFIG_PATTERN   Config filename glob (default *.cfg)")
			fmt.Println("  ICON_ATLAS_LOG_LEVEL        debug, info, warn, error (default info)")
			fmt.Println("  ICON_ATLAS_LOG_FORMAT       console or json (default console)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "logging init error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()
	log := logging.L()

	if len(cfg.SearchPaths) == 0 {
		log.Warn("no search paths configured, namespace will be empty")
	}

	// The whole namespace is built exactly once, before any request
	// can be answered; it is never rebuilt or mutated afterwards.
	scanner, err := cfgscan.New(cfg.ConfigPattern, nil, log)
	if err != nil {
		log.Fatal("bad config pattern",
			zap.String("pattern", cfg.ConfigPattern), zap.Error(err))
	}
	scanned := scanner.Scan(cfg.SearchPaths)
	icons := atlas.Resolve(scanned.Images, scanned.Icons)
	tree := synth.Build(icons)

	log.Info("namespace built",
		zap.Int("search_paths", len(cfg.SearchPaths)),
		zap.Int("images", len(scanned.Images)),
		zap.Int("declarations", len(scanned.Icons)),
		zap.Int("entries", tree.FileCount()))

	ex := thumbnail.NewExtractor(thumbnail.NewFileDecoder(), log)
	pt := preset.NewType(tree, ex, log)

	srv := server.New(tree, pt, ex, log)
	if err := srv.Run(); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
