// meshlayer is a command-line driver for the mesh layer engine: it builds a
// document, runs filters on it and previews them.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/meshlayer/internal/config"
	"github.com/Faultbox/meshlayer/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	args := config.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	command, rest := args[0], args[1:]
	switch command {
	case "filters":
		err = cmdFilters(os.Stdout)
	case "mask":
		err = cmdMask(os.Stdout, rest)
	case "run":
		err = cmdRun(os.Stdout, cfg, rest)
	case "preview":
		err = cmdPreview(os.Stdout, cfg, rest)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshlayer - mesh attribute and layer engine

Usage:
  meshlayer [flags] <command> [arguments]

Commands:
  filters                          List the built-in filters
  mask <expression>                Parse a mask expression such as "MM_VERTCOLOR | MM_FACEQUALITY"
  run <filter[:k=v,...]>...        Apply filters in order to a generated grid mesh
  preview <filter[:k=v,...]>       Preview a filter on a generated grid, then cancel it

Flags:
  -config <file>   Config file
  -debug           Debug logging
  -log-file <file> Also log to a rotating file
  -doc <dir>       Project directory
  -no-preview      Refuse interactive previews

Examples:
  meshlayer mask "MM_VERTCOLOR|MM_VERTFLAGBORDER"
  meshlayer run quality_from_height:axis=2 colorize_quality
  meshlayer preview translate:x=1,y=2`)
}
