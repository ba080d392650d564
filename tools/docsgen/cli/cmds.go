//go:build docsgen_cli

package main

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra/doc"

	"github.com/gswatchdog/gswatchdog/cmd"
	internalcmd "github.com/gswatchdog/gswatchdog/internal/cmd"
)

// docsPath is the commands documentation directory, relative to the repository root.
const docsPath = "./docs/commands/"

// main assumes it is run from the repository root:
//
//	go run -tags docsgen_cli ./tools/docsgen/cli
func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "gswatchdog.docsgen",
		Level:  hclog.Info,
		Output: os.Stderr,
	})

	if err := run(); err != nil {
		logger.Error("Failed to generate CLI docs", "path", docsPath, "error", err)
		os.Exit(1)
	}

	logger.Info("CLI docs generated", "path", docsPath)
}

func run() error {
	rootCmd, err := cmd.NewRootCmd(&internalcmd.BaseCmd{})
	if err != nil {
		return err
	}
	rootCmd.DisableAutoGenTag = true

	if err := os.RemoveAll(docsPath); err != nil {
		return err
	}
	if err := os.MkdirAll(docsPath, 0o755); err != nil {
		return err
	}

	return doc.GenMarkdownTree(rootCmd, docsPath)
}
